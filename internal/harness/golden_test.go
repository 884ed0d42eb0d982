package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmarek/socsim/internal/scenario"
)

func loadScenario(t *testing.T, name string) *scenario.Scenario {
	t.Helper()
	scn, err := scenario.LoadYAMLFile(filepath.Join("testdata", name+".yaml"))
	require.NoError(t, err)
	return scn
}

// The golden traces pin the exact timestamp output of the seed
// derivation for fixed scenarios. If these fail, the derivation
// changed; bump the seed domain version before regenerating.
func TestGolden_Smoke(t *testing.T) {
	scn := loadScenario(t, "smoke")
	require.NoError(t, RunWithGolden(t, scn, "golden-smoke"))
}

func TestGolden_Boundary(t *testing.T) {
	scn := loadScenario(t, "boundary")
	require.NoError(t, RunWithGolden(t, scn, "golden-boundary"))
}

// Sanity check that the fixture files exist; a missing fixture would
// otherwise surface as an -update hint rather than a clear failure.
func TestGoldenFixturesPresent(t *testing.T) {
	for _, name := range []string{"smoke", "boundary"} {
		_, err := os.Stat(filepath.Join("testdata", "golden", name+".golden"))
		require.NoError(t, err, "golden fixture for %s missing", name)
	}
}
