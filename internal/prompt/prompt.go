// Package prompt builds prompts for the external image-generation
// service used to illustrate simulated posts.
//
// Pure string assembly: a fixed photographic style preamble plus the
// caller's subject. No state, no interpretation of the subject.
package prompt

import "strings"

// imageStylePreamble is prepended to every image generation request.
// Tuned to produce candid smartphone-photography output rather than
// stock-photo or obviously synthetic images.
const imageStylePreamble = `You are generating an image prompt for a realistic social media photo.

Style requirements:
- Modern smartphone photography aesthetic (iPhone/Samsung quality)
- Natural lighting preferred, golden hour when relevant
- Candid, authentic feel - not overly staged or stock-photo-like
- High resolution, sharp focus on subject
- Realistic colors, not oversaturated
- Appropriate for Instagram/Facebook content

Composition guidelines:
- Rule of thirds when appropriate
- Clean backgrounds that don't distract
- Proper depth of field for the subject matter
- Eye-level or slightly elevated angles for portraits

DO NOT include:
- Watermarks or text overlays
- Artificial lens flares or heavy filters
- Unrealistic proportions or AI artifacts`

// ForImage returns the full prompt for generating an image of the
// given subject. The subject is passed through verbatim after
// trimming surrounding whitespace.
func ForImage(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return imageStylePreamble
	}
	return imageStylePreamble + "\n\nSubject: " + subject
}
