// Package action defines the closed taxonomy of actions a simulated
// agent can perform on a platform.
//
// The timebase consumes these values only as opaque hint strings for
// seed derivation; nothing in timestamp synthesis interprets them.
// The taxonomy exists so that scenarios and the event log share one
// vocabulary, and so that per-platform default action sets can be
// validated at load time.
package action

// Type identifies one kind of simulated agent action.
type Type string

const (
	Exit               Type = "exit"
	Refresh            Type = "refresh"
	SearchUser         Type = "search_user"
	SearchPosts        Type = "search_posts"
	CreatePost         Type = "create_post"
	LikePost           Type = "like_post"
	UnlikePost         Type = "unlike_post"
	DislikePost        Type = "dislike_post"
	UndoDislikePost    Type = "undo_dislike_post"
	ReportPost         Type = "report_post"
	Follow             Type = "follow"
	Unfollow           Type = "unfollow"
	Mute               Type = "mute"
	Unmute             Type = "unmute"
	Trend              Type = "trend"
	SignUp             Type = "sign_up"
	Repost             Type = "repost"
	QuotePost          Type = "quote_post"
	UpdateRecTable     Type = "update_rec_table"
	CreateComment      Type = "create_comment"
	LikeComment        Type = "like_comment"
	UnlikeComment      Type = "unlike_comment"
	DislikeComment     Type = "dislike_comment"
	UndoDislikeComment Type = "undo_dislike_comment"
	DoNothing          Type = "do_nothing"
	PurchaseProduct    Type = "purchase_product"
	Interview          Type = "interview"
	JoinGroup          Type = "join_group"
	LeaveGroup         Type = "leave_group"
	SendToGroup        Type = "send_to_group"
	CreateGroup        Type = "create_group"
	ListenFromGroup    Type = "listen_from_group"

	// Facebook-style actions.
	SendFriendRequest   Type = "send_friend_request"
	AcceptFriendRequest Type = "accept_friend_request"
	RejectFriendRequest Type = "reject_friend_request"
	Unfriend            Type = "unfriend"
	GetFriendRequests   Type = "get_friend_requests"
	GetFriends          Type = "get_friends"
	ReactToPost         Type = "react_to_post"
	RemoveReaction      Type = "remove_reaction"
	CreateGroupPost     Type = "create_group_post"
	ShareToGroup        Type = "share_to_group"
)

// all is the closed set of known actions, in declaration order.
var all = []Type{
	Exit, Refresh, SearchUser, SearchPosts, CreatePost, LikePost,
	UnlikePost, DislikePost, UndoDislikePost, ReportPost, Follow,
	Unfollow, Mute, Unmute, Trend, SignUp, Repost, QuotePost,
	UpdateRecTable, CreateComment, LikeComment, UnlikeComment,
	DislikeComment, UndoDislikeComment, DoNothing, PurchaseProduct,
	Interview, JoinGroup, LeaveGroup, SendToGroup, CreateGroup,
	ListenFromGroup, SendFriendRequest, AcceptFriendRequest,
	RejectFriendRequest, Unfriend, GetFriendRequests, GetFriends,
	ReactToPost, RemoveReaction, CreateGroupPost, ShareToGroup,
}

var known = func() map[Type]struct{} {
	m := make(map[Type]struct{}, len(all))
	for _, a := range all {
		m[a] = struct{}{}
	}
	return m
}()

// All returns every known action in declaration order.
// The returned slice is a copy.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// Valid reports whether t is a known action.
func (t Type) Valid() bool {
	_, ok := known[t]
	return ok
}

// String returns the action's wire tag.
func (t Type) String() string {
	return string(t)
}

// DefaultTwitterActions returns the default action set for a
// Twitter-style platform.
func DefaultTwitterActions() []Type {
	return []Type{CreatePost, LikePost, Repost, Follow, DoNothing, QuotePost}
}

// DefaultRedditActions returns the default action set for a
// Reddit-style platform.
func DefaultRedditActions() []Type {
	return []Type{
		LikePost, DislikePost, CreatePost, CreateComment, LikeComment,
		DislikeComment, SearchPosts, SearchUser, Trend, Refresh,
		DoNothing, Follow, Mute,
	}
}

// DefaultFacebookActions returns the default action set for a
// Facebook-style platform.
func DefaultFacebookActions() []Type {
	return []Type{
		CreatePost, CreateGroupPost, ReactToPost, SendFriendRequest,
		AcceptFriendRequest, CreateComment, JoinGroup, ShareToGroup,
		Refresh, DoNothing,
	}
}

// RecsysType identifies the recommender system driving a simulated feed.
type RecsysType string

const (
	RecsysTwitter  RecsysType = "twitter"
	RecsysTwhin    RecsysType = "twhin-bert"
	RecsysReddit   RecsysType = "reddit"
	RecsysRandom   RecsysType = "random"
	RecsysFacebook RecsysType = "facebook"
)

// Platform identifies a simulated platform flavor.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformReddit   Platform = "reddit"
	PlatformFacebook Platform = "facebook"
)

// DefaultActions returns the default action set for a platform,
// or nil for an unknown platform.
func (p Platform) DefaultActions() []Type {
	switch p {
	case PlatformTwitter:
		return DefaultTwitterActions()
	case PlatformReddit:
		return DefaultRedditActions()
	case PlatformFacebook:
		return DefaultFacebookActions()
	default:
		return nil
	}
}
