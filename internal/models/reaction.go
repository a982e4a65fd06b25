package models

// Reaction item types. A reaction bucket can hang off any discussable item.
const (
	ReactionItemPost    = "post"
	ReactionItemComment = "comment"
	ReactionItemReply   = "reply"
)

// ValidReactionItemType reports whether t names a reactable item kind
func ValidReactionItemType(t string) bool {
	switch t {
	case ReactionItemPost, ReactionItemComment, ReactionItemReply:
		return true
	}
	return false
}

// ReactionSet maps an emoji to the set of UIDs who reacted with it. An item
// with no bucket yields an empty map. A user appears at most once per emoji
// but may hold several distinct emojis on the same item.
type ReactionSet map[string][]string

// ToggleReactionRequest defines the request body for toggling an emoji reaction
type ToggleReactionRequest struct {
	Emoji    string `json:"emoji" validate:"required"`
	ParentID string `json:"parent_id,omitempty"`
}
