package domain

import "time"

// Tag is a user-created label. Names are unique across all users; the creator
// is the only one allowed to rename or delete it, but anyone may attach it to
// their own favorites.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// OwnedBy reports whether userID created the tag.
func (t *Tag) OwnedBy(userID string) bool {
	return t.UserID == userID
}

