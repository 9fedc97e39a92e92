package domain

import "time"

// Favorite is a reference saved by a user. Titles and text are derived from
// the reference on every read and never stored.
type Favorite struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Reference
	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether userID owns the favorite.
func (f *Favorite) OwnedBy(userID string) bool {
	return f.UserID == userID
}
