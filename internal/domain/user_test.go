package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"both names", User{FirstName: "Bruce", LastName: "Wayne"}, "Bruce Wayne"},
		{"first only", User{FirstName: "Bruce"}, "Bruce"},
		{"last only", User{LastName: "Wayne"}, "Wayne"},
		{"neither", User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.FullName())
		})
	}
}

func TestUser_Avatar(t *testing.T) {
	u := &User{}
	assert.Equal(t, DefaultImageURL, u.Avatar())

	u.ImageURL = "https://example.com/me.png"
	assert.Equal(t, "https://example.com/me.png", u.Avatar())
}

func TestOwnedBy(t *testing.T) {
	fav := &Favorite{UserID: "usr-1"}
	assert.True(t, fav.OwnedBy("usr-1"))
	assert.False(t, fav.OwnedBy("usr-2"))

	tag := &Tag{UserID: "usr-1"}
	assert.True(t, tag.OwnedBy("usr-1"))
	assert.False(t, tag.OwnedBy(""))
}

func TestTouch(t *testing.T) {
	u := &User{}
	u.Touch()
	assert.False(t, u.UpdatedAt.IsZero())

	tag := &Tag{}
	tag.Touch()
	assert.False(t, tag.UpdatedAt.IsZero())
}
