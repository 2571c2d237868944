package content

import (
	"time"

	"hikaya/api/internal/identity"
)

// Like marks that a user liked a story. At most one per (story, user);
// toggling is the only mutation.
type Like struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is append-only within a story. The embedded user is a
// snapshot; reads replace it with the canonical identity record.
type Comment struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	User      identity.User `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

type Story struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Category  string        `json:"category"`
	Image     string        `json:"image,omitempty"`
	Author    identity.User `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	Views     int           `json:"views"`
	Likes     []Like        `json:"likes"`
	Comments  []Comment     `json:"comments"`
}

// StoryInput carries the author-editable fields of a story. A nil Image
// preserves the existing image on update; a non-nil pointer (even to "")
// replaces it.
type StoryInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Image    *string `json:"image"`
}

// LikedBy reports whether userID currently likes the story.
func (s Story) LikedBy(userID string) bool {
	for _, like := range s.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}
