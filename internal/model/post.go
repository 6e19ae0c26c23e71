package model

import "time"

// Post is a content record owned by exactly one User.
// JSON field names follow the public wire format.
type Post struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Published bool      `json:"published"`
	ViewCount int64     `json:"viewCount"`
	AuthorID  int64     `json:"authorId"`
}

// IsDraft returns true if the post has not been published.
func (p *Post) IsDraft() bool {
	return !p.Published
}
