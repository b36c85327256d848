package comments

import (
	"encoding/json"
	"time"

	"campusclone/pkg/user"
)

// Comment is one entry of the detail view's thread. Replies nest one level:
// a reply is comment-shaped but never carries replies of its own.
type Comment struct {
	ID        string
	PostID    string
	Content   string
	Author    user.Ref
	CreatedAt time.Time
	Likes     []string
	Replies   []*Comment
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string     `json:"id"`
		LegacyID     string     `json:"_id"`
		PostID       string     `json:"post_id"`
		PostIDAlt    string     `json:"postId"`
		Content      string     `json:"content"`
		Author       user.Ref   `json:"author"`
		CreatedAt    time.Time  `json:"created_at"`
		CreatedAtAlt time.Time  `json:"createdAt"`
		Likes        []string   `json:"likes"`
		Replies      []*Comment `json:"replies"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	c.ID = raw.ID
	if c.ID == "" {
		c.ID = raw.LegacyID
	}
	c.PostID = raw.PostID
	if c.PostID == "" {
		c.PostID = raw.PostIDAlt
	}
	c.Content = raw.Content
	c.Author = raw.Author
	c.CreatedAt = raw.CreatedAt
	if c.CreatedAt.IsZero() {
		c.CreatedAt = raw.CreatedAtAlt
	}
	c.Likes = raw.Likes
	if c.Likes == nil {
		c.Likes = []string{}
	}
	c.Replies = raw.Replies
	if c.Replies == nil {
		c.Replies = []*Comment{}
	}

	return nil
}

func (c *Comment) Is(id string) bool {
	return id != "" && c.ID == id
}

func (c *Comment) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}

	return false
}
