package posts

import (
	"encoding/json"
	"time"

	"campusclone/pkg/user"
)

type Category string

const (
	All     Category = "all"
	Notes            = "notes"
	Jobs             = "jobs"
	Threads          = "threads"
)

func ValidCategory(c Category) bool {
	switch c {
	case Notes, Jobs, Threads:
		return true
	}

	return false
}

// Post is one entry of the canonical collection. Likes and Saves are sets of
// user ids; both are always replaced wholesale with the server's response,
// never merged. CommentsCount tracks the server-reported aggregate and can
// diverge from the detail view's locally fetched comment thread.
type Post struct {
	ID            string
	LegacyID      string
	Title         string
	Content       string
	Category      Category
	Author        user.Ref
	CreatedAt     time.Time
	Likes         []string
	Saves         []string
	Tags          []user.Ref
	Attachments   []string
	Link          string
	CommentsCount int
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string            `json:"id"`
		LegacyID      string            `json:"_id"`
		Title         string            `json:"title"`
		Content       string            `json:"content"`
		Category      Category          `json:"category"`
		Author        user.Ref          `json:"author"`
		CreatedAt     time.Time         `json:"created_at"`
		CreatedAtAlt  time.Time         `json:"createdAt"`
		Likes         []string          `json:"likes"`
		Saves         []string          `json:"saves"`
		Tags          []user.Ref        `json:"tags"`
		Attachments   []string          `json:"attachments"`
		Link          string            `json:"link"`
		CommentsCount *int              `json:"commentsCount"`
		Comments      []json.RawMessage `json:"comments"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	p.ID = raw.ID
	p.LegacyID = raw.LegacyID
	p.Title = raw.Title
	p.Content = raw.Content
	p.Category = raw.Category
	p.Author = raw.Author
	p.CreatedAt = raw.CreatedAt
	if p.CreatedAt.IsZero() {
		p.CreatedAt = raw.CreatedAtAlt
	}
	p.Likes = raw.Likes
	p.Saves = raw.Saves
	p.Tags = raw.Tags
	p.Attachments = raw.Attachments
	p.Link = raw.Link

	if raw.CommentsCount != nil {
		p.CommentsCount = *raw.CommentsCount
	} else {
		// the list endpoint may embed the comments instead of a count
		p.CommentsCount = len(raw.Comments)
	}

	p.normalize()

	return nil
}

// normalize guarantees both id spellings are populated identically and the
// set fields are non-nil.
func (p *Post) normalize() {
	if p.ID == "" {
		p.ID = p.LegacyID
	}
	p.LegacyID = p.ID

	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Saves == nil {
		p.Saves = []string{}
	}
	if p.CommentsCount < 0 {
		p.CommentsCount = 0
	}
}

// Is reports whether the post is identified by id under either naming.
func (p *Post) Is(id string) bool {
	return id != "" && (p.ID == id || p.LegacyID == id)
}

func (p *Post) LikedBy(userID string) bool {
	return contains(p.Likes, userID)
}

func (p *Post) SavedBy(userID string) bool {
	return contains(p.Saves, userID)
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}

	return false
}

func (p *Post) clone() *Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Saves = append([]string{}, p.Saves...)
	c.Tags = append([]user.Ref{}, p.Tags...)
	c.Attachments = append([]string{}, p.Attachments...)
	return &c
}
