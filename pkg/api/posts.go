package api

import (
	"context"
	"net/http"

	"campusclone/pkg/posts"
)

type CreatePostReq struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Category    posts.Category `json:"category"`
	Link        string         `json:"link,omitempty"`
	Attachments []string       `json:"attachments,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}

type UpdatePostReq struct {
	Title       *string         `json:"title,omitempty"`
	Content     *string         `json:"content,omitempty"`
	Category    *posts.Category `json:"category,omitempty"`
	Link        *string         `json:"link,omitempty"`
	Attachments *[]string       `json:"attachments,omitempty"`
	Tags        *[]string       `json:"tags,omitempty"`
}

func (c *Client) Posts(ctx context.Context) ([]*posts.Post, error) {
	list := make([]*posts.Post, 0, 10)
	err := c.doJSON(ctx, http.MethodGet, "/posts", nil, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) Post(ctx context.Context, id string) (*posts.Post, error) {
	p := &posts.Post{}
	err := c.doJSON(ctx, http.MethodGet, "/posts/"+id, nil, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) CreatePost(ctx context.Context, req *CreatePostReq) (*posts.Post, error) {
	p := &posts.Post{}
	err := c.doJSON(ctx, http.MethodPost, "/posts/", req, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, req *UpdatePostReq) (*posts.Post, error) {
	p := &posts.Post{}
	err := c.doJSON(ctx, http.MethodPut, "/posts/"+id, req, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
}

// LikePost toggles the caller's like server-side and returns the
// authoritative updated like set.
func (c *Client) LikePost(ctx context.Context, id, userID string) ([]string, error) {
	var resp struct {
		Likes []string `json:"likes"`
	}

	err := c.doJSON(ctx, http.MethodPost, "/posts/"+id+"/like", map[string]string{"user_id": userID}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Likes, nil
}

func (c *Client) SavePost(ctx context.Context, id, userID string) ([]string, error) {
	var resp struct {
		Saves []string `json:"saves"`
	}

	err := c.doJSON(ctx, http.MethodPost, "/posts/"+id+"/save", map[string]string{"user_id": userID}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Saves, nil
}
