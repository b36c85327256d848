package api

import (
	"context"
	"net/http"

	"campusclone/pkg/comments"
)

type AddCommentReq struct {
	PostID   string `json:"post_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

func (c *Client) PostComments(ctx context.Context, postID string) ([]*comments.Comment, error) {
	list := make([]*comments.Comment, 0, 10)
	err := c.doJSON(ctx, http.MethodGet, "/comments/post/"+postID, nil, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) UserComments(ctx context.Context, userID string) ([]*comments.Comment, error) {
	list := make([]*comments.Comment, 0, 10)
	err := c.doJSON(ctx, http.MethodGet, "/comments/user/"+userID, nil, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) AddComment(ctx context.Context, req *AddCommentReq) (*comments.Comment, error) {
	cm := &comments.Comment{}
	err := c.doJSON(ctx, http.MethodPost, "/comments", req, cm)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

func (c *Client) UpdateComment(ctx context.Context, id, content string) (*comments.Comment, error) {
	cm := &comments.Comment{}
	err := c.doJSON(ctx, http.MethodPut, "/comments/"+id, map[string]string{"content": content}, cm)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/comments/"+id, nil, nil)
}

func (c *Client) LikeComment(ctx context.Context, id, userID string) ([]string, error) {
	var resp struct {
		Likes []string `json:"likes"`
	}

	err := c.doJSON(ctx, http.MethodPost, "/comments/"+id+"/like", map[string]string{"user_id": userID}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Likes, nil
}
