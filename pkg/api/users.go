package api

import (
	"context"
	"net/http"
	"net/url"

	"campusclone/pkg/user"
)

func (c *Client) SearchUsers(ctx context.Context, query string) ([]*user.User, error) {
	list := make([]*user.User, 0, 10)
	err := c.doJSON(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), nil, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) User(ctx context.Context, id string) (*user.User, error) {
	u := &user.User{}
	err := c.doJSON(ctx, http.MethodGet, "/users/"+id, nil, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (c *Client) Users(ctx context.Context) ([]*user.User, error) {
	list := make([]*user.User, 0, 10)
	err := c.doJSON(ctx, http.MethodGet, "/users", nil, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}
