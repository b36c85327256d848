package views

import (
	"context"
	"errors"
	"fmt"
	"io"

	"campusclone/pkg/api"
	"campusclone/pkg/comments"
	"campusclone/pkg/posts"
	"campusclone/pkg/user"
)

// The view layer talks to the backend through these slices of the API
// client; screens declare only what they consume.

type AuthAPI interface {
	Register(ctx context.Context, req *api.RegisterReq) (*user.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*user.User, error)
	UpdateMe(ctx context.Context, patch *user.Patch) (*user.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
}

type PostsAPI interface {
	Posts(ctx context.Context) ([]*posts.Post, error)
	Post(ctx context.Context, id string) (*posts.Post, error)
	CreatePost(ctx context.Context, req *api.CreatePostReq) (*posts.Post, error)
	UpdatePost(ctx context.Context, id string, req *api.UpdatePostReq) (*posts.Post, error)
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, id, userID string) ([]string, error)
	SavePost(ctx context.Context, id, userID string) ([]string, error)
}

type CommentsAPI interface {
	PostComments(ctx context.Context, postID string) ([]*comments.Comment, error)
	UserComments(ctx context.Context, userID string) ([]*comments.Comment, error)
	AddComment(ctx context.Context, req *api.AddCommentReq) (*comments.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (*comments.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	LikeComment(ctx context.Context, id, userID string) ([]string, error)
}

type UsersAPI interface {
	SearchUsers(ctx context.Context, query string) ([]*user.User, error)
	User(ctx context.Context, id string) (*user.User, error)
	Users(ctx context.Context) ([]*user.User, error)
}

// renderError turns an adapter error into a user-visible message.
// ErrSessionExpired is swallowed: the adapter already signed the user out
// and the host loop redirects to login.
func renderError(out io.Writer, err error) {
	if errors.Is(err, api.ErrSessionExpired) {
		return
	}

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		fmt.Fprintf(out, "error: %s\n", reqErr.Message)
		return
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout {
			fmt.Fprintln(out, "error: the server took too long to respond")
			return
		}
		fmt.Fprintln(out, "error: cant reach the server")
		return
	}

	fmt.Fprintf(out, "error: %s\n", err)
}

func renderValidationErrors(out io.Writer, errs []*CustomError) {
	for _, e := range errs {
		fmt.Fprintf(out, "%s %s\n", e.Param, e.Msg)
	}
}
