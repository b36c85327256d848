package views

import (
	"context"
	"fmt"
	"io"

	"campusclone/pkg/api"
	"campusclone/pkg/comments"
	"campusclone/pkg/posts"
	"campusclone/pkg/session"

	"go.uber.org/zap"
)

// PostView is the single-post screen. The post itself becomes the store's
// current-post value copy; the comment thread is this view's own local list,
// fetched independently of the post collection.
type PostView struct {
	Posts    PostsAPI
	Comments CommentsAPI
	Content  *posts.Store
	Session  *session.Store
	Thread   *comments.Thread
	Logger   *zap.SugaredLogger
	Out      io.Writer
}

func (v *PostView) Mount(ctx context.Context, postID string) error {
	p, err := v.Posts.Post(ctx, postID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.SetCurrentPost(p)

	thread, err := v.Comments.PostComments(ctx, p.ID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Thread.Replace(thread)
	v.Render()

	return nil
}

func (v *PostView) Render() {
	p := v.Content.Current()
	if p == nil {
		fmt.Fprintln(v.Out, "no post selected")
		return
	}

	fmt.Fprintf(v.Out, "%s\nby %s in %s\n\n%s\n", p.Title, p.Author.Name, p.Category, p.Content)
	if p.Link != "" {
		fmt.Fprintf(v.Out, "link: %s\n", p.Link)
	}
	for _, a := range p.Attachments {
		fmt.Fprintf(v.Out, "attachment: %s\n", a)
	}
	fmt.Fprintf(v.Out, "%d likes, %d saves, %d comments\n", len(p.Likes), len(p.Saves), p.CommentsCount)

	for _, c := range v.Thread.Comments() {
		fmt.Fprintf(v.Out, "  %s: %s (%d likes)\n", c.Author.Name, c.Content, len(c.Likes))
		for _, r := range c.Replies {
			fmt.Fprintf(v.Out, "    %s: %s\n", r.Author.Name, r.Content)
		}
	}
}

func validateCommentContent(content *string) []*CustomError {
	body := &Validator{value: content, field: "content"}
	bodyErr := func() *CustomError {
		err := body.Required()
		if err != nil {
			return err
		}
		return body.Empty()
	}()

	return mergeErrors(bodyErr)
}

// AddComment posts the comment, appends the server's copy to the local
// thread and bumps the aggregate count on the post entries.
func (v *PostView) AddComment(ctx context.Context, content string) error {
	validationErrors := validateCommentContent(&content)
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid comment")
	}

	p := v.Content.Current()
	if p == nil {
		return fmt.Errorf("no post selected")
	}

	c, err := v.Comments.AddComment(ctx, &api.AddCommentReq{PostID: p.ID, Content: content})
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Thread.Add(c)
	v.Content.AddComment(p.ID)

	return nil
}

// Reply nests one level under an existing comment.
func (v *PostView) Reply(ctx context.Context, parentID, content string) error {
	validationErrors := validateCommentContent(&content)
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid reply")
	}

	p := v.Content.Current()
	if p == nil {
		return fmt.Errorf("no post selected")
	}

	r, err := v.Comments.AddComment(ctx, &api.AddCommentReq{PostID: p.ID, Content: content, ParentID: parentID})
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	if !v.Thread.AddReply(parentID, r) {
		v.Logger.Warnw("reply parent not in local thread", "comment", parentID)
	}

	return nil
}

func (v *PostView) DeleteComment(ctx context.Context, commentID string) error {
	p := v.Content.Current()
	if p == nil {
		return fmt.Errorf("no post selected")
	}

	err := v.Comments.DeleteComment(ctx, commentID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Thread.Delete(commentID)
	v.Content.DeleteComment(p.ID)

	return nil
}

func (v *PostView) LikeComment(ctx context.Context, commentID string) error {
	u := v.Session.User()
	if u == nil {
		fmt.Fprintln(v.Out, "sign in to like comments")
		return nil
	}

	likes, err := v.Comments.LikeComment(ctx, commentID, u.ID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Thread.UpdateLikes(commentID, likes)

	return nil
}

func (v *PostView) Like(ctx context.Context) error {
	p := v.Content.Current()
	if p == nil {
		return fmt.Errorf("no post selected")
	}

	u := v.Session.User()
	if u == nil {
		fmt.Fprintln(v.Out, "sign in to like posts")
		return nil
	}

	likes, err := v.Posts.LikePost(ctx, p.ID, u.ID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.UpdateLikes(p.ID, likes)

	return nil
}

// Edit applies an owner-only partial update and commits the same patch to
// both the canonical entry and the current copy.
func (v *PostView) Edit(ctx context.Context, req *api.UpdatePostReq) error {
	p := v.Content.Current()
	if p == nil {
		return fmt.Errorf("no post selected")
	}

	u := v.Session.User()
	if u == nil || p.Author.ID != u.ID {
		fmt.Fprintln(v.Out, "only the author can edit a post")
		return nil
	}

	updated, err := v.Posts.UpdatePost(ctx, p.ID, req)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.UpdatePost(p.ID, &posts.Patch{
		Title:       &updated.Title,
		Content:     &updated.Content,
		Category:    &updated.Category,
		Link:        &updated.Link,
		Attachments: &updated.Attachments,
		Tags:        &updated.Tags,
	})

	return nil
}
