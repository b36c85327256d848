package views

import (
	"context"
	"fmt"
	"io"

	"campusclone/pkg/posts"
	"campusclone/pkg/session"

	"go.uber.org/zap"
)

// FeedView is the dashboard: it fetches the post list on mount and renders
// the derived filtered view. Like/save/delete go through the server first
// and only then mutate the store with the authoritative response.
type FeedView struct {
	API     PostsAPI
	Content *posts.Store
	Session *session.Store
	Logger  *zap.SugaredLogger
	Out     io.Writer
}

func (v *FeedView) Mount(ctx context.Context) error {
	list, err := v.API.Posts(ctx)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.LoadPosts(list)
	v.Render()

	return nil
}

func (v *FeedView) Render() {
	filtered := v.Content.Filtered()
	if len(filtered) == 0 {
		fmt.Fprintln(v.Out, "no posts")
		return
	}

	u := v.Session.User()
	for _, p := range filtered {
		marker := ""
		if u != nil && p.LikedBy(u.ID) {
			marker = " (liked)"
		}
		fmt.Fprintf(v.Out, "[%s] %s by %s (%d likes, %d comments)%s\n",
			p.Category, p.Title, p.Author.Name, len(p.Likes), p.CommentsCount, marker)
	}
}

func (v *FeedView) Like(ctx context.Context, postID string) error {
	u := v.Session.User()
	if u == nil {
		fmt.Fprintln(v.Out, "sign in to like posts")
		return nil
	}

	likes, err := v.API.LikePost(ctx, postID, u.ID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.UpdateLikes(postID, likes)

	return nil
}

func (v *FeedView) Save(ctx context.Context, postID string) error {
	u := v.Session.User()
	if u == nil {
		fmt.Fprintln(v.Out, "sign in to save posts")
		return nil
	}

	saves, err := v.API.SavePost(ctx, postID, u.ID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.UpdateSaves(postID, saves)

	return nil
}

// Delete removes an own post. Ownership is enforced server-side as well;
// the local check just avoids a pointless round trip.
func (v *FeedView) Delete(ctx context.Context, postID string) error {
	u := v.Session.User()
	if u == nil {
		fmt.Fprintln(v.Out, "sign in to delete posts")
		return nil
	}

	for _, p := range v.Content.Posts() {
		if p.Is(postID) && p.Author.ID != u.ID {
			fmt.Fprintln(v.Out, "only the author can delete a post")
			return nil
		}
	}

	err := v.API.DeletePost(ctx, postID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.DeletePost(postID)

	return nil
}
