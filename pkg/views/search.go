package views

import (
	"context"
	"fmt"
	"io"

	"campusclone/pkg/posts"
	"campusclone/pkg/user"

	"go.uber.org/zap"
)

// SearchView filters the already loaded canonical collection locally and
// looks people up server-side.
type SearchView struct {
	Users   UsersAPI
	Content *posts.Store
	Logger  *zap.SugaredLogger
	Out     io.Writer
}

// Filter updates the filter state and recomputes the derived view.
func (v *SearchView) Filter(query string, category posts.Category) error {
	if category != posts.All && !posts.ValidCategory(category) {
		fmt.Fprintf(v.Out, "unknown category %q\n", category)
		return fmt.Errorf("unknown category %q", category)
	}

	v.Content.SetFilter(query, category)
	v.Content.RecomputeFilter()
	v.Render()

	return nil
}

func (v *SearchView) Render() {
	filtered := v.Content.Filtered()
	if len(filtered) == 0 {
		fmt.Fprintln(v.Out, "nothing found")
		return
	}

	for _, p := range filtered {
		fmt.Fprintf(v.Out, "[%s] %s by %s\n", p.Category, p.Title, p.Author.Name)
	}
}

// People queries the user search endpoint; with an empty query it browses
// the whole member directory.
func (v *SearchView) People(ctx context.Context, query string) error {
	var users []*user.User
	var err error

	if query == "" {
		users, err = v.Users.Users(ctx)
	} else {
		users, err = v.Users.SearchUsers(ctx, query)
	}
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(v.Out, "nobody found")
		return nil
	}

	for _, u := range users {
		fmt.Fprintf(v.Out, "%s (%s), %s, %s\n", u.Name, u.Username, u.Department, u.College)
	}

	return nil
}

// Profile shows another member's public page.
func (v *SearchView) Profile(ctx context.Context, id string) error {
	u, err := v.Users.User(ctx, id)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	fmt.Fprintf(v.Out, "%s (%s)\n", u.Name, u.Username)
	if u.Department != "" || u.College != "" {
		fmt.Fprintf(v.Out, "%s, %s\n", u.Department, u.College)
	}
	if u.Bio != "" {
		fmt.Fprintln(v.Out, u.Bio)
	}

	return nil
}
