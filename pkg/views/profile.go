package views

import (
	"context"
	"fmt"
	"io"

	"campusclone/pkg/posts"
	"campusclone/pkg/session"
	"campusclone/pkg/user"

	"go.uber.org/zap"
)

// ProfileView shows and edits the signed-in user's profile, and lists the
// user's own and saved entries from the loaded collection.
type ProfileView struct {
	API      AuthAPI
	Comments CommentsAPI
	Content  *posts.Store
	Session  *session.Store
	Logger   *zap.SugaredLogger
	Out      io.Writer
}

func (v *ProfileView) Render() {
	u := v.Session.User()
	if u == nil {
		fmt.Fprintln(v.Out, "not signed in")
		return
	}

	fmt.Fprintf(v.Out, "%s (%s)\n", u.Name, u.Username)
	if u.Email != "" {
		fmt.Fprintf(v.Out, "email: %s\n", u.Email)
	}
	if u.Department != "" || u.College != "" {
		fmt.Fprintf(v.Out, "%s, %s\n", u.Department, u.College)
	}
	if u.Bio != "" {
		fmt.Fprintln(v.Out, u.Bio)
	}
	if u.LinkedIn != "" {
		fmt.Fprintf(v.Out, "linkedin: %s\n", u.LinkedIn)
	}
	if u.GitHub != "" {
		fmt.Fprintf(v.Out, "github: %s\n", u.GitHub)
	}
}

// Update sends the partial edit and, on success, merges the same patch into
// the session identity without a re-login.
func (v *ProfileView) Update(ctx context.Context, patch *user.Patch) error {
	if v.Session.User() == nil {
		return fmt.Errorf("not signed in")
	}

	validationErrors := validatePatch(patch)
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid profile update")
	}

	_, err := v.API.UpdateMe(ctx, patch)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Session.ApplyProfileEdit(patch)
	fmt.Fprintln(v.Out, "profile updated")

	return nil
}

func validatePatch(patch *user.Patch) []*CustomError {
	var nameErr, linkedinErr, githubErr *CustomError

	if patch.Name != nil {
		name := &Validator{value: patch.Name, field: "full_name"}
		nameErr = name.Empty()
	}
	if patch.LinkedIn != nil && *patch.LinkedIn != "" {
		linkedin := &Validator{value: patch.LinkedIn, field: "linkedin"}
		linkedinErr = linkedin.URL()
	}
	if patch.GitHub != nil && *patch.GitHub != "" {
		github := &Validator{value: patch.GitHub, field: "github"}
		githubErr = github.URL()
	}

	return mergeErrors(nameErr, linkedinErr, githubErr)
}

func (v *ProfileView) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	pwd := &Validator{value: &newPassword, field: "new_password"}
	pwdErr := func() *CustomError {
		err := pwd.MinLength(8)
		if err != nil {
			return err
		}
		return pwd.MaxLength(72)
	}()

	validationErrors := mergeErrors(pwdErr)
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid password")
	}

	err := v.API.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	fmt.Fprintln(v.Out, "password changed")

	return nil
}

// MyPosts lists the user's own posts. Both tabs filter the canonical
// collection client-side; a fresh feed fetch refreshes them.
func (v *ProfileView) MyPosts() error {
	u := v.Session.User()
	if u == nil {
		return fmt.Errorf("not signed in")
	}

	return v.renderPosts("no posts yet", func(p *posts.Post) bool {
		return p.Author.ID == u.ID
	})
}

// SavedPosts lists the entries the user saved, whoever authored them.
func (v *ProfileView) SavedPosts() error {
	u := v.Session.User()
	if u == nil {
		return fmt.Errorf("not signed in")
	}

	return v.renderPosts("no saved posts", func(p *posts.Post) bool {
		return p.SavedBy(u.ID)
	})
}

func (v *ProfileView) renderPosts(emptyMsg string, keep func(*posts.Post) bool) error {
	shown := 0
	for _, p := range v.Content.Posts() {
		if !keep(p) {
			continue
		}
		fmt.Fprintf(v.Out, "[%s] %s (%d likes, %d comments)\n",
			p.Category, p.Title, len(p.Likes), p.CommentsCount)
		shown++
	}

	if shown == 0 {
		fmt.Fprintln(v.Out, emptyMsg)
	}

	return nil
}

// MyComments lists the user's comment history across posts.
func (v *ProfileView) MyComments(ctx context.Context) error {
	u := v.Session.User()
	if u == nil {
		return fmt.Errorf("not signed in")
	}

	list, err := v.Comments.UserComments(ctx, u.ID)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(v.Out, "no comments yet")
		return nil
	}

	for _, c := range list {
		fmt.Fprintf(v.Out, "on %s: %s\n", c.PostID, c.Content)
	}

	return nil
}
