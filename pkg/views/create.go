package views

import (
	"context"
	"fmt"
	"io"

	"campusclone/pkg/api"
	"campusclone/pkg/posts"

	"go.uber.org/zap"
)

// CreateView is the create-post screen.
type CreateView struct {
	API     PostsAPI
	Users   UsersAPI
	Content *posts.Store
	Logger  *zap.SugaredLogger
	Out     io.Writer
}

type CreatePostForm struct {
	Title       *string
	Content     *string
	Category    *string
	Link        *string
	Attachments []string
	Tags        []string
}

func (f *CreatePostForm) validate() []*CustomError {
	title := &Validator{value: f.Title, field: "title"}
	titleErr := func() *CustomError {
		err := title.Required()
		if err != nil {
			return err
		}
		err = title.Empty()
		if err != nil {
			return err
		}
		err = title.MaxLength(100)
		if err != nil {
			return err
		}
		return title.NoEdgeWhitespace()
	}()

	content := &Validator{value: f.Content, field: "content"}
	contentErr := func() *CustomError {
		err := content.Required()
		if err != nil {
			return err
		}
		return content.MinLength(4)
	}()

	category := &Validator{value: f.Category, field: "category"}
	categoryErr := func() *CustomError {
		err := category.Required()
		if err != nil {
			return err
		}
		err = category.Empty()
		if err != nil {
			return err
		}
		return category.Custom(func(value string) bool {
			return posts.ValidCategory(posts.Category(value))
		}, "is not a known category")
	}()

	var linkErr *CustomError
	if f.Link != nil && *f.Link != "" {
		link := &Validator{value: f.Link, field: "link"}
		linkErr = link.URL()
	}

	return mergeErrors(titleErr, contentErr, categoryErr, linkErr)
}

// Tag resolves a member search query and records the first match on the
// form, so the created post carries the tagged user ids.
func (v *CreateView) Tag(ctx context.Context, form *CreatePostForm, query string) error {
	users, err := v.Users.SearchUsers(ctx, query)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	if len(users) == 0 {
		fmt.Fprintf(v.Out, "no members match %q\n", query)
		return nil
	}

	form.Tags = append(form.Tags, users[0].ID)
	fmt.Fprintf(v.Out, "tagged %s\n", users[0].Name)

	return nil
}

// Submit creates the post server-side and prepends the server's copy (with
// its assigned id) to the store. A failed call leaves the collection as it
// was.
func (v *CreateView) Submit(ctx context.Context, form *CreatePostForm) error {
	validationErrors := form.validate()
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid post form")
	}

	req := &api.CreatePostReq{
		Title:       *form.Title,
		Content:     *form.Content,
		Category:    posts.Category(*form.Category),
		Attachments: form.Attachments,
		Tags:        form.Tags,
	}
	if form.Link != nil {
		req.Link = *form.Link
	}

	created, err := v.API.CreatePost(ctx, req)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	v.Content.CreatePost(created)
	fmt.Fprintf(v.Out, "posted %q\n", created.Title)

	return nil
}
