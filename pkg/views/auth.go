package views

import (
	"context"
	"fmt"
	"io"

	"campusclone/pkg/api"
	"campusclone/pkg/session"

	"go.uber.org/zap"
)

// AuthView drives the login and registration screens.
type AuthView struct {
	API     AuthAPI
	Session *session.Store
	Logger  *zap.SugaredLogger
	Out     io.Writer
}

type LoginForm struct {
	Username *string
	Password *string
}

func (f *LoginForm) validate() []*CustomError {
	usr := &Validator{value: f.Username, field: "username"}
	usrErr := func() *CustomError {
		err := usr.Required()
		if err != nil {
			return err
		}
		err = usr.Empty()
		if err != nil {
			return err
		}
		err = usr.MaxLength(32)
		if err != nil {
			return err
		}
		err = usr.NoEdgeWhitespace()
		if err != nil {
			return err
		}

		return usr.Matches(usernameRe)
	}()

	pwd := &Validator{value: f.Password, field: "password"}
	pwdErr := func() *CustomError {
		err := pwd.Required()
		if err != nil {
			return err
		}
		err = pwd.Empty()
		if err != nil {
			return err
		}
		err = pwd.MinLength(8)
		if err != nil {
			return err
		}
		return pwd.MaxLength(72)
	}()

	return mergeErrors(usrErr, pwdErr)
}

// Login runs the full authentication round trip: obtain a token, then fetch
// the profile with it; only both together complete authentication.
func (v *AuthView) Login(ctx context.Context, form *LoginForm) error {
	validationErrors := form.validate()
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid login form")
	}

	v.Session.BeginAuth()

	token, err := v.API.Login(ctx, *form.Username, *form.Password)
	if err != nil {
		v.Session.FailAuth(userMessage(err, "invalid credentials"))
		renderError(v.Out, err)
		return err
	}

	v.Session.SetToken(token)

	u, err := v.API.Me(ctx)
	if err != nil {
		v.Session.FailAuth(userMessage(err, "cant load profile"))
		renderError(v.Out, err)
		return err
	}

	v.Session.CompleteAuth(u, token)
	fmt.Fprintf(v.Out, "signed in as %s\n", u.Username)

	return nil
}

type RegisterForm struct {
	LoginForm
	Email *string
	Name  *string
}

func (f *RegisterForm) validate() []*CustomError {
	errs := f.LoginForm.validate()

	email := &Validator{value: f.Email, field: "email"}
	emailErr := func() *CustomError {
		err := email.Required()
		if err != nil {
			return err
		}
		err = email.Empty()
		if err != nil {
			return err
		}
		return email.Custom(emailRe.MatchString, "is not a valid email address")
	}()

	name := &Validator{value: f.Name, field: "full_name"}
	nameErr := func() *CustomError {
		err := name.Required()
		if err != nil {
			return err
		}
		return name.Empty()
	}()

	return append(errs, mergeErrors(emailErr, nameErr)...)
}

// Register creates the account and immediately signs in with the same
// credentials.
func (v *AuthView) Register(ctx context.Context, form *RegisterForm) error {
	validationErrors := form.validate()
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid registration form")
	}

	_, err := v.API.Register(ctx, &api.RegisterReq{
		Username: *form.Username,
		Password: *form.Password,
		Email:    *form.Email,
		Name:     *form.Name,
	})
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	return v.Login(ctx, &form.LoginForm)
}

// ForgotPassword asks the backend to mail reset instructions. The success
// message is the same whether or not the address is registered.
func (v *AuthView) ForgotPassword(ctx context.Context, email string) error {
	mail := &Validator{value: &email, field: "email"}
	mailErr := func() *CustomError {
		err := mail.Empty()
		if err != nil {
			return err
		}
		return mail.Custom(emailRe.MatchString, "is not a valid email address")
	}()

	validationErrors := mergeErrors(mailErr)
	if len(validationErrors) > 0 {
		renderValidationErrors(v.Out, validationErrors)
		return fmt.Errorf("invalid email")
	}

	err := v.API.ForgotPassword(ctx, email)
	if err != nil {
		renderError(v.Out, err)
		return err
	}

	fmt.Fprintln(v.Out, "password reset instructions sent")

	return nil
}

func (v *AuthView) SignOut() {
	v.Session.SignOut()
	fmt.Fprintln(v.Out, "signed out")
}

// userMessage extracts the server message for the session error field,
// falling back when the failure carried none.
func userMessage(err error, fallback string) string {
	if reqErr, ok := err.(*api.RequestError); ok && reqErr.Message != "" {
		return reqErr.Message
	}

	return fallback
}
