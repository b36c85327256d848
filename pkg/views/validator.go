package views

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Form rules are resolved entirely inside the view layer: a form with
// errors is rendered back to the user and no request is made.

var (
	usernameRe = regexp.MustCompile("^[a-zA-Z0-9_-]+$")
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// CustomError is a single field-level validation failure.
type CustomError struct {
	Param string
	Value string
	Msg   string
}

type Validator struct {
	field string
	value *string
}

func (rv *Validator) Required() *CustomError {
	if rv.value == nil {
		return &CustomError{Param: rv.field, Msg: "is required"}
	}

	return nil
}

func (rv *Validator) Empty() *CustomError {
	if utf8.RuneCountInString(*rv.value) == 0 {
		return &CustomError{Param: rv.field, Value: *rv.value, Msg: "cannot be blank"}
	}

	return nil
}

func (rv *Validator) MinLength(min int) *CustomError {
	lenStr := utf8.RuneCountInString(*rv.value)
	if lenStr < min {
		return &CustomError{Param: rv.field, Value: *rv.value,
			Msg: fmt.Sprintf("must be at least %d characters long", min)}
	}

	return nil
}

func (rv *Validator) MaxLength(max int) *CustomError {
	lenStr := utf8.RuneCountInString(*rv.value)
	if lenStr > max {
		return &CustomError{Param: rv.field, Value: *rv.value,
			Msg: fmt.Sprintf("must be at most %d characters long", max)}
	}

	return nil
}

func (rv *Validator) NoEdgeWhitespace() *CustomError {
	if strings.TrimSpace(*rv.value) != *rv.value {
		return &CustomError{Param: rv.field, Value: *rv.value,
			Msg: "cannot start or end with whitespace"}
	}

	return nil
}

func (rv *Validator) Custom(validate func(string) bool, msg string) *CustomError {
	if !validate(*rv.value) {
		return &CustomError{Param: rv.field, Value: *rv.value, Msg: msg}
	}

	return nil
}

func (rv *Validator) Matches(re *regexp.Regexp) *CustomError {
	if !re.MatchString(*rv.value) {
		return &CustomError{Param: rv.field, Value: *rv.value,
			Msg: "contains invalid characters"}
	}

	return nil
}

func (rv *Validator) URL() *CustomError {
	_, err := url.ParseRequestURI(*rv.value)
	if err != nil {
		return &CustomError{Param: rv.field, Value: *rv.value, Msg: "is invalid"}
	}

	return nil
}

func mergeErrors(validations ...*CustomError) []*CustomError {
	result := make([]*CustomError, 0, 2)

	for _, err := range validations {
		if err == nil {
			continue
		}

		result = append(result, err)
	}

	return result
}
