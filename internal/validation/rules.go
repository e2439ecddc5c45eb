// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/stringveil/internal/errors"
)

// goPackageNameRegex matches a valid lower-case Go package name.
var goPackageNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// GoPackageName validates that a string is a usable Go package name for the
// generated artifacts: lower-case letter first, then lower-case letters,
// digits, or underscores.
var GoPackageName = validation.NewStringRuleWithError(
	func(s string) bool {
		return goPackageNameRegex.MatchString(s)
	},
	validation.NewError("validation_go_package_name", "must be a valid lower-case Go package name"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
