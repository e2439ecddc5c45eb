// Package domain defines the obfuscation build inputs and outputs: the
// literal manifest consumed from the (out-of-scope) literal rewriter and the
// token map handed back to it.
package domain

import (
	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/stringveil/internal/validation"
)

// Manifest lists the string literals to protect in one build unit. The file
// format is JSONC, comments and trailing commas are allowed.
type Manifest struct {
	// Package is the Go package the generated artifacts belong to.
	Package string `json:"package"`
	// Identity distinguishes build units sharing one output package; it is
	// sanitized before being appended to the generated names and may be
	// empty.
	Identity string `json:"identity"`
	// Strings are the literals to register, in order. Order matters: the
	// token map refers to entries by manifest index. Duplicate and empty
	// strings are allowed; each entry always gets its own table span.
	Strings []string `json:"strings"`
}

// Validate checks the manifest invariants.
func (m Manifest) Validate() error {
	return appvalidation.WrapValidationError(validation.ValidateStruct(&m,
		validation.Field(&m.Package, validation.Required, appvalidation.GoPackageName),
	))
}
