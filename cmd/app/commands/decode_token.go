package commands

import (
	"fmt"
	"strconv"

	apperrors "github.com/allisson/stringveil/internal/errors"
	tableDomain "github.com/allisson/stringveil/internal/table/domain"
)

// RunDecodeToken splits a token from an emitted token map into its offset and
// length halves, for debugging builds. Accepts decimal or 0x-prefixed hex.
func RunDecodeToken(tokenStr string) error {
	value, err := strconv.ParseUint(tokenStr, 0, 64)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("token %q is not a 64-bit integer", tokenStr))
	}

	token := tableDomain.Token(value)
	fmt.Printf("Token:  0x%016x\n", value)
	fmt.Printf("Offset: %d\n", token.Offset())
	fmt.Printf("Length: %d\n", token.Length())

	return nil
}
