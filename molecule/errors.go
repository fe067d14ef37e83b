package molecule

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every decode failure in this package.
var ErrMalformed = errors.New("molecule: malformed data")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
