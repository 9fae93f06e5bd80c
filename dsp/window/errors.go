package window

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned by Parse for an unrecognised window name.
var ErrUnknownType = errors.New("window: unknown type")

// Parse resolves a window name as printed by Type.String, ignoring case.
func Parse(name string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}
