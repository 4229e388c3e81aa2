package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCartEmpty blocks order assembly when there is nothing to order.
// Unlike field errors it is not attributable to a single input.
var ErrCartEmpty = errors.New("checkout: cart is empty")

// ValidationError carries one message per invalid field. First names the
// field that should receive focus.
type ValidationError struct {
	Fields map[string]string
	First  string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("checkout: invalid fields: %s", strings.Join(names, ", "))
}
