package errors

import (
	"fmt"
	"strings"
)

// Append combines any number of errors into a single one. Nil errors
// are ignored. If all given errors are nil (or no error is given), nil
// is returned. A multi error flattens nested multi errors so that the
// result is always a single level deep.
func Append(errs ...error) error {
	var flat []error
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case *multiError:
			flat = append(flat, e.errs...)
		default:
			if isNilErr(err) {
				continue
			}
			flat = append(flat, err)
		}
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiError{errs: flat}
	}
}

// multiError is a group of errors acting as a single error value.
type multiError struct {
	errs []error
}

var _ error = (*multiError)(nil)

func (me *multiError) Error() string {
	if len(me.errs) == 1 {
		return me.errs[0].Error()
	}
	points := make([]string, len(me.errs))
	for i, err := range me.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s",
		len(me.errs), strings.Join(points, "\n\t"))
}

// Cause returns the cause of the first error, consistent with the
// fail-fast approach used everywhere else.
func (me *multiError) Cause() error {
	if len(me.errs) == 0 {
		return nil
	}
	return me.errs[0]
}
