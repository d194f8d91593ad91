package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns an error instance that wraps the original error with
// additional information. It returns nil if the provided error is nil.
// Use this function to create an error instance describing a
// field/attribute error.
//
// Use Go naming for the field name, for example UserName or MaxAge.
// When the error is for a nested field, use dot notation to construct
// the path, for example Holder.Kind.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}

	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}

	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField is a shortcut function to club together error(s) with a
// given field error.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// FieldErrors returns the list of all errors that are created for the
// given field name.
func FieldErrors(errOrNil error, fieldName string) []error {
	if isNilErr(errOrNil) {
		return nil
	}

	switch err := errOrNil.(type) {
	case *fieldError:
		if err.field == fieldName {
			return []error{err}
		}
		return FieldErrors(err.parent, fieldName)
	case *multiError:
		var res []error
		for _, e := range err.errs {
			res = append(res, FieldErrors(e, fieldName)...)
		}
		return res
	case causer:
		return FieldErrors(err.Cause(), fieldName)
	default:
		return nil
	}
}
