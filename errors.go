package treetranslation

import (
	"errors"
	"fmt"
)

// DeleteError is returned by Store.Delete if the record could not be removed,
// e.g. because it is still referenced.
type DeleteError struct {
	ID int64
	// Detail is the driver supplied description of the failure, if any.
	Detail string
	Err    error
}

func (err *DeleteError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("could not delete tree translation %d: %s", err.ID, err.Detail)
	}
	return fmt.Sprintf("could not delete tree translation %d: %v", err.ID, err.Err)
}

func (err *DeleteError) Unwrap() error {
	return err.Err
}

// Message returns the text to show a user for a failed delete: the
// structured detail if err carries one, err.Error() otherwise.
func Message(err error) string {
	var deleteErr *DeleteError
	if errors.As(err, &deleteErr) && deleteErr.Detail != "" {
		return deleteErr.Detail
	}
	return err.Error()
}
