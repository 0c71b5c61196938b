package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

func errInvalidDate(flag, value string) error {
	return fmt.Errorf("%s must be YYYY-MM-DD, got %q", flag, value)
}
