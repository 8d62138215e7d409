package plan

import "fmt"

// ArgumentError is a malformed or invalid user-supplied value.
type ArgumentError struct {
	Flag string
	Err  error
}

func (e *ArgumentError) Error() string {
	if e.Flag == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid %s: %v", e.Flag, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// PathError is an input or output path that cannot be used.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
