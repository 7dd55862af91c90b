package loader

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBlueprint  = errors.New("invalid blueprint")
	ErrBlueprintNotFound = errors.New("blueprint not found")
	ErrExtendsCycle      = errors.New("blueprint extends itself")
	ErrPathConflict      = errors.New("field path declared both as a field and as a container")
	ErrNoBlueprints      = errors.New("no blueprints found")
	ErrLoadingCancelled  = errors.New("blueprint loading cancelled")
	ErrInvalidConfig     = errors.New("invalid site config")
)

// FileError ties a loading failure to the blueprint it came from.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("blueprint %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
