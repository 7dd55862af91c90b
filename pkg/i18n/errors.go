package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter        = errors.New("translation adapter is nil")
	ErrInvalidBundle     = errors.New("invalid translation bundle")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToReadDir   = errors.New("failed to read translation directory")
	ErrNoTranslations    = errors.New("no translation files found")
	ErrLoadingCancelled  = errors.New("loading translations cancelled")
)

// ErrLanguageNotSupported indicates that the requested language is not available
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
