package schemafile

import "errors"

var (
	ErrInvalidSchema   = errors.New("invalid schema document")
	ErrInvalidRules    = errors.New("invalid sanitizer document")
	ErrUnknownCheck    = errors.New("unknown check")
	ErrFailedToParse   = errors.New("failed to parse document")
	ErrFailedToRead    = errors.New("failed to read document")
	ErrLoadingCanceled = errors.New("loading documents canceled")
	ErrNotADirectory   = errors.New("path is not a directory")
	ErrNoDocuments     = errors.New("no schema documents found")
)
