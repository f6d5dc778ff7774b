package storage

import (
	"errors"
)

const (
	// DefaultInput is the libSVM model file read when no input is configured.
	DefaultInput = "svm.model"
	// DefaultOutput is the OpenCV storage file written when no output is configured.
	DefaultOutput = "svm.xml"
)

var (
	NotFoundErr      = errors.New("not found")
	CouldNotLoadErr  = errors.New("could not load")
	CouldNotStoreErr = errors.New("could not store")
)

// Source provides the raw lines of a model file.
type Source interface {
	Lines() ([]string, error)
}

// Sink persists a fully rendered document.
type Sink interface {
	Store(payload []byte) error
}
