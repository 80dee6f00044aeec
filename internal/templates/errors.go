package templates

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTranslatorRequired is returned by NewService without a translator.
	ErrTranslatorRequired = errors.New("templates: translator is required")
	// ErrRendererConfig wraps go-template construction failures.
	ErrRendererConfig = errors.New("templates: renderer configuration is incomplete")
	// ErrFragmentNotFound is returned when no variant exists along the locale chain.
	ErrFragmentNotFound = errors.New("templates: fragment not found")
	// ErrInvalidRenderRequest is returned for a request without a fragment code.
	ErrInvalidRenderRequest = errors.New("templates: invalid render request")
)

// MissingFieldsError lists the data keys a fragment needs but did not get.
type MissingFieldsError struct {
	Code   string
	Fields []string
}

func (e MissingFieldsError) Error() string {
	return fmt.Sprintf("templates: %s needs %s", e.Code, strings.Join(e.Fields, ", "))
}
