package model

import (
	"errors"
	"fmt"
)

var (
	ErrPathNotFound      = errors.New("path does not exist")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingSecret     = errors.New("required secret is not set")
)

// ConfigurationError is fatal: bad or missing path, unsupported format,
// missing secrets. It is never retried.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UpstreamError reports a failure of an external collaborator
// (market API, mail server). The operator re-runs manually.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// DataQualityWarning is non-fatal; processing continues.
type DataQualityWarning struct {
	Column  string
	Message string
}

func (w *DataQualityWarning) Error() string {
	return fmt.Sprintf("column %q: %s", w.Column, w.Message)
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUpstreamError reports whether err carries an UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
