package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrRetriesExhausted   = errors.New("rate limited: retries exhausted")
	ErrUnknownSource      = errors.New("unknown source")
)

// ConfigError is returned when a source is called without the credentials it
// needs. It is never retried.
type ConfigError struct {
	Source  string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Source, strings.Join(e.Missing, " or "))
}

func (e *ConfigError) Unwrap() error { return ErrMissingCredentials }

// IngestionError is the terminal failure of a source call after the retry
// budget was spent.
type IngestionError struct {
	Source   string
	Attempts int
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("%s: gave up after %d attempts: %v", e.Source, e.Attempts, ErrRetriesExhausted)
}

func (e *IngestionError) Unwrap() error { return ErrRetriesExhausted }

// StatusError is a non-2xx, non-429 upstream response.
type StatusError struct {
	Source string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("%s status %d body=%s", e.Source, e.Status, e.Body)
}
