package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks errors caused by a missing or malformed analysis target.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a target that cannot be analyzed. It is fatal for the
// target only; callers processing several targets continue with the next one.
type InputError struct {
	Target string
	Err    error
}

// NewInputError creates an InputError for the given target.
func NewInputError(target string, err error) *InputError {
	return &InputError{Target: target, Err: err}
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid input %q", e.Target)
	}

	return fmt.Sprintf("invalid input %q: %v", e.Target, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *InputError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError reports invalid run settings. Configuration errors are
// reported before any mutant is generated.
type ConfigError struct {
	Key string
	Err error
}

// NewConfigError creates a ConfigError for the given settings key.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{Key: key, Err: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %v", e.Key, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
