// Package errors provides structured error handling for the progress wheel.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a rejected configuration.
	KindConfig
	// KindRender indicates a rendering error.
	KindRender
	// KindStorage indicates a snapshot persistence failure.
	KindStorage
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindStorage:
		return "storage"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// WheelError represents a structured error raised by the wheel packages.
type WheelError struct {
	// Op is the operation that failed (e.g., "wheel.Configure").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WheelError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WheelError) Unwrap() error {
	return e.Err
}

// ConfigError describes a configuration value that cannot be used.
type ConfigError struct {
	// Field is the configuration field name.
	Field string
	// Value is the rejected value.
	Value any
	// Reason explains the constraint that was violated.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "wheel.progressChanged").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the wheel packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WheelError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
