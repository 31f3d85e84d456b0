package config

import "fmt"

// FileError represents a config file that exists but cannot be opened or read
type FileError struct {
	Path  string
	Cause error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.Path, e.Cause)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// ValueError represents a setting whose value cannot be parsed
type ValueError struct {
	Source Source
	Name   string
	Value  string
	Cause  error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s from %s: %q: %v", e.Name, e.Source, e.Value, e.Cause)
}

func (e *ValueError) Unwrap() error {
	return e.Cause
}
