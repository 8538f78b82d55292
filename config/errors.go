package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidData matches every error about the content of a config file.
	ErrInvalidData = errors.New("invalid config data")
	// ErrInvalidPortRange matches a scanner range whose start is past its end.
	ErrInvalidPortRange = errors.New("invalid port range")
)

// FormatError is returned by Load when the file opened fine but its content
// does not decode into Settings. Err carries the decoder's diagnostic.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrInvalidData }

type PortRangeError struct {
	Start, End uint16
}

func (e *PortRangeError) Error() string {
	return fmt.Sprintf("port_range_start (%d) cannot be greater than port_range_end (%d)", e.Start, e.End)
}

func (e *PortRangeError) Is(target error) bool { return target == ErrInvalidPortRange }
