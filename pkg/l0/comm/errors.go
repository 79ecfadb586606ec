package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChannel indicates a channel outside a-e.
	ErrInvalidChannel = errors.New("invalid channel")
)

// ChannelError reports a channel which can't be parsed.
type ChannelError struct {
	Name string
}

// Error implements error.
func (e *ChannelError) Error() string {
	return fmt.Sprintf("invalid channel %q", e.Name)
}
