package renderer

import "fmt"

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

// NewDefaultLogger creates a logger that prints to stdout
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{}
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
