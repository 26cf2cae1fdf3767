package domain

// Logger defines the interface for logging
type Logger interface {
	Debug(message string)
	Info(message string)
	Error(message string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string) {}
func (NopLogger) Info(string)  {}
func (NopLogger) Error(string) {}
