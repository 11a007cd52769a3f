package interfaces

// Logger is the structured logging contract used by every service.
// The production implementation wraps logrus.
//
// Example usage:
//
//	logger.Info("Graph built", map[string]interface{}{
//		"username": "justdataplease",
//		"nodes":    42,
//		"edges":    57,
//	})
type Logger interface {
	// Debug logs detailed troubleshooting information, such as dropped links.
	Debug(msg string, fields map[string]interface{})

	// Info logs general progress.
	Info(msg string, fields map[string]interface{})

	// Warn logs suspicious input that does not stop processing.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that need attention.
	Error(msg string, fields map[string]interface{})
}
