// Package ports defines the core interfaces between the domain and the
// adapters.
package ports

//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks

// Logger defines the interface for logging.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
