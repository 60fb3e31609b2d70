package resultset

//go:generate mockgen -source=logging.go -destination=mock_logger.go -package=resultset

// Logger is the diagnostic sink for recoverable decode conditions, such
// as an unknown field being skipped. It matches the logger client's
// method set so that client can be injected directly. A nil Logger
// silences diagnostics without changing decode behavior.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}
