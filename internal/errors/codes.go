package errors

// Error codes
const (
	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrReadConfig    ErrorCode = "read_config_failed"

	// Adapter errors
	ErrConnectionFailure ErrorCode = "connection_failure"
	ErrCatalogLoad       ErrorCode = "catalog_load_failure"
	ErrMetricRead        ErrorCode = "metric_read_failure"
	ErrTroubleCodeAction ErrorCode = "trouble_code_action_failure"

	// Application errors
	ErrInitApp     ErrorCode = "init_app_failed"
	ErrRefreshLoop ErrorCode = "refresh_loop_failed"
)

var errorMessages = map[ErrorCode]string{
	ErrInvalidConfig:     "Invalid configuration",
	ErrReadConfig:        "Failed to read configuration",
	ErrConnectionFailure: "Could not connect to the OBD adapter",
	ErrCatalogLoad:       "Failed to load the command catalog",
	ErrMetricRead:        "Failed to read metric",
	ErrTroubleCodeAction: "Trouble code request failed",
	ErrInitApp:           "Failed to initialize application",
	ErrRefreshLoop:       "Error in refresh loop",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
