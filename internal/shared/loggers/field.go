package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"
	FieldUserAgent  = "user_agent"

	FieldRunID     = "run_id"
	FieldPhase     = "phase"
	FieldPlugin    = "plugin"
	FieldTag       = "tag"
	FieldTimestamp = "ts"
	FieldWatermark = "watermark"
	FieldListener  = "listener"
	FieldArtifact  = "artifact"
)
