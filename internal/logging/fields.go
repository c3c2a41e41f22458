package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldEndpoint   = "endpoint"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSlug       = "slug"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldStore      = "store"
	FieldAction     = "action"
)
