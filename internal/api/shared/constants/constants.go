package constants

const (
	MAX_MULTIPART_MEMORY  = int64(32 << 20)
	REQUEST_ID_HEADER     = "X-Request-ID"
	CLIP_FILE_FORM_FIELD  = "file"
	CREATOR_QUERY_PARAM   = "creator"
	HEALTH_STATUS_HEALTHY = "healthy"
	HEALTH_PATH           = "/health"
)
