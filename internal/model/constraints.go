package model

// Domain constants shared across handler, config, and storage packages.
const (
	EventSourceS3    = "aws:s3"
	DefaultTableName = "FileMetadata"
	UnknownFileType  = "unknown"
	UnknownRegion    = "unknown"

	// TimestampLayout matches the millisecond ISO-8601 form S3 uses for eventTime.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)
