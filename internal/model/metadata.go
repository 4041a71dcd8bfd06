package model

// FileMetadata represents a single item in the file metadata DynamoDB table.
// FileID is the partition key; writing the same key again replaces the item.
type FileMetadata struct {
	FileID        string `dynamodbav:"file_id" json:"file_id"`
	BucketName    string `dynamodbav:"bucket_name" json:"bucket_name"`
	FileSizeBytes int64  `dynamodbav:"file_size_bytes" json:"file_size_bytes"`
	UploadTime    string `dynamodbav:"upload_time" json:"upload_time"`
	ProcessedAt   string `dynamodbav:"processed_at" json:"processed_at"`
	FileType      string `dynamodbav:"file_type" json:"file_type"`
	RequestID     string `dynamodbav:"request_id,omitempty" json:"request_id,omitempty"`
	Region        string `dynamodbav:"region" json:"region"`
}

// KeyAttribute is the name of the table's partition key.
const KeyAttribute = "file_id"
