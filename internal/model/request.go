package model

import "encoding/json"

// Batch is the invocation payload delivered by S3 event notifications.
// Records are kept raw so each one can be decoded, and fail, on its own.
// A nil Records slice means the container was absent.
type Batch struct {
	Records []json.RawMessage `json:"Records"`
}
