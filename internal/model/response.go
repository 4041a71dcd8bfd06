package model

// Body status values.
const (
	StatusOK             = "ok"
	StatusPartialFailure = "partial_failure"
	StatusInvalidEvent   = "invalid_event"
)

// Response is returned from every invocation, including partial failures.
type Response struct {
	StatusCode int          `json:"statusCode"`
	Body       ResponseBody `json:"body"`
}

// ResponseBody summarises one processed batch.
type ResponseBody struct {
	Status         string      `json:"status"`
	Message        string      `json:"message"`
	ProcessedFiles int         `json:"processed_files"`
	TotalRecords   int         `json:"total_records"`
	Errors         []ItemError `json:"errors"`
}

// ItemError identifies one failed record by object key or, when no key is
// available, by its position in the batch.
type ItemError struct {
	File        string `json:"file,omitempty"`
	RecordIndex *int   `json:"record_index,omitempty"`
	Error       string `json:"error"`
}
