package docling

import "encoding/json"

// Conversion statuses reported by docling-serve.
const (
	StatusSuccess        = "success"
	StatusPartialSuccess = "partial_success"
	StatusFailure        = "failure"
	StatusSkipped        = "skipped"
)

// Task statuses reported by the async API.
const (
	TaskPending = "pending"
	TaskStarted = "started"
	TaskSuccess = "success"
	TaskFailure = "failure"
	TaskRevoked = "revoked"
)

// convertResponse models ConvertDocumentResponse.
type convertResponse struct {
	Document struct {
		Filename    string          `json:"filename"`
		JSONContent json.RawMessage `json:"json_content"`
	} `json:"document"`
	Status         string                 `json:"status"`
	Errors         []errorItem            `json:"errors"`
	ProcessingTime float64                `json:"processing_time"`
	Timings        map[string]interface{} `json:"timings"`
}

type errorItem struct {
	ComponentType string `json:"component_type"`
	ModuleName    string `json:"module_name"`
	ErrorMessage  string `json:"error_message"`
}

// taskStatusResponse models the async task endpoints.
type taskStatusResponse struct {
	TaskID       string `json:"task_id"`
	TaskStatus   string `json:"task_status"`
	TaskPosition *int   `json:"task_position"`
}
