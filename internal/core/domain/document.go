package domain

import "time"

type DocumentStatus string

const (
	StatusReceived   DocumentStatus = "received"
	StatusProcessing DocumentStatus = "processing"
	StatusValidated  DocumentStatus = "validated"
	StatusFailed     DocumentStatus = "failed"
)

// Document tracks one uploaded source document through the QC pipeline.
// The extracted Invoice and its ValidationResult are attached once the
// worker has processed it.
type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Invoice    *Invoice          `json:"invoice,omitempty"`
	Validation *ValidationResult `json:"validation,omitempty"`
}
