package port

import (
	"context"

	"picdesc/internal/domain"
)

// PictureDescriptionOptions configures the vision-language model the backend runs on
// every extracted picture.
type PictureDescriptionOptions struct {
	RepoID           string                 `json:"repo_id"`
	Prompt           string                 `json:"prompt"`
	GenerationConfig map[string]interface{} `json:"generation_config"`
}

// ConvertRequest carries one source document and the pipeline settings for it.
type ConvertRequest struct {
	Source                string
	PictureDescription    PictureDescriptionOptions
	ImagesScale           float64
	GeneratePictureImages bool
}

// ConvertResult is the backend's answer for one document.
type ConvertResult struct {
	Document       *domain.Document
	Status         string
	Errors         []string
	ProcessingTime float64
}

// DocumentConverter abstracts the external document conversion backend.
type DocumentConverter interface {
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)
	Ping(ctx context.Context) error
}
