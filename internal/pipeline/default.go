package pipeline

import (
	"fmt"
	"sync"

	"picdesc/internal/config"
	"picdesc/internal/docling"
)

// NewFromConfig builds a docling-backed Converter from the loaded configuration.
func NewFromConfig(cfg *config.Config) *Converter {
	return CreateConverter(docling.NewClient(&cfg.Docling), WithOptions(OptionsFromConfig(&cfg.Pipeline)))
}

// Default returns the process-wide Converter, built from the environment on first use.
var Default = sync.OnceValues(func() (*Converter, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewFromConfig(cfg), nil
})
