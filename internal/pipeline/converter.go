package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"picdesc/internal/domain"
	"picdesc/internal/port"
)

// Backend statuses that still carry a usable document.
var acceptedStatuses = map[string]bool{
	"success":         true,
	"partial_success": true,
}

// Converter binds picture description options and input limits to a conversion backend.
// It is safe for concurrent use; backend calls are gated to MaxConcurrent at a time.
type Converter struct {
	backend port.DocumentConverter
	opts    Options
	gate    *semaphore.Weighted
}

// CreateConverter builds a Converter over backend with the default options and any overrides.
func CreateConverter(backend port.DocumentConverter, overrides ...Option) *Converter {
	opts := DefaultOptions()
	for _, o := range overrides {
		o(&opts)
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &Converter{
		backend: backend,
		opts:    opts,
		gate:    semaphore.NewWeighted(opts.MaxConcurrent),
	}
}

// Options returns a copy of the converter's settings.
func (c *Converter) Options() Options {
	return c.opts
}

// Backend returns the conversion backend, for health checks.
func (c *Converter) Backend() port.DocumentConverter {
	return c.backend
}

// Convert checks the source against the configured limits and converts it.
func (c *Converter) Convert(ctx context.Context, source string) (*domain.Document, error) {
	if _, err := CheckLimits(source, c.opts.MaxPages, c.opts.MaxFileSizeBytes); err != nil {
		return nil, err
	}

	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConverterBusy, err)
	}
	defer c.gate.Release(1)

	name := filepath.Base(source)
	log.WithFields(log.Fields{"source": name, "model": c.opts.RepoID}).Info("pipeline: converting document")

	result, err := c.backend.Convert(ctx, c.opts.request(source))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, conversionErr(source, domain.ErrBackend, err)
	}

	if !acceptedStatuses[result.Status] {
		detail := fmt.Errorf("backend status %q", result.Status)
		if len(result.Errors) > 0 {
			detail = fmt.Errorf("backend status %q: %s", result.Status, strings.Join(result.Errors, "; "))
		}
		return nil, conversionErr(source, domain.ErrBackend, detail)
	}
	if result.Document == nil {
		return nil, conversionErr(source, domain.ErrBackend, fmt.Errorf("backend returned no document"))
	}

	if len(result.Errors) > 0 {
		log.WithFields(log.Fields{"source": name, "errors": result.Errors}).Warn("pipeline: partial conversion")
	}
	log.WithFields(log.Fields{
		"source":          name,
		"pictures":        len(result.Document.Pictures),
		"pages":           result.Document.NumPages(),
		"processing_time": result.ProcessingTime,
	}).Info("pipeline: document converted")

	return result.Document, nil
}

// Convert converts source with conv, or with the process-wide converter when conv is nil.
func Convert(ctx context.Context, source string, conv *Converter) (*domain.Document, error) {
	if conv == nil {
		var err error
		conv, err = Default()
		if err != nil {
			return nil, err
		}
	}
	return conv.Convert(ctx, source)
}
