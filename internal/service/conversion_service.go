package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"picdesc/internal/config"
	"picdesc/internal/domain"
	"picdesc/internal/export"
	"picdesc/internal/pipeline"
	"picdesc/internal/port"
)

// Converter turns a PDF on disk into a document with picture descriptions.
type Converter interface {
	Convert(ctx context.Context, source string) (*domain.Document, error)
}

// ConvertInput is the DTO for a conversion request.
type ConvertInput struct {
	FileName string
	Body     io.Reader
}

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ConversionService defines the conversion contract.
type ConversionService interface {
	Convert(ctx context.Context, input ConvertInput) (*domain.Conversion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversion, error)
	List(ctx context.Context, offset, limit int) ([]domain.Conversion, int, error)
	Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*ExportFile, error)
	ArchiveURL(ctx context.Context, conv *domain.Conversion) (string, error)
}

type conversionService struct {
	converter Converter
	repo      port.ConversionRepository
	storage   port.ObjectStorage
	s3Cfg     *config.S3Config
}

// NewConversionService creates a new ConversionService. storage may be nil, in which
// case outputs are not archived.
func NewConversionService(
	converter Converter,
	repo port.ConversionRepository,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
) ConversionService {
	return &conversionService{
		converter: converter,
		repo:      repo,
		storage:   storage,
		s3Cfg:     s3Cfg,
	}
}

func (s *conversionService) Convert(ctx context.Context, input ConvertInput) (*domain.Conversion, error) {
	source, size, err := spool(input.Body)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(source); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.WithError(rmErr).WithField("path", source).Warn("conversionService.Convert: removing temp file")
		}
	}()

	conv := &domain.Conversion{
		ID:            uuid.New(),
		FileName:      input.FileName,
		FileSizeBytes: size,
		CreatedAt:     time.Now().UTC(),
	}
	logger := log.WithFields(log.Fields{"conversion_id": conv.ID, "file": input.FileName, "bytes": size})

	start := time.Now()
	doc, err := s.converter.Convert(ctx, source)
	conv.DurationS = time.Since(start).Seconds()

	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		var convErr *pipeline.ConversionError
		if errors.As(err, &convErr) {
			convErr.Source = input.FileName
		}
		logger.WithError(err).Warn("conversionService.Convert: conversion failed")
		conv.Status = domain.ConversionStatusFailed
		conv.Error = err.Error()
		if repoErr := s.repo.Create(ctx, conv); repoErr != nil {
			logger.WithError(repoErr).Error("conversionService.Convert: recording failed conversion")
		}
		return nil, err
	}

	out := pipeline.BuildOutput(doc, conv.DurationS)
	conv.Status = domain.ConversionStatusCompleted
	conv.NumPages = doc.NumPages()
	conv.NumPictures = out.DocumentInfo.NumPictures
	conv.Output = &out
	conv.Document = doc

	s.archive(ctx, conv)

	if err := s.repo.Create(ctx, conv); err != nil {
		if conv.ArchiveKey != "" {
			if delErr := s.storage.Delete(ctx, s.s3Cfg.Bucket, conv.ArchiveKey); delErr != nil {
				logger.WithError(delErr).Warn("conversionService.Convert: removing orphaned archive")
			}
		}
		return nil, fmt.Errorf("recording conversion: %w", err)
	}

	logger.WithFields(log.Fields{
		"pictures":   conv.NumPictures,
		"pages":      conv.NumPages,
		"duration_s": conv.DurationS,
	}).Info("conversionService.Convert: conversion completed")
	return conv, nil
}

// archive uploads the JSON output when an object store is configured. Failures
// leave the conversion usable and are only logged.
func (s *conversionService) archive(ctx context.Context, conv *domain.Conversion) {
	if s.storage == nil {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, conv.Output); err != nil {
		log.WithError(err).Warn("conversionService.archive: encoding output")
		return
	}

	name := domain.ExportFileName(conv.FileName, domain.ExportFormatJSON)
	key := path.Join(s.s3Cfg.Prefix, "conversions", conv.ID.String(), name)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:             s.s3Cfg.Bucket,
		Key:                key,
		Body:               &buf,
		ContentType:        domain.ExportContentTypes[domain.ExportFormatJSON],
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", name),
	})
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("conversionService.archive: upload failed")
		return
	}
	conv.ArchiveKey = key
}

func (s *conversionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *conversionService) List(ctx context.Context, offset, limit int) ([]domain.Conversion, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *conversionService) Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*ExportFile, error) {
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}

	conv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Output == nil {
		return nil, domain.ErrOutputUnavailable
	}

	var buf bytes.Buffer
	if err := export.Render(&buf, conv.Output, format); err != nil {
		return nil, fmt.Errorf("rendering %s export: %w", format, err)
	}
	return &ExportFile{
		FileName:    domain.ExportFileName(conv.FileName, format),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *conversionService) ArchiveURL(ctx context.Context, conv *domain.Conversion) (string, error) {
	if s.storage == nil || conv.ArchiveKey == "" {
		return "", nil
	}
	return s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, conv.ArchiveKey, s.s3Cfg.PresignExpiry)
}

// spool copies body into a fresh temporary PDF file and returns its path and size.
func spool(body io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp("", "picdesc-*.pdf")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}

	size, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("writing temp file: %w", err)
	}
	return tmp.Name(), size, nil
}
