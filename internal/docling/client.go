package docling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"picdesc/internal/config"
	"picdesc/internal/domain"
	"picdesc/internal/port"
)

const (
	convertPath      = "/v1/convert/file"
	convertAsyncPath = "/v1/convert/file/async"
	pollPath         = "/v1/status/poll/"
	resultPath       = "/v1/result/"
	healthPath       = "/health"
)

// ErrTaskFailed is returned when an async conversion task ends without a result.
var ErrTaskFailed = errors.New("docling task failed")

// Client implements port.DocumentConverter against the docling-serve HTTP API.
type Client struct {
	baseURL      string
	apiKey       string
	async        bool
	pollInterval time.Duration
	client       *http.Client
}

// NewClient creates a docling-serve client from config.
func NewClient(cfg *config.DoclingConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Minute
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 2 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		async:        cfg.Async,
		pollInterval: poll,
		client:       &http.Client{Timeout: timeout},
	}
}

// Convert uploads the source file and returns the converted document.
func (c *Client) Convert(ctx context.Context, req port.ConvertRequest) (*port.ConvertResult, error) {
	body, contentType, err := buildForm(req)
	if err != nil {
		return nil, err
	}

	if !c.async {
		respBody, err := c.do(ctx, http.MethodPost, convertPath, body, contentType)
		if err != nil {
			return nil, err
		}
		return parseConvertResponse(respBody)
	}

	respBody, err := c.do(ctx, http.MethodPost, convertAsyncPath, body, contentType)
	if err != nil {
		return nil, err
	}
	var task taskStatusResponse
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("unmarshaling task status: %w", err)
	}
	if task.TaskID == "" {
		return nil, fmt.Errorf("docling returned no task id")
	}

	log.WithFields(log.Fields{"task_id": task.TaskID, "source": filepath.Base(req.Source)}).
		Debug("docling: conversion task submitted")

	if err := c.waitForTask(ctx, &task); err != nil {
		return nil, err
	}

	respBody, err = c.do(ctx, http.MethodGet, resultPath+task.TaskID, nil, "")
	if err != nil {
		return nil, err
	}
	return parseConvertResponse(respBody)
}

// Ping checks that docling-serve is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, healthPath, nil, "")
	return err
}

func (c *Client) waitForTask(ctx context.Context, task *taskStatusResponse) error {
	for {
		switch task.TaskStatus {
		case TaskSuccess:
			return nil
		case TaskFailure, TaskRevoked:
			return fmt.Errorf("%w: task %s ended with status %s", ErrTaskFailed, task.TaskID, task.TaskStatus)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}

		respBody, err := c.do(ctx, http.MethodGet, pollPath+task.TaskID, nil, "")
		if err != nil {
			return err
		}
		id := task.TaskID
		if err := json.Unmarshal(respBody, task); err != nil {
			return fmt.Errorf("unmarshaling task status: %w", err)
		}
		if task.TaskID == "" {
			task.TaskID = id
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling docling API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("docling API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	return respBody, nil
}

func buildForm(req port.ConvertRequest) ([]byte, string, error) {
	f, err := os.Open(req.Source)
	if err != nil {
		return nil, "", fmt.Errorf("opening source: %w", err)
	}
	defer func() { _ = f.Close() }()

	descOpts, err := json.Marshal(req.PictureDescription)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling picture description options: %w", err)
	}

	imageMode := "placeholder"
	if req.GeneratePictureImages {
		imageMode = "embedded"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, filepath.Base(req.Source)))
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copying source: %w", err)
	}

	fields := [][2]string{
		{"from_formats", "pdf"},
		{"to_formats", "json"},
		{"image_export_mode", imageMode},
		{"include_images", strconv.FormatBool(req.GeneratePictureImages)},
		{"images_scale", strconv.FormatFloat(req.ImagesScale, 'f', -1, 64)},
		{"do_picture_description", "true"},
		{"picture_description_local", string(descOpts)},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", kv[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func parseConvertResponse(body []byte) (*port.ConvertResult, error) {
	var resp convertResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	result := &port.ConvertResult{
		Status:         resp.Status,
		ProcessingTime: resp.ProcessingTime,
	}
	for _, e := range resp.Errors {
		result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %s", e.ComponentType, e.ModuleName, e.ErrorMessage))
	}

	content := bytes.TrimSpace(resp.Document.JSONContent)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return result, nil
	}
	var doc domain.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling document: %w", err)
	}
	result.Document = &doc
	return result, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
