package handler

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"picdesc/internal/config"
	"picdesc/internal/domain"
	"picdesc/internal/pipeline"
	"picdesc/internal/service"
)

// UISettings configures the upload page.
type UISettings struct {
	Title           string
	Model           string
	PreviewPictures int
	MaxPages        int
	MaxSizeBytes    int64
}

// UISettingsFromConfig assembles UISettings from the loaded configuration.
func UISettingsFromConfig(cfg *config.Config) UISettings {
	return UISettings{
		Title:           cfg.UI.Title,
		Model:           cfg.Pipeline.RepoID,
		PreviewPictures: cfg.UI.PreviewPictures,
		MaxPages:        cfg.Pipeline.MaxPages,
		MaxSizeBytes:    cfg.Pipeline.MaxFileSizeBytes,
	}
}

// PicturePreview is one picture rendered on the result page.
type PicturePreview struct {
	Number      int
	Reference   string
	ImageURI    template.URL
	Caption     string
	Description *domain.Description
}

// ResultView is the result section of the page.
type ResultView struct {
	ID          uuid.UUID
	FileName    string
	FileSizeMB  float64
	NumPages    int
	NumPictures int
	DurationS   float64
	Pictures    []PicturePreview
}

type pageView struct {
	Title     string
	Model     string
	MaxPages  int
	MaxSizeMB float64
	Error     string
	Result    *ResultView
}

// UIHandler serves the upload page.
type UIHandler struct {
	conversionService service.ConversionService
	tmpl              *template.Template
	settings          UISettings
}

// NewUIHandler creates a new UIHandler.
func NewUIHandler(conversionService service.ConversionService, tmpl *template.Template, settings UISettings) *UIHandler {
	if settings.PreviewPictures <= 0 {
		settings.PreviewPictures = 5
	}
	return &UIHandler{conversionService: conversionService, tmpl: tmpl, settings: settings}
}

// Index handles GET /
func (h *UIHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, h.page())
}

// Convert handles POST /convert
func (h *UIHandler) Convert(c *gin.Context) {
	view := h.page()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		view.Error = "please choose a PDF file to upload"
		h.render(c, http.StatusBadRequest, view)
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		view.Error = "only PDF files are supported"
		h.render(c, http.StatusBadRequest, view)
		return
	}

	conv, err := h.conversionService.Convert(c.Request.Context(), service.ConvertInput{
		FileName: header.Filename,
		Body:     file,
	})
	if err != nil {
		status, _, msg := MapDomainError(err)
		if status >= 500 {
			logInternalError(c, err)
		}
		view.Error = msg
		h.render(c, status, view)
		return
	}

	view.Result = h.result(conv)
	h.render(c, http.StatusOK, view)
}

func (h *UIHandler) page() pageView {
	return pageView{
		Title:     h.settings.Title,
		Model:     h.settings.Model,
		MaxPages:  h.settings.MaxPages,
		MaxSizeMB: float64(h.settings.MaxSizeBytes) / (1024 * 1024),
	}
}

func (h *UIHandler) result(conv *domain.Conversion) *ResultView {
	view := &ResultView{
		ID:          conv.ID,
		FileName:    conv.FileName,
		FileSizeMB:  conv.FileSizeMB(),
		NumPages:    conv.NumPages,
		NumPictures: conv.NumPictures,
		DurationS:   conv.DurationS,
	}
	doc := conv.Document
	if doc == nil {
		return view
	}

	n := min(h.settings.PreviewPictures, len(doc.Pictures))
	view.Pictures = make([]PicturePreview, 0, n)
	for i := 0; i < n; i++ {
		pic := &doc.Pictures[i]
		view.Pictures = append(view.Pictures, PicturePreview{
			Number:      i + 1,
			Reference:   pic.SelfRef,
			ImageURI:    imageURI(pic),
			Caption:     doc.CaptionText(pic),
			Description: pipeline.GetDescription(pic),
		})
	}
	return view
}

func (h *UIHandler) render(c *gin.Context, status int, view pageView) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(c.Writer, "index.html", view); err != nil {
		logInternalError(c, err)
	}
}

// imageURI trusts only embedded image data and plain http(s) links.
func imageURI(pic *domain.Picture) template.URL {
	if pic.Image == nil {
		return ""
	}
	uri := pic.Image.URI
	switch {
	case strings.HasPrefix(uri, "data:image/"),
		strings.HasPrefix(uri, "https://"),
		strings.HasPrefix(uri, "http://"):
		return template.URL(uri)
	default:
		return ""
	}
}
