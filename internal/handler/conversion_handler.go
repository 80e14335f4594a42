package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"picdesc/internal/export"
	"picdesc/internal/service"
)

// ConversionHandler handles the conversion API endpoints.
type ConversionHandler struct {
	conversionService service.ConversionService
}

// NewConversionHandler creates a new ConversionHandler.
func NewConversionHandler(conversionService service.ConversionService) *ConversionHandler {
	return &ConversionHandler{conversionService: conversionService}
}

// Create handles POST /api/v1/conversions
// @Summary Convert a PDF
// @Description Extract the pictures of a PDF and describe each one with the configured vision-language model.
// @Description Blocks until the conversion finishes.
// @Tags conversions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 201 {object} Response{data=domain.Conversion} "Conversion completed"
// @Failure 400 {object} ErrorResponseBody "Missing file"
// @Failure 422 {object} ErrorResponseBody "Conversion failed (limits, invalid PDF, backend error)"
// @Failure 503 {object} ErrorResponseBody "Converter busy"
// @Router /conversions [post]
func (h *ConversionHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	conv, err := h.conversionService.Convert(c.Request.Context(), service.ConvertInput{
		FileName: header.Filename,
		Body:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, conv)
}

// List handles GET /api/v1/conversions
// @Summary List conversions
// @Description Conversion history, newest first
// @Tags conversions
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Conversion,meta=PagMeta}
// @Failure 500 {object} ErrorResponseBody
// @Router /conversions [get]
func (h *ConversionHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	convs, total, err := h.conversionService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, convs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/conversions/:id
// @Summary Get a conversion
// @Tags conversions
// @Produce json
// @Param id path string true "Conversion ID"
// @Success 200 {object} Response{data=ConversionDetail}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /conversions/{id} [get]
func (h *ConversionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	conv, err := h.conversionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	detail := ConversionDetail{Conversion: conv}
	url, err := h.conversionService.ArchiveURL(c.Request.Context(), conv)
	if err != nil {
		log.WithError(err).WithField("conversion_id", id).Warn("presigning archive url")
	}
	detail.ArchiveURL = url

	RespondOK(c, detail)
}

// Download handles GET /api/v1/conversions/:id/download
// @Summary Download a conversion output
// @Description JSON is the output document as produced; CSV and XLSX carry one row per picture.
// @Tags conversions
// @Produce application/json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Conversion ID"
// @Param format query string false "Export format" Enums(json, csv, xlsx) default(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Invalid ID or format"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Failure 409 {object} ErrorResponseBody "Conversion failed, nothing to download"
// @Router /conversions/{id}/download [get]
func (h *ConversionHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	file, err := h.conversionService.Export(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName}))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid conversion ID")
		return uuid.Nil, false
	}
	return id, true
}
