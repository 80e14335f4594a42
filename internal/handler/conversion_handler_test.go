package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"picdesc/internal/domain"
	"picdesc/internal/handler"
	"picdesc/internal/pipeline"
	"picdesc/internal/service"
	"picdesc/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartBody(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestConversionHandler_Create_Success(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	out := domain.Output{Pictures: []domain.PictureOutput{}}
	conv := &domain.Conversion{ID: uuid.New(), FileName: "report.pdf", Status: domain.ConversionStatusCompleted, Output: &out}
	mockSvc.On("Convert", mock.Anything, mock.MatchedBy(func(in service.ConvertInput) bool {
		return in.FileName == "report.pdf"
	})).Return(conv, nil)

	body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-1.4 test content"))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/conversions", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), `"pictures":[]`)
	mockSvc.AssertExpectations(t)
}

func TestConversionHandler_Create_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/conversions", nil)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)
}

func TestConversionHandler_Create_ConversionFailed(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	convErr := &pipeline.ConversionError{Source: "big.pdf", Err: domain.ErrFileTooLarge}
	mockSvc.On("Convert", mock.Anything, mock.Anything).Return(nil, convErr)

	body, contentType := multipartBody(t, "file", "big.pdf", []byte("%PDF"))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/conversions", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "CONVERSION_FAILED", resp.Error.Code)
	assert.Equal(t, convErr.Error(), resp.Error.Message)
}

func TestConversionHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	convs := []domain.Conversion{{ID: uuid.New(), FileName: "a.pdf"}}
	mockSvc.On("List", mock.Anything, 0, 20).Return(convs, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions?offset=-3&limit=500", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
	mockSvc.AssertExpectations(t)
}

func TestConversionHandler_GetByID(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	id := uuid.New()
	conv := &domain.Conversion{ID: id, FileName: "a.pdf", ArchiveKey: "conversions/a.json"}
	mockSvc.On("GetByID", mock.Anything, id).Return(conv, nil)
	mockSvc.On("ArchiveURL", mock.Anything, conv).Return("https://signed.example/a.json", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"archive_url":"https://signed.example/a.json"`)
	assert.Contains(t, w.Body.String(), `"file_name":"a.pdf"`)
}

func TestConversionHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewConversionHandler(new(mocks.MockConversionService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversionHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConversionHandler_Download_JSON(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("Export", mock.Anything, id, domain.ExportFormatJSON).Return(&service.ExportFile{
		FileName:    "report_annotations.json",
		ContentType: "application/json",
		Data:        []byte(`{"pictures": []}`),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions/"+id.String()+"/download", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=report_annotations.json`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, `{"pictures": []}`, w.Body.String())
}

func TestConversionHandler_Download_UnsupportedFormat(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	id := uuid.New()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions/"+id.String()+"/download?format=pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
}

func TestConversionHandler_Download_FailedConversion(t *testing.T) {
	mockSvc := new(mocks.MockConversionService)
	h := handler.NewConversionHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("Export", mock.Anything, id, domain.ExportFormatCSV).Return(nil, domain.ErrOutputUnavailable)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conversions/"+id.String()+"/download?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
