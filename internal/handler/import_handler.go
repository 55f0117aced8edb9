package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/response"
)

const uploadField = "file"

type importService interface {
	Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error)
}

// ImportHandler accepts spreadsheet uploads.
type ImportHandler struct {
	imports importService
	maxSize int64
}

// NewImportHandler constructs ImportHandler. maxSize <= 0 disables the limit.
func NewImportHandler(imports importService, maxSize int64) *ImportHandler {
	return &ImportHandler{imports: imports, maxSize: maxSize}
}

// Upload godoc
// @Summary Import students from a spreadsheet
// @Description The file base name is used as the section of every imported student.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /upload-excel [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	if h.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize)
	}
	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "uploaded file is too large"))
			return
		}
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "No file part in the request"))
		return
	}
	if header.Filename == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No file selected for uploading"))
		return
	}
	if header.Size == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "uploaded file is empty"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrImport, err, "failed to open uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	result, err := h.imports.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
