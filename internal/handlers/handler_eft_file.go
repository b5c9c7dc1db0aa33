package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/dto"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadSize caps the size of an uploaded EFT file.
const maxUploadSize = 8 << 20

type eftFileHandler struct {
	exportService portssvc.ExportSvc
}

func registerEFTFileRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvc) {
	h := &eftFileHandler{exportService: exportService}

	files := rg.Group("/eft-files")
	{
		files.POST("/validate", h.validateFile)
	}
}

// validateFile godoc
// @Summary Validate an EFT file
// @Description Checks the structure, record count and totals of an EFT file. Accepts JSON {"content": "..."} or a multipart "file" upload.
// @Tags eft-files
// @Accept  json,mpfd
// @Produce  json
// @Param   request body dto.ValidateFileRequest false "File content"
// @Param   file formData file false "EFT file"
// @Success 200 {object} dto.ValidateFileResponse
// @Failure 400 {object} dto.ValidateFileResponse "File is malformed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /eft-files/validate [post]
func (h *eftFileHandler) validateFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	content, err := readFileContent(c)
	if err != nil {
		respondBindError(c, logger, err, "file upload")
		return
	}

	summary, err := h.exportService.ValidateFile(c.Request.Context(), content)
	if err != nil {
		if !isDecodeError(err) {
			respondError(c, logger, err, "Failed to validate file")
			return
		}
		logger.Info("EFT file rejected", slog.String("error", err.Error()))
		resp := dto.ValidateFileResponse{Valid: false, Message: err.Error()}
		if line := errorLine(err); line > 0 {
			resp.Line = &line
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	logger.Info("EFT file validated", slog.Int("record_count", summary.RecordCount))
	c.JSON(http.StatusOK, dto.ValidateFileResponse{
		Valid:        true,
		Message:      "File is valid",
		BatchName:    summary.BatchName,
		CurrencyCode: summary.CurrencyCode,
		TotalAmount:  &summary.TotalAmount,
		RecordCount:  &summary.RecordCount,
	})
}

// readFileContent takes the multipart "file" field when present and the JSON body otherwise.
func readFileContent(c *gin.Context) (string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return "", err
		}
		if header.Size > maxUploadSize {
			return "", errors.New("file exceeds the upload limit")
		}
		f, err := header.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	var req dto.ValidateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", err
	}
	return req.Content, nil
}

func errorLine(err error) int {
	var (
		recordErr *apperrors.MalformedRecordError
		amountErr *apperrors.InvalidAmountError
	)
	switch {
	case errors.As(err, &recordErr):
		return recordErr.Line
	case errors.As(err, &amountErr):
		return amountErr.Line
	}
	return 0
}
