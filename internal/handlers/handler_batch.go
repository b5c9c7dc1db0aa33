package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/dto"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// batchHandler handles HTTP requests related to batches.
type batchHandler struct {
	batchService  portssvc.BatchSvcFacade
	exportService portssvc.ExportSvc
}

// newBatchHandler creates a new batchHandler.
func newBatchHandler(bs portssvc.BatchSvcFacade, es portssvc.ExportSvc) *batchHandler {
	return &batchHandler{
		batchService:  bs,
		exportService: es,
	}
}

// registerBatchRoutes registers routes related to batches.
func registerBatchRoutes(rg *gin.RouterGroup, batchService portssvc.BatchSvcFacade, exportService portssvc.ExportSvc) {
	h := newBatchHandler(batchService, exportService)

	batches := rg.Group("/batches")
	{
		batches.POST("", h.createBatch)
		batches.GET("", h.listBatches)
		batches.GET("/summary", h.exportSummary)
		batches.GET("/:batchID", h.getBatch)
		batches.PATCH("/:batchID", h.updateBatch)
		batches.DELETE("/:batchID", h.deleteBatch)
		batches.POST("/:batchID/items", h.addItem)
		batches.DELETE("/:batchID/items/:itemID", h.removeItem)
		batches.POST("/:batchID/submit", h.submitBatch)
		batches.POST("/:batchID/approve", h.approveBatch)
		batches.POST("/:batchID/reject", h.rejectBatch)
		batches.GET("/:batchID/export", h.exportBatch)
		batches.GET("/:batchID/audit", h.listAuditTrail)
	}
}

// requestScope returns the request logger and the authenticated actor. It
// writes a 401 and reports false when no actor is present.
func requestScope(c *gin.Context) (*slog.Logger, domain.Actor, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return logger, domain.Actor{}, false
	}
	return logger, actor, true
}

// versionScope is requestScope plus the If-Match precondition.
func versionScope(c *gin.Context) (*slog.Logger, domain.Actor, *int64, bool) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return logger, actor, nil, false
	}
	version, err := expectedVersion(c)
	if err != nil {
		logger.Warn("Bad If-Match header", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return logger, actor, nil, false
	}
	return logger, actor, version, true
}

func respondBatch(c *gin.Context, status int, b *domain.Batch) {
	setETag(c, b.Version)
	c.JSON(status, dto.ToGetBatchResponse(b))
}

// createBatch godoc
// @Summary Create a new batch
// @Description Opens an empty DRAFT batch owned by the caller
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batch body dto.CreateBatchRequest true "Batch details"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create batch"
// @Security BearerAuth
// @Router /batches [post]
func (h *batchHandler) createBatch(c *gin.Context) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	logger.Info("Received request to create batch", slog.String("batch_name", req.BatchName))
	b, err := h.batchService.CreateBatch(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create batch")
		return
	}

	setETag(c, b.Version)
	c.JSON(http.StatusCreated, dto.ToBatchResponse(b))
}

// listBatches godoc
// @Summary List batches
// @Description Lists the caller's batches ("mine", default) or every submitted batch ("review", authorizers only), newest first
// @Tags batches
// @Produce  json
// @Param   scope query string false "mine or review"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListBatchesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list batches"
// @Security BearerAuth
// @Router /batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	resp, err := h.batchService.ListBatches(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list batches")
		return
	}
	logger.Info("Batches listed successfully", slog.Int("count", len(resp.Batches)))
	c.JSON(http.StatusOK, resp)
}

// getBatch godoc
// @Summary Get a batch
// @Description Returns a batch with its line items
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} dto.GetBatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Security BearerAuth
// @Router /batches/{batchID} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return
	}
	b, err := h.batchService.GetBatch(c.Request.Context(), actor, c.Param("batchID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve batch")
		return
	}
	respondBatch(c, http.StatusOK, b)
}

// updateBatch godoc
// @Summary Update a draft batch
// @Description Changes the name or file reference of a DRAFT batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   If-Match header string false "Expected batch version"
// @Param   batch body dto.UpdateBatchRequest true "Fields to change"
// @Success 200 {object} dto.GetBatchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is not a draft or was modified"
// @Security BearerAuth
// @Router /batches/{batchID} [patch]
func (h *batchHandler) updateBatch(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	var req dto.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	b, err := h.batchService.UpdateBatch(c.Request.Context(), actor, c.Param("batchID"), req, version)
	if err != nil {
		respondError(c, logger, err, "Failed to update batch")
		return
	}
	respondBatch(c, http.StatusOK, b)
}

// deleteBatch godoc
// @Summary Delete a draft batch
// @Tags batches
// @Param   batchID path string true "Batch ID"
// @Param   If-Match header string false "Expected batch version"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is not a draft or was modified"
// @Security BearerAuth
// @Router /batches/{batchID} [delete]
func (h *batchHandler) deleteBatch(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	if err := h.batchService.DeleteBatch(c.Request.Context(), actor, c.Param("batchID"), version); err != nil {
		respondError(c, logger, err, "Failed to delete batch")
		return
	}
	c.Status(http.StatusNoContent)
}

// addItem godoc
// @Summary Add a line item
// @Description Appends a payment to a DRAFT batch. Zone and cost center default from the scheme.
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   If-Match header string false "Expected batch version"
// @Param   item body dto.AddLineItemRequest true "Line item"
// @Success 201 {object} dto.LineItemMutationResponse
// @Failure 400 {object} map[string]string "Validation error naming the field"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is not a draft or was modified"
// @Failure 413 {object} map[string]string "Batch is full"
// @Security BearerAuth
// @Router /batches/{batchID}/items [post]
func (h *batchHandler) addItem(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	var req dto.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	b, item, err := h.batchService.AddItem(c.Request.Context(), actor, c.Param("batchID"), req, version)
	if err != nil {
		respondError(c, logger, err, "Failed to add line item")
		return
	}

	itemResp := dto.ToLineItemResponse(item)
	setETag(c, b.Version)
	c.JSON(http.StatusCreated, dto.LineItemMutationResponse{
		Item:        &itemResp,
		TotalAmount: b.TotalAmount,
		RecordCount: b.RecordCount,
		Version:     b.Version,
	})
}

// removeItem godoc
// @Summary Remove a line item
// @Description Deletes an item from a DRAFT batch and renumbers the remaining items
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   itemID path string true "Line item ID"
// @Param   If-Match header string false "Expected batch version"
// @Success 200 {object} dto.LineItemMutationResponse
// @Failure 404 {object} map[string]string "Batch or item not found"
// @Failure 409 {object} map[string]string "Batch is not a draft or was modified"
// @Security BearerAuth
// @Router /batches/{batchID}/items/{itemID} [delete]
func (h *batchHandler) removeItem(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	b, err := h.batchService.RemoveItem(c.Request.Context(), actor, c.Param("batchID"), c.Param("itemID"), version)
	if err != nil {
		respondError(c, logger, err, "Failed to remove line item")
		return
	}
	setETag(c, b.Version)
	c.JSON(http.StatusOK, dto.LineItemMutationResponse{
		TotalAmount: b.TotalAmount,
		RecordCount: b.RecordCount,
		Version:     b.Version,
	})
}

// submitBatch godoc
// @Summary Submit a batch for approval
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   If-Match header string false "Expected batch version"
// @Success 200 {object} dto.GetBatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is empty, not a draft, or was modified"
// @Security BearerAuth
// @Router /batches/{batchID}/submit [post]
func (h *batchHandler) submitBatch(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	b, err := h.batchService.Submit(c.Request.Context(), actor, c.Param("batchID"), version)
	if err != nil {
		respondError(c, logger, err, "Failed to submit batch")
		return
	}
	respondBatch(c, http.StatusOK, b)
}

// approveBatch godoc
// @Summary Approve a pending batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   If-Match header string false "Expected batch version"
// @Param   decision body dto.ApproveBatchRequest false "Optional remarks"
// @Success 200 {object} dto.GetBatchResponse
// @Failure 403 {object} map[string]string "Forbidden or self-approval"
// @Failure 409 {object} map[string]string "Batch is not pending or was modified"
// @Security BearerAuth
// @Router /batches/{batchID}/approve [post]
func (h *batchHandler) approveBatch(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	var req dto.ApproveBatchRequest
	// The body is optional.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err, "request format")
			return
		}
	}

	b, err := h.batchService.Approve(c.Request.Context(), actor, c.Param("batchID"), req.Remarks, version)
	if err != nil {
		respondError(c, logger, err, "Failed to approve batch")
		return
	}
	respondBatch(c, http.StatusOK, b)
}

// rejectBatch godoc
// @Summary Reject a pending batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   If-Match header string false "Expected batch version"
// @Param   decision body dto.RejectBatchRequest true "Rejection reason"
// @Success 200 {object} dto.GetBatchResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 403 {object} map[string]string "Forbidden or self-rejection"
// @Failure 409 {object} map[string]string "Batch is not pending or was modified"
// @Security BearerAuth
// @Router /batches/{batchID}/reject [post]
func (h *batchHandler) rejectBatch(c *gin.Context) {
	logger, actor, version, ok := versionScope(c)
	if !ok {
		return
	}
	var req dto.RejectBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	b, err := h.batchService.Reject(c.Request.Context(), actor, c.Param("batchID"), req.Reason, version)
	if err != nil {
		respondError(c, logger, err, "Failed to reject batch")
		return
	}
	respondBatch(c, http.StatusOK, b)
}

// exportBatch godoc
// @Summary Download the EFT file of an approved batch
// @Description Encodes the batch, stores the file snapshot and marks the batch EXPORTED
// @Tags batches
// @Produce  plain
// @Param   batchID path string true "Batch ID"
// @Param   format query string false "txt or csv" default(txt)
// @Success 200 {string} string "EFT file"
// @Failure 400 {object} map[string]string "Unsupported format"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch was modified"
// @Failure 422 {object} map[string]string "Batch not approved, totals mismatch or missing field"
// @Security BearerAuth
// @Router /batches/{batchID}/export [get]
func (h *batchHandler) exportBatch(c *gin.Context) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return
	}
	format, err := eftfile.ParseFormat(c.Query("format"))
	if err != nil {
		logger.Warn("Unsupported export format", slog.String("format", c.Query("format")))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := h.exportService.ExportBatch(c.Request.Context(), actor, c.Param("batchID"), format)
	if err != nil {
		respondError(c, logger, err, "Failed to export batch")
		return
	}
	sendFile(c, file)
}

// exportSummary godoc
// @Summary Download a summary of the caller's batches
// @Tags batches
// @Produce  octet-stream
// @Param   format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Batch summary"
// @Failure 400 {object} map[string]string "Unsupported format"
// @Security BearerAuth
// @Router /batches/summary [get]
func (h *batchHandler) exportSummary(c *gin.Context) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return
	}
	format := portssvc.SummaryFormat(c.DefaultQuery("format", string(portssvc.SummaryCSV)))

	file, err := h.exportService.ExportBatchSummary(c.Request.Context(), actor, format)
	if err != nil {
		respondError(c, logger, err, "Failed to export batch summary")
		return
	}
	sendFile(c, file)
}

// listAuditTrail godoc
// @Summary List a batch's audit trail
// @Description Lifecycle events, newest first
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Success 200 {array} dto.AuditEventResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Security BearerAuth
// @Router /batches/{batchID}/audit [get]
func (h *batchHandler) listAuditTrail(c *gin.Context) {
	logger, actor, ok := requestScope(c)
	if !ok {
		return
	}
	events, err := h.batchService.ListAuditTrail(c.Request.Context(), actor, c.Param("batchID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list audit trail")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditEventResponses(events))
}

func sendFile(c *gin.Context, file *dto.ExportedFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
