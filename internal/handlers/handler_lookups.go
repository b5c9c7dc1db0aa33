package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/dto"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type lookupHandler struct {
	masterData portssvc.MasterDataSvc
}

func registerLookupRoutes(rg *gin.RouterGroup, masterData portssvc.MasterDataSvc) {
	h := &lookupHandler{masterData: masterData}

	lookups := rg.Group("/lookups")
	{
		lookups.GET("/schemes/:schemeID", h.getScheme)
		lookups.GET("/suppliers/:supplierID", h.getSupplier)
		lookups.GET("/debit-accounts/:debitAccountID", h.getDebitAccount)
	}
}

// getScheme godoc
// @Summary Get scheme details
// @Description Returns an active scheme with its zone, used to prefill line items
// @Tags lookups
// @Produce  json
// @Param   schemeID path string true "Scheme ID"
// @Success 200 {object} dto.SchemeDetailsResponse
// @Failure 404 {object} map[string]string "Scheme not found"
// @Security BearerAuth
// @Router /lookups/schemes/{schemeID} [get]
func (h *lookupHandler) getScheme(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	details, err := h.masterData.GetSchemeDetails(c.Request.Context(), c.Param("schemeID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve scheme")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchemeDetailsResponse(details))
}

// getSupplier godoc
// @Summary Get supplier details
// @Description Returns an active supplier with its bank
// @Tags lookups
// @Produce  json
// @Param   supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SupplierDetailsResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /lookups/suppliers/{supplierID} [get]
func (h *lookupHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	details, err := h.masterData.GetSupplierDetails(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierDetailsResponse(details))
}

// getDebitAccount godoc
// @Summary Get a debit account
// @Tags lookups
// @Produce  json
// @Param   debitAccountID path string true "Debit account ID"
// @Success 200 {object} dto.DebitAccountResponse
// @Failure 404 {object} map[string]string "Debit account not found"
// @Security BearerAuth
// @Router /lookups/debit-accounts/{debitAccountID} [get]
func (h *lookupHandler) getDebitAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.masterData.GetDebitAccount(c.Request.Context(), c.Param("debitAccountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve debit account")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebitAccountResponse(account))
}
