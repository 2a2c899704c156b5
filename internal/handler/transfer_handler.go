package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/register"
	"gstbill/internal/service"
)

// TransferHandler handles bulk data export and import.
type TransferHandler struct {
	transferService service.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Export handles GET /api/v1/data/export
// @Summary Export all data
// @Description Download every customer and invoice as one JSON document suitable for import.
// @Tags data
// @Produce json
// @Success 200 {object} domain.TransferBundle "Transfer bundle"
// @Router /data/export [get]
func (h *TransferHandler) Export(c *gin.Context) {
	bundle, err := h.transferService.Export(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := register.BuildFilename("gstbill export", "json", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, bundle)
}

// Import handles POST /api/v1/data/import
// @Summary Import data
// @Description Replace customers and/or invoices wholesale. A missing array leaves that collection untouched; an empty array clears it.
// @Tags data
// @Accept json
// @Produce json
// @Param request body domain.TransferBundle true "Transfer bundle"
// @Success 200 {object} Response{data=service.ImportResult} "Import result"
// @Failure 400 {object} ErrorResponseBody "Malformed bundle"
// @Router /data/import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	var bundle domain.TransferBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.transferService.Import(c.Request.Context(), &bundle)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
