package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// CustomerHandler handles customer master endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles GET /api/v1/customers
// @Summary List customers
// @Description List saved customers, optionally filtered by name or GSTIN
// @Tags customers
// @Produce json
// @Param q query string false "Case-insensitive match on name or GSTIN"
// @Success 200 {object} Response{data=[]domain.CustomerDetails,meta=ListMeta} "List of customers"
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if customers == nil {
		customers = []domain.CustomerDetails{}
	}
	RespondList(c, customers, len(customers))
}

// Get handles GET /api/v1/customers/:gstin
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param gstin path string true "Customer GSTIN"
// @Success 200 {object} Response{data=domain.CustomerDetails} "Customer"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Router /customers/{gstin} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.Get(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Save handles PUT /api/v1/customers/:gstin
// @Summary Create or update a customer
// @Description Upsert a customer keyed by GSTIN. The path GSTIN wins over the body.
// @Tags customers
// @Accept json
// @Produce json
// @Param gstin path string true "Customer GSTIN"
// @Param request body SaveCustomerRequest true "Customer details"
// @Success 200 {object} Response{data=domain.CustomerDetails} "Saved customer"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Router /customers/{gstin} [put]
func (h *CustomerHandler) Save(c *gin.Context) {
	var req SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer := req.toDomain(c.Param("gstin"))
	saved, err := h.customerService.Save(c.Request.Context(), &customer)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, saved)
}

// Delete handles DELETE /api/v1/customers/:gstin
// @Summary Delete a customer
// @Description Remove a customer from the master. Issued invoices keep their snapshot. Deleting an unknown GSTIN succeeds.
// @Tags customers
// @Produce json
// @Param gstin path string true "Customer GSTIN"
// @Success 200 {object} Response "Customer deleted"
// @Router /customers/{gstin} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.Delete(c.Request.Context(), c.Param("gstin")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "customer deleted"})
}
