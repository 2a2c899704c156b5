package handler

import (
	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

// CompanyProfile is the issuer identity together with the active tax rates.
type CompanyProfile struct {
	Company domain.CompanyDetails `json:"company"`
	Rates   gst.Rates             `json:"rates"`
}

// CompanyHandler serves the static issuer identity.
type CompanyHandler struct {
	profile CompanyProfile
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(company domain.CompanyDetails, rates gst.Rates) *CompanyHandler {
	return &CompanyHandler{profile: CompanyProfile{Company: company, Rates: rates}}
}

// Get handles GET /api/v1/company
// @Summary Get company details
// @Description Issuer identity, bank details and GST rates printed on every invoice
// @Tags company
// @Produce json
// @Success 200 {object} Response{data=CompanyProfile} "Company profile"
// @Router /company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	RespondOK(c, h.profile)
}
