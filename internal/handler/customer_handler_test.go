package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/mocks"
)

func newCustomerHandler() (*handler.CustomerHandler, *mocks.MockCustomerService) {
	mockSvc := new(mocks.MockCustomerService)
	return handler.NewCustomerHandler(mockSvc), mockSvc
}

func TestCustomerHandler_List(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	customers := []domain.CustomerDetails{
		{GSTIN: "33AEIPA9533Q1Z5", Name: "Sri Murugan Traders", State: "TAMIL NADU"},
	}
	mockSvc.On("List", mock.Anything, "murugan").Return(customers, nil)

	c, w := newContext(http.MethodGet, "/api/v1/customers?q=murugan", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]domain.CustomerDetails](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, customers, resp.Data)
	assert.Equal(t, 1, resp.Meta.Total)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_List_EmptyIsArray(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("List", mock.Anything, "").Return(nil, nil)

	c, w := newContext(http.MethodGet, "/api/v1/customers", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestCustomerHandler_Get_NotFound(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("Get", mock.Anything, "33AEIPA9533Q1Z5").Return(nil, domain.ErrCustomerNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/customers/33AEIPA9533Q1Z5", nil)
	c.Params = gin.Params{{Key: "gstin", Value: "33AEIPA9533Q1Z5"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode[any](t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", resp.Error.Code)
}

func TestCustomerHandler_Save_PathGSTINWins(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	saved := &domain.CustomerDetails{GSTIN: "33AEIPA9533Q1Z5", Name: "Sri Murugan Traders", State: "TAMIL NADU"}
	mockSvc.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.CustomerDetails) bool {
		return c.GSTIN == "33aeipa9533q1z5" && c.Name == "Sri Murugan Traders"
	})).Return(saved, nil)

	c, w := newContext(http.MethodPut, "/api/v1/customers/33aeipa9533q1z5", map[string]string{
		"gstin": "IGNORED",
		"name":  "Sri Murugan Traders",
		"state": "tamil nadu",
	})
	c.Params = gin.Params{{Key: "gstin", Value: "33aeipa9533q1z5"}}
	h.Save(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[domain.CustomerDetails](t, w)
	assert.Equal(t, *saved, resp.Data)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_Save_MissingName(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	c, w := newContext(http.MethodPut, "/api/v1/customers/33AEIPA9533Q1Z5", map[string]string{"state": "KERALA"})
	c.Params = gin.Params{{Key: "gstin", Value: "33AEIPA9533Q1Z5"}}
	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[any](t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Save_InvalidGSTIN(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("Save", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidGSTIN)

	c, w := newContext(http.MethodPut, "/api/v1/customers/BAD", map[string]string{"name": "X"})
	c.Params = gin.Params{{Key: "gstin", Value: "BAD"}}
	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_GSTIN", decode[any](t, w).Error.Code)
}

func TestCustomerHandler_Delete(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("Delete", mock.Anything, "33AEIPA9533Q1Z5").Return(nil)

	c, w := newContext(http.MethodDelete, "/api/v1/customers/33AEIPA9533Q1Z5", nil)
	c.Params = gin.Params{{Key: "gstin", Value: "33AEIPA9533Q1Z5"}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_InternalError(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("List", mock.Anything, "").Return(nil, errors.New("connection reset"))

	c, w := newContext(http.MethodGet, "/api/v1/customers", nil)
	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[any](t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
