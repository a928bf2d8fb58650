// internal/handlers/customer/customer.go
package customer

import (
	"errors"
	"net/http"
	"strconv"

	"customer-admin/internal/domain/customer"
	xerrors "customer-admin/internal/pkg/errors"
	"customer-admin/internal/pkg/response"
	service "customer-admin/internal/service/customer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// RegisterRoutes mounts the customer endpoints on rg
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/getall", h.ListCustomers)
	rg.GET("/:id", h.GetCustomer)
	rg.POST("/add", h.CreateCustomer)
	rg.PUT("/update/:id", h.UpdateCustomer)
	rg.DELETE("/delete/:id", h.DeleteCustomer)
}

// ListCustomers returns every customer
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to list customers", xerrors.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", customers)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// CreateCustomer adds a customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, customer.MessageSaved, result)
}

// UpdateCustomer replaces the customer named in the path
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	var req customer.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer.MessageSaved, result)
}

// DeleteCustomer removes the customer named in the path
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer.MessageDeleted, nil)
}

func (h *CustomerHandler) writeError(c *gin.Context, err error) {
	if reason, ok := xerrors.AsConflict(err); ok {
		response.Conflict(c, reason.Message(), string(reason))
		return
	}

	var verr *xerrors.ValidationError
	if errors.As(err, &verr) {
		response.Unprocessable(c, "invalid customer data", verr.Fields)
		return
	}

	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, customer.MessageNotFound)
		return
	}

	h.logger.Error("customer request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	response.Error(c, http.StatusInternalServerError, "internal server error", xerrors.ErrInternal)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid customer ID", xerrors.ErrBadRequest)
		return 0, false
	}
	return id, true
}
