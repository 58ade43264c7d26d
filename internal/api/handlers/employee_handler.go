package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"employee-records/internal/api/middleware"
	"employee-records/internal/domain/employee"
	"employee-records/internal/domain/idempotency"
	"employee-records/internal/metrics"
	"employee-records/internal/service"
	"employee-records/pkg/logger"
	"employee-records/pkg/validator"

	"github.com/gin-gonic/gin"
)

const deletedMessage = "Employee deleted successfully."

// EmployeeHandler handles employee-related HTTP requests
type EmployeeHandler struct {
	employeeService    employee.EmployeeService
	idempotencyService *service.IdempotencyService
	metrics            *metrics.Metrics
}

// NewEmployeeHandler creates a new employee handler. idempotencyService may be
// nil, in which case Idempotency-Key headers are ignored.
func NewEmployeeHandler(employeeService employee.EmployeeService, idempotencyService *service.IdempotencyService, m *metrics.Metrics) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService:    employeeService,
		idempotencyService: idempotencyService,
		metrics:            m,
	}
}

// CreateEmployee handles POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	req, ok := bindEmployee(c)
	if !ok {
		return
	}

	key := ""
	if h.idempotencyService != nil {
		key = c.GetString(middleware.IdempotencyKeyContextKey)
	}

	if key != "" {
		stored, duplicate, err := h.idempotencyService.CheckDuplicateRequest(c.Request.Context(), key, req)
		if err != nil {
			switch {
			case errors.Is(err, idempotency.ErrKeyReused):
				respondError(c, http.StatusUnprocessableEntity, err.Error(), nil)
			case errors.Is(err, idempotency.ErrRequestInProgress):
				respondError(c, http.StatusConflict, err.Error(), nil)
			default:
				respondServiceError(c, err)
			}
			return
		}
		if duplicate {
			h.metrics.RecordReplay()
			c.Header("Idempotent-Replayed", "true")
			c.Data(stored.StatusCode, gin.MIMEJSON+"; charset=utf-8", []byte(stored.ResponseData))
			return
		}
	}

	created, err := h.employeeService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		if key != "" {
			if releaseErr := h.idempotencyService.ReleaseRequest(c.Request.Context(), key); releaseErr != nil {
				logger.Warn("Idempotency key %s stays reserved after failed create: %v", key, releaseErr)
			}
		}
		respondServiceError(c, err)
		return
	}

	if key != "" {
		if err := h.idempotencyService.StoreProcessedRequest(c.Request.Context(), key, req, created, http.StatusCreated); err != nil {
			logger.Warn("Employee %d created but idempotency key was not stored: %v", created.ID, err)
		}
	}

	c.JSON(http.StatusCreated, created)
}

// GetEmployeeByID handles GET /api/employees/:id
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	dto, err := h.employeeService.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// GetAllEmployees handles GET /api/employees
func (h *EmployeeHandler) GetAllEmployees(c *gin.Context) {
	employees, err := h.employeeService.GetAllEmployees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee handles PUT /api/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req, ok := bindEmployee(c)
	if !ok {
		return
	}

	updated, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteEmployee handles DELETE /api/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.String(http.StatusOK, deletedMessage)
}

// GetAllEmployeesWithPagination handles GET /api/employees/pagination/:offset/:pageSize
func (h *EmployeeHandler) GetAllEmployeesWithPagination(c *gin.Context) {
	offset, err := strconv.Atoi(c.Param("offset"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid offset", nil)
		return
	}

	pageSize, err := strconv.Atoi(c.Param("pageSize"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid page size", nil)
		return
	}

	page, err := h.employeeService.GetAllEmployeesWithPagination(c.Request.Context(), offset, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetAllEmployeesWithSorting handles GET /api/employees/sort/:field
func (h *EmployeeHandler) GetAllEmployeesWithSorting(c *gin.Context) {
	employees, err := h.employeeService.GetAllEmployeesWithSorting(c.Request.Context(), c.Param("field"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// GetAllEmployeesWithFilter handles GET /api/employees/filter?email=
func (h *EmployeeHandler) GetAllEmployeesWithFilter(c *gin.Context) {
	email, ok := c.GetQuery("email")
	if !ok {
		respondError(c, http.StatusBadRequest, "Required request parameter 'email' is not present", nil)
		return
	}

	employees, err := h.employeeService.GetAllEmployeesWithFilter(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid employee ID format", nil)
		return 0, false
	}
	return id, true
}

func bindEmployee(c *gin.Context) (*employee.EmployeeDto, bool) {
	var req employee.EmployeeDto

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return nil, false
	}

	if err := validator.ValidateStruct(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", validator.FormatValidationError(err))
		return nil, false
	}

	return &req, true
}
