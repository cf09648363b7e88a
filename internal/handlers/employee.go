package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

type createStaffRequest struct {
	Name           string     `json:"name" binding:"required"`
	Role           string     `json:"role" binding:"required"`
	Gender         string     `json:"gender"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email" binding:"required,email"`
	JoiningDate    *time.Time `json:"joiningDate"`
	SalaryType     string     `json:"salaryType"`
	BaseSalary     float64    `json:"baseSalary"`
	Status         string     `json:"status"`
	Specialization string     `json:"specialization"`
	Bio            string     `json:"bio"`
	Experience     string     `json:"experience"`
}

// Create adds a staff record, plus an identity for portal roles
// POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	in := services.CreateStaffInput{
		Name:           req.Name,
		Role:           req.Role,
		Gender:         req.Gender,
		Phone:          req.Phone,
		Email:          req.Email,
		SalaryType:     req.SalaryType,
		BaseSalary:     req.BaseSalary,
		Status:         req.Status,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Experience:     req.Experience,
	}
	if req.JoiningDate != nil {
		in.JoiningDate = *req.JoiningDate
	}

	staff, err := h.employeeService.CreateStaff(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "staff created", staff)
}

// List returns all staff records
// GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	staff, err := h.employeeService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(staff), staff)
}

// Get returns one staff record
// GET /api/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	staff, err := h.employeeService.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, staff)
}

type updateStaffRequest struct {
	Name           string     `json:"name"`
	Gender         string     `json:"gender"`
	Phone          string     `json:"phone"`
	JoiningDate    *time.Time `json:"joiningDate"`
	SalaryType     string     `json:"salaryType"`
	BaseSalary     *float64   `json:"baseSalary"`
	Status         string     `json:"status"`
	Specialization string     `json:"specialization"`
	Bio            string     `json:"bio"`
	Experience     string     `json:"experience"`
}

// Update applies a staff-origin update, fanning out to the identity and the
// trainer profile
// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req updateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	staff, err := h.employeeService.UpdateStaff(c.Request.Context(), c.Param("id"), services.UpdateStaffInput{
		Name:           req.Name,
		Gender:         req.Gender,
		Phone:          req.Phone,
		JoiningDate:    req.JoiningDate,
		SalaryType:     req.SalaryType,
		BaseSalary:     req.BaseSalary,
		Status:         req.Status,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Experience:     req.Experience,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "staff updated", staff)
}

// Delete removes a staff record and, for portal staff, its identity
// DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.DeleteStaff(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "staff deleted", nil)
}
