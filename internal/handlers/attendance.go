package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/middleware"
	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	employeeAttSvc    *services.EmployeeAttendanceService
}

func NewAttendanceHandler(att *services.AttendanceService, empAtt *services.EmployeeAttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: att, employeeAttSvc: empAtt}
}

type markAttendanceRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	MemberID  string `json:"memberId" binding:"required"`
	IsPresent *bool  `json:"isPresent" binding:"required"`
}

// Mark records a member's attendance at a session
// POST /api/attendance
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.attendanceService.MarkAttendance(c.Request.Context(), req.SessionID, req.MemberID, *req.IsPresent,
		middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "attendance marked", record)
}

// BySession lists attendance for one session
// GET /api/attendance/session/:id
func (h *AttendanceHandler) BySession(c *gin.Context) {
	records, err := h.attendanceService.ListSessionAttendance(c.Request.Context(), c.Param("id"),
		middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(records), records)
}

// ByMember lists attendance for one member
// GET /api/attendance/member/:id
func (h *AttendanceHandler) ByMember(c *gin.Context) {
	records, err := h.attendanceService.ListMemberAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(records), records)
}

type markEmployeeAttendanceRequest struct {
	EmployeeID string     `json:"employeeId" binding:"required"`
	Date       *time.Time `json:"date"`
	Status     string     `json:"status" binding:"required"`
	Note       string     `json:"note"`
}

// MarkEmployee records one employee's attendance for a day
// POST /api/employee-attendance
func (h *AttendanceHandler) MarkEmployee(c *gin.Context) {
	var req markEmployeeAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	record, err := h.employeeAttSvc.Mark(c.Request.Context(), req.EmployeeID, date, req.Status, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "attendance marked", record)
}

type bulkEmployeeAttendanceRequest struct {
	Date    *time.Time                `json:"date"`
	Entries []services.BulkMarkEntry `json:"entries" binding:"required,dive"`
}

// MarkEmployeesBulk records a whole day's staff roll call in one request
// POST /api/employee-attendance/bulk
func (h *AttendanceHandler) MarkEmployeesBulk(c *gin.Context) {
	var req bulkEmployeeAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	records, err := h.employeeAttSvc.MarkBulk(c.Request.Context(), date, req.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "attendance marked", records)
}

// EmployeeHistory lists one employee's attendance in an optional date range
// GET /api/employee-attendance/:id?from=&to=
func (h *AttendanceHandler) EmployeeHistory(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "to must be YYYY-MM-DD")
			return
		}
		to = t
	}

	records, err := h.employeeAttSvc.ListForEmployee(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(records), records)
}

// EmployeeDay lists every staff attendance record for one day
// GET /api/employee-attendance/day/:date
func (h *AttendanceHandler) EmployeeDay(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	records, err := h.employeeAttSvc.ListForDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(records), records)
}

// EmployeeMonthlySummary counts an employee's statuses for one month
// GET /api/employee-attendance/:id/summary?year=2026&month=8
func (h *AttendanceHandler) EmployeeMonthlySummary(c *gin.Context) {
	var query struct {
		Year  int `form:"year" binding:"required"`
		Month int `form:"month" binding:"required,min=1,max=12"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.employeeAttSvc.MonthlySummary(c.Request.Context(), c.Param("id"), query.Year, time.Month(query.Month))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
