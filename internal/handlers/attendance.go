package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type AttendanceHandler struct {
	service *services.AttendanceService
}

func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// CheckIn validates an access code and records a visit.
// POST /api/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	attendance, err := h.service.CheckIn(req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "check-in recorded", attendance)
}

// CheckOut closes an open visit.
// PUT /api/attendance/:id/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	attendance, err := h.service.CheckOut(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "check-out recorded", attendance)
}

// List returns attendance records, filtered by client and date range.
// GET /api/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	clientID, _ := strconv.ParseUint(c.Query("client_id"), 10, 32)

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	records, err := h.service.List(uint(clientID), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "attendance retrieved", records)
}
