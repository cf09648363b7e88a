package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create schedules a class
// POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req services.CreateSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "session created", session)
}

// List returns sessions, optionally filtered
// GET /api/sessions?trainer=&status=&from=&to=
func (h *SessionHandler) List(c *gin.Context) {
	filter := services.SessionFilter{
		Trainer: c.Query("trainer"),
		Status:  c.Query("status"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			response.BadRequest(c, "from must be RFC3339")
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			response.BadRequest(c, "to must be RFC3339")
			return
		}
		filter.To = t
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(sessions), sessions)
}

// Get returns one session
// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// Update applies a partial session update
// PUT /api/sessions/:id
func (h *SessionHandler) Update(c *gin.Context) {
	var req services.UpdateSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.UpdateSession(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "session updated", session)
}

// Delete removes a session
// DELETE /api/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessionService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "session deleted", nil)
}
