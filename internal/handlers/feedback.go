package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit records (or replaces) a member's feedback
// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req services.SubmitFeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "feedback submitted", fb)
}

// List returns all feedback
// GET /api/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.feedbackService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(feedback), feedback)
}

// ByTrainer returns feedback for one trainer
// GET /api/feedback/trainer/:id
func (h *FeedbackHandler) ByTrainer(c *gin.Context) {
	feedback, err := h.feedbackService.ListForTrainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(feedback), feedback)
}

// TrainerRatings returns average ratings per trainer
// GET /api/feedback/ratings
func (h *FeedbackHandler) TrainerRatings(c *gin.Context) {
	ratings, err := h.feedbackService.TrainerRatings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(ratings), ratings)
}
