package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/middleware"
	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type TrainerHandler struct {
	trainerService *services.TrainerService
}

func NewTrainerHandler(trainerService *services.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

type createTrainerRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio"`
	Experience     string `json:"experience"`
	Password       string `json:"password"`
}

// Create adds a trainer together with its login identity
// POST /api/trainers
func (h *TrainerHandler) Create(c *gin.Context) {
	var req createTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trainer, err := h.trainerService.CreateTrainer(c.Request.Context(), services.CreateTrainerInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Gender:         req.Gender,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Experience:     req.Experience,
		Password:       req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "trainer created", trainer)
}

// List returns all trainers, repairing missing projections first
// GET /api/trainers
func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainerService.ListTrainers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(trainers), trainers)
}

// Get returns one trainer
// GET /api/trainers/:id
func (h *TrainerHandler) Get(c *gin.Context) {
	trainer, err := h.trainerService.GetTrainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trainer)
}

// Me returns (and heals) the trainer profile of the logged-in user
// GET /api/trainers/me
func (h *TrainerHandler) Me(c *gin.Context) {
	trainer, err := h.trainerService.GetTrainerByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trainer)
}

type updateTrainerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio"`
	Experience     string `json:"experience"`
}

// Update applies a trainer-origin update, fanning out to the identity and
// the staff record
// PUT /api/trainers/:id
func (h *TrainerHandler) Update(c *gin.Context) {
	var req updateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trainer, err := h.trainerService.UpdateTrainer(c.Request.Context(), c.Param("id"), services.TrainerPatch{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Experience:     req.Experience,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "trainer updated", trainer)
}

// Delete removes a trainer, its staff record and its identity
// DELETE /api/trainers/:id
func (h *TrainerHandler) Delete(c *gin.Context) {
	if err := h.trainerService.DeleteTrainer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "trainer deleted", nil)
}
