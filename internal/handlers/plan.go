package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type PlanHandler struct {
	planService *services.PlanService
}

func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// AssignWorkout creates a workout plan for a trainee
// POST /api/plans/workout
func (h *PlanHandler) AssignWorkout(c *gin.Context) {
	var req services.AssignWorkoutPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.AssignWorkoutPlan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "workout plan assigned", plan)
}

// WorkoutsForTrainee lists a trainee's workout plans
// GET /api/plans/workout/trainee/:id
func (h *PlanHandler) WorkoutsForTrainee(c *gin.Context) {
	plans, err := h.planService.ListWorkoutPlansForTrainee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(plans), plans)
}

// WorkoutsForTrainer lists the plans a trainer has assigned
// GET /api/plans/workout/trainer/:id
func (h *PlanHandler) WorkoutsForTrainer(c *gin.Context) {
	plans, err := h.planService.ListWorkoutPlansForTrainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(plans), plans)
}

// DeleteWorkout removes a workout plan
// DELETE /api/plans/workout/:id
func (h *PlanHandler) DeleteWorkout(c *gin.Context) {
	if err := h.planService.DeleteWorkoutPlan(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "workout plan deleted", nil)
}

// AssignDiet creates a diet plan for a trainee
// POST /api/plans/diet
func (h *PlanHandler) AssignDiet(c *gin.Context) {
	var req services.AssignDietPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.AssignDietPlan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "diet plan assigned", plan)
}

// DietsForTrainee lists a trainee's diet plans
// GET /api/plans/diet/trainee/:id
func (h *PlanHandler) DietsForTrainee(c *gin.Context) {
	plans, err := h.planService.ListDietPlansForTrainee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(plans), plans)
}

// SetMemberWorkout writes the embedded workout plan on a member document
// PUT /api/members/:id/workout-plan
func (h *PlanHandler) SetMemberWorkout(c *gin.Context) {
	var req models.EmbeddedWorkoutPlan
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.planService.SetMemberWorkoutPlan(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "workout plan updated", nil)
}

// SetMemberDiet writes the embedded diet plan on a member document
// PUT /api/members/:id/diet-plan
func (h *PlanHandler) SetMemberDiet(c *gin.Context) {
	var req models.EmbeddedDietPlan
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.planService.SetMemberDietPlan(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "diet plan updated", nil)
}
