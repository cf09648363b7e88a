package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/middleware"
	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

type createMemberRequest struct {
	Name                string    `json:"name" binding:"required"`
	Email               string    `json:"email" binding:"required,email"`
	Phone               string    `json:"phone"`
	Gender              string    `json:"gender"`
	Age                 int       `json:"age"`
	Weight              float64   `json:"weight"`
	MembershipStartDate time.Time `json:"membershipStartDate" binding:"required"`
	MembershipEndDate   time.Time `json:"membershipEndDate" binding:"required"`
	Plan                string    `json:"plan"`
	Class               string    `json:"class"`
	ClassType           string    `json:"classType"`
	DifficultyLevel     string    `json:"difficultyLevel"`
	Status              string    `json:"status"`
	Password            string    `json:"password"`
}

// Create adds a member together with its login identity
// POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), services.CreateMemberInput{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Gender:              req.Gender,
		Age:                 req.Age,
		Weight:              req.Weight,
		MembershipStartDate: req.MembershipStartDate,
		MembershipEndDate:   req.MembershipEndDate,
		Plan:                req.Plan,
		Class:               req.Class,
		ClassType:           req.ClassType,
		DifficultyLevel:     req.DifficultyLevel,
		Status:              req.Status,
		Password:            req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "member created", member)
}

// List returns members, optionally filtered
// GET /api/members?filter=active|inactive|expiring&q=<name or email>
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context(), c.Query("filter"), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessList(c, len(members), members)
}

// Get returns one member
// GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberService.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}

// Me returns (and heals) the member profile of the logged-in user
// GET /api/members/me
func (h *MemberHandler) Me(c *gin.Context) {
	member, err := h.memberService.GetMemberByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}

type updateMemberRequest struct {
	Name                string     `json:"name"`
	Email               string     `json:"email" binding:"omitempty,email"`
	Phone               string     `json:"phone"`
	Gender              string     `json:"gender"`
	Age                 int        `json:"age"`
	Weight              float64    `json:"weight"`
	MembershipStartDate *time.Time `json:"membershipStartDate"`
	MembershipEndDate   *time.Time `json:"membershipEndDate"`
	Plan                string     `json:"plan"`
	Class               string     `json:"class"`
	ClassType           string     `json:"classType"`
	DifficultyLevel     string     `json:"difficultyLevel"`
	Status              string     `json:"status"`
}

// Update applies a partial member update
// PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), c.Param("id"), services.UpdateMemberInput{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Gender:              req.Gender,
		Age:                 req.Age,
		Weight:              req.Weight,
		MembershipStartDate: req.MembershipStartDate,
		MembershipEndDate:   req.MembershipEndDate,
		Plan:                req.Plan,
		Class:               req.Class,
		ClassType:           req.ClassType,
		DifficultyLevel:     req.DifficultyLevel,
		Status:              req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "member updated", member)
}

type renewMembershipRequest struct {
	Plan              string    `json:"plan"`
	MembershipEndDate time.Time `json:"membershipEndDate" binding:"required"`
}

// Renew extends a membership
// POST /api/members/:id/renew
func (h *MemberHandler) Renew(c *gin.Context) {
	var req renewMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.RenewMembership(c.Request.Context(), c.Param("id"), req.Plan, req.MembershipEndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "membership renewed", member)
}

// Delete removes a member and its identity
// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "member deleted", nil)
}
