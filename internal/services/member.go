package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Senthuron/Gym-Backend/internal/billing"
	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// Member list filters.
const (
	FilterAll      = ""
	FilterActive   = "active"
	FilterInactive = "inactive"
	FilterExpiring = "expiring"

	expiringWindowDays = 7
)

// MemberService is the façade over member profiles. Writes that touch the
// identity go through the reconciler; reads for a specific identity repair
// missing profiles on the way.
type MemberService struct {
	members MemberStore
	users   IdentityStore
	rec     *Reconciler
	hub     *Hub
}

func NewMemberService(members MemberStore, users IdentityStore, rec *Reconciler, hub *Hub) *MemberService {
	return &MemberService{members: members, users: users, rec: rec, hub: hub}
}

// MemberMatchesFilter applies the list filter to one member. Active accepts
// an explicit active status, and falls back to the membership window for
// profiles whose status was never set; inactive is purely date-derived
// (expired membership); expiring means active with seven or fewer days left.
func MemberMatchesFilter(m *models.Member, filter string, now time.Time) bool {
	switch filter {
	case FilterActive:
		if m.Status == models.MemberStatusActive {
			return true
		}
		return m.Status != models.MemberStatusDeactive &&
			m.Status != models.MemberStatusPending &&
			m.IsActive(now)
	case FilterInactive:
		return !m.IsActive(now)
	case FilterExpiring:
		return m.IsActive(now) && m.DaysUntilExpiration(now) <= expiringWindowDays
	default:
		return true
	}
}

func (s *MemberService) CreateMember(ctx context.Context, in CreateMemberInput) (*models.Member, error) {
	m, err := s.rec.CreateMemberWithIdentity(ctx, in)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(Event{Type: EventMemberUpdated, Payload: m})
	return m, nil
}

// ListMembers heals missing profiles for every member identity, then applies
// the status filter and an optional case-insensitive name/email substring
// search. Repair failures for one identity are logged and skipped so one bad
// document cannot empty the listing.
func (s *MemberService) ListMembers(ctx context.Context, filter, search string) ([]models.Member, error) {
	identities, err := s.users.ListByRole(ctx, models.RoleMember)
	if err != nil {
		return nil, err
	}
	for i := range identities {
		if _, err := s.rec.EnsureMemberProfile(ctx, &identities[i]); err != nil {
			logger.Error().Err(err).Str("email", identities[i].Email).Msg("member profile repair failed")
		}
	}

	all, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Member, 0, len(all))
	for i := range all {
		m := &all[i]
		if !MemberMatchesFilter(m, filter, now) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(m.Email, search) {
			continue
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (s *MemberService) GetMember(ctx context.Context, id string) (*models.Member, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	m, err := s.members.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, response.NewNotFound("member not found")
	}
	return m, nil
}

// GetMemberByUser resolves the member profile for an identity, healing a
// missing profile for member-role identities.
func (s *MemberService) GetMemberByUser(ctx context.Context, userID string) (*models.Member, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewNotFound("user not found")
	}
	if user.Role != models.RoleMember {
		return nil, response.NewForbidden("not a member account")
	}
	return s.rec.EnsureMemberProfile(ctx, user)
}

// UpdateMemberInput carries a partial member update. Zero values mean
// "leave unchanged"; date updates require both dates.
type UpdateMemberInput struct {
	Name                string
	Email               string
	Phone               string
	Gender              string
	Age                 int
	Weight              float64
	MembershipStartDate *time.Time
	MembershipEndDate   *time.Time
	Plan                string
	Class               string
	ClassType           string
	DifficultyLevel     string
	Status              string
}

// UpdateMember applies a member-origin update and pushes the shared fields
// to the linked identity.
func (s *MemberService) UpdateMember(ctx context.Context, id string, in UpdateMemberInput) (*models.Member, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = NormalizeEmail(in.Email)
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.Gender != "" {
		fields["gender"] = in.Gender
	}
	if in.Age > 0 {
		fields["age"] = in.Age
	}
	if in.Weight > 0 {
		fields["weight"] = in.Weight
	}
	if in.Plan != "" {
		fields["plan"] = in.Plan
	}
	if in.Class != "" {
		fields["class"] = in.Class
	}
	if in.ClassType != "" {
		fields["classType"] = in.ClassType
	}
	if in.DifficultyLevel != "" {
		fields["difficultyLevel"] = in.DifficultyLevel
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	if in.MembershipStartDate != nil || in.MembershipEndDate != nil {
		start, end := m.MembershipStartDate, m.MembershipEndDate
		if in.MembershipStartDate != nil {
			start = *in.MembershipStartDate
		}
		if in.MembershipEndDate != nil {
			end = *in.MembershipEndDate
		}
		if !end.After(start) {
			return nil, response.NewValidation("membershipEndDate must be after membershipStartDate")
		}
		fields["membershipStartDate"] = start
		fields["membershipEndDate"] = end
	}
	if len(fields) == 0 {
		return m, nil
	}

	if err := s.members.UpdateFields(ctx, m.ID, fields); err != nil {
		return nil, conflictOr(err, "email already in use")
	}

	// Member-origin write wins on the shared identity fields.
	if m.User != nil {
		patch := IdentityPatch{Name: in.Name, Email: in.Email, Phone: in.Phone, Gender: in.Gender}
		if idFields := patch.fields(); len(idFields) > 0 {
			if err := s.users.UpdateFields(ctx, *m.User, idFields); err != nil {
				return nil, conflictOr(err, "email already in use")
			}
		}
	}

	updated, err := s.members.FindByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(Event{Type: EventMemberUpdated, Payload: updated})
	if m.User != nil {
		s.hub.EmitToUser(m.User.Hex(), Event{Type: EventMemberUpdated, Payload: updated})
	}
	return updated, nil
}

// RenewMembership extends a membership and reactivates it. The billing
// anchor moves to the renewal time.
func (s *MemberService) RenewMembership(ctx context.Context, id string, plan string, newEndDate time.Time) (*models.Member, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if newEndDate.Before(now) {
		return nil, response.NewValidation("new end date must be in the future")
	}
	next := billing.NextBillingDate(now)
	fields := bson.M{
		"membershipEndDate": newEndDate,
		"nextBillingDate":   next,
		"status":            models.MemberStatusActive,
	}
	if plan != "" {
		fields["plan"] = plan
	}
	if err := s.members.UpdateFields(ctx, m.ID, fields); err != nil {
		return nil, err
	}
	updated, err := s.members.FindByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if m.User != nil {
		s.hub.EmitToUser(m.User.Hex(), Event{Type: EventMemberUpdated, Payload: updated})
	}
	return updated, nil
}

// DeleteMember removes a member. Linked members go through the cascade so
// the identity and any other projections disappear with the profile.
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return err
	}
	if m.User != nil {
		return s.rec.CascadeDelete(ctx, *m.User)
	}
	return s.members.Delete(ctx, m.ID)
}
