package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Senthuron/Gym-Backend/internal/billing"
	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/internal/utils"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// Reconciler owns every write that spans the identity collection and the
// role-profile collections. The store has no multi-document transactions, so
// multi-collection creates run as sagas with compensating deletes, and reads
// repair drift through idempotent upserts keyed by the identity reference.
type Reconciler struct {
	users     IdentityStore
	members   MemberStore
	trainers  TrainerStore
	employees EmployeeStore
	welcome   WelcomeMailer
}

// WelcomeMailer notifies a freshly created account. Optional; nil disables.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

func NewReconciler(users IdentityStore, members MemberStore, trainers TrainerStore, employees EmployeeStore) *Reconciler {
	return &Reconciler{
		users:     users,
		members:   members,
		trainers:  trainers,
		employees: employees,
	}
}

// SetWelcomeMailer enables the welcome mail on explicit account creation.
// Healed records never trigger mail.
func (r *Reconciler) SetWelcomeMailer(m WelcomeMailer) {
	r.welcome = m
}

// notifyWelcome sends the welcome mail for a new account. Mail failure never
// fails the creation; it is logged and dropped.
func (r *Reconciler) notifyWelcome(ctx context.Context, email, name string) {
	if r.welcome == nil {
		return
	}
	if err := r.welcome.SendWelcome(ctx, email, name); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("welcome email failed")
	}
}

// NormalizeEmail lowercases and trims an email. All lookups and stored
// documents use the normalized form; uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateMemberInput carries the admin member-creation request.
type CreateMemberInput struct {
	Name                string
	Email               string
	Phone               string
	Gender              string
	Age                 int
	Weight              float64
	MembershipStartDate time.Time
	MembershipEndDate   time.Time
	Plan                string
	Class               string
	ClassType           string
	DifficultyLevel     string
	Status              string
	Password            string
}

// CreateMemberWithIdentity creates the User identity and the Member profile
// as a two-step saga. If the profile insert fails, the freshly created
// identity is deleted so no orphan identity survives the request.
func (r *Reconciler) CreateMemberWithIdentity(ctx context.Context, in CreateMemberInput) (*models.Member, error) {
	email := NormalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, response.NewValidation("name and email are required")
	}
	if !in.MembershipEndDate.After(in.MembershipStartDate) {
		return nil, response.NewValidation("membershipEndDate must be after membershipStartDate")
	}

	if existing, err := r.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, response.NewConflict("a user with this email already exists")
	}
	if existing, err := r.members.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, response.NewConflict("a member with this email already exists")
	}

	password := in.Password
	if password == "" {
		password = models.DefaultAccountPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Phone:    in.Phone,
		Password: hash,
		Role:     models.RoleMember,
		Gender:   in.Gender,
	}
	nextBilling := billing.NextBillingDate(in.MembershipStartDate)
	member := &models.Member{
		Name:                in.Name,
		Email:               email,
		Phone:               models.OrDefault(in.Phone, models.MemberDefaults.Phone),
		Gender:              in.Gender,
		Age:                 in.Age,
		Weight:              in.Weight,
		MembershipStartDate: in.MembershipStartDate,
		MembershipEndDate:   in.MembershipEndDate,
		Plan:                in.Plan,
		Class:               in.Class,
		ClassType:           models.OrDefault(in.ClassType, models.MemberDefaults.ClassType),
		DifficultyLevel:     models.OrDefault(in.DifficultyLevel, models.MemberDefaults.DifficultyLevel),
		Status:              models.OrDefault(in.Status, models.MemberDefaults.Status),
		NextBillingDate:     &nextBilling,
	}

	err = RunSaga(ctx, []SagaStep{
		{
			Name: "insert identity",
			Run: func(ctx context.Context) error {
				return r.users.Insert(ctx, user)
			},
			Compensate: func(ctx context.Context) error {
				return r.users.Delete(ctx, user.ID)
			},
		},
		{
			Name: "insert member profile",
			Run: func(ctx context.Context) error {
				member.User = &user.ID
				return r.members.Insert(ctx, member)
			},
		},
	})
	if err != nil {
		return nil, conflictOr(err, "member email already in use")
	}
	r.notifyWelcome(ctx, email, member.Name)
	return member, nil
}

// CreateTrainerInput carries the admin trainer-creation request.
type CreateTrainerInput struct {
	Name           string
	Email          string
	Phone          string
	Gender         string
	Specialization string
	Bio            string
	Experience     string
	Password       string
}

// CreateTrainerWithIdentity creates the User identity and the Trainer
// profile as a two-step saga with the same compensation rule as members.
func (r *Reconciler) CreateTrainerWithIdentity(ctx context.Context, in CreateTrainerInput) (*models.Trainer, error) {
	email := NormalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, response.NewValidation("name and email are required")
	}

	if existing, err := r.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, response.NewConflict("a user with this email already exists")
	}

	password := in.Password
	if password == "" {
		password = models.DefaultAccountPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Phone:    in.Phone,
		Password: hash,
		Role:     models.RoleTrainer,
		Gender:   in.Gender,
	}
	trainer := &models.Trainer{
		Name:           in.Name,
		Email:          email,
		Phone:          models.OrDefault(in.Phone, models.TrainerDefaults.Phone),
		Specialization: in.Specialization,
		Bio:            in.Bio,
		Experience:     in.Experience,
	}

	err = RunSaga(ctx, []SagaStep{
		{
			Name: "insert identity",
			Run: func(ctx context.Context) error {
				return r.users.Insert(ctx, user)
			},
			Compensate: func(ctx context.Context) error {
				return r.users.Delete(ctx, user.ID)
			},
		},
		{
			Name: "insert trainer profile",
			Run: func(ctx context.Context) error {
				trainer.User = user.ID
				return r.trainers.Insert(ctx, trainer)
			},
		},
	})
	if err != nil {
		return nil, conflictOr(err, "trainer email already in use")
	}
	r.notifyWelcome(ctx, email, trainer.Name)
	return trainer, nil
}

// CreateStaffInput carries the staff-creation request.
type CreateStaffInput struct {
	Name           string
	Role           string
	Gender         string
	Phone          string
	Email          string
	JoiningDate    time.Time
	SalaryType     string
	BaseSalary     float64
	Status         string
	Specialization string
	Bio            string
	Experience     string
}

// CreateStaff creates an Employee record, and for portal roles additionally
// an identity (reusing one that already exists for the email) plus, for
// trainer staff, a field-synchronized Trainer profile. Runs as a saga; the
// identity is only compensated away if this call created it.
func (r *Reconciler) CreateStaff(ctx context.Context, in CreateStaffInput) (*models.Employee, error) {
	email := NormalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, response.NewValidation("name and email are required")
	}
	if !models.ValidEmployeeRole(in.Role) {
		return nil, response.NewValidation("invalid staff role: " + in.Role)
	}
	if existing, err := r.employees.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, response.NewConflict("a staff record with this email already exists")
	}

	code, err := r.NextStaffCode(ctx)
	if err != nil {
		return nil, err
	}

	joining := in.JoiningDate
	if joining.IsZero() {
		joining = time.Now()
	}
	emp := &models.Employee{
		EmployeeID:     code,
		Name:           in.Name,
		Role:           in.Role,
		Gender:         models.OrDefault(in.Gender, models.StaffDefaults.Gender),
		Phone:          models.OrDefault(in.Phone, models.StaffDefaults.Phone),
		Email:          email,
		JoiningDate:    joining,
		SalaryType:     models.OrDefault(in.SalaryType, models.StaffDefaults.SalaryType),
		BaseSalary:     in.BaseSalary,
		Status:         models.OrDefault(in.Status, models.StaffDefaults.EmployeeStatus),
		Specialization: in.Specialization,
		Bio:            in.Bio,
		Experience:     in.Experience,
	}

	var (
		user        *models.User
		createdUser bool
	)

	steps := []SagaStep{
		{
			Name: "insert staff record",
			Run: func(ctx context.Context) error {
				return r.employees.Insert(ctx, emp)
			},
			Compensate: func(ctx context.Context) error {
				return r.employees.Delete(ctx, emp.ID)
			},
		},
	}
	if models.PortalRole(in.Role) {
		steps = append(steps, SagaStep{
			Name: "ensure portal identity",
			Run: func(ctx context.Context) error {
				existing, err := r.users.FindByEmail(ctx, email)
				if err != nil {
					return err
				}
				if existing != nil {
					user = existing
					return nil
				}
				hash, err := utils.HashPassword(models.DefaultAccountPassword)
				if err != nil {
					return err
				}
				user = &models.User{
					Name:     in.Name,
					Email:    email,
					Phone:    emp.Phone,
					Password: hash,
					Role:     identityRoleForStaff(in.Role),
					Gender:   emp.Gender,
				}
				if err := r.users.Insert(ctx, user); err != nil {
					return err
				}
				createdUser = true
				return nil
			},
			Compensate: func(ctx context.Context) error {
				if !createdUser {
					return nil
				}
				return r.users.Delete(ctx, user.ID)
			},
		}, SagaStep{
			Name: "link staff to identity",
			Run: func(ctx context.Context) error {
				emp.User = &user.ID
				return r.employees.UpdateFields(ctx, emp.ID, bson.M{"user": user.ID})
			},
		})
	}
	if in.Role == models.EmployeeRoleTrainer {
		steps = append(steps, SagaStep{
			Name: "sync trainer profile",
			Run: func(ctx context.Context) error {
				return r.trainers.ApplyByUser(ctx, user.ID, bson.M{
					"name":           emp.Name,
					"email":          emp.Email,
					"phone":          emp.Phone,
					"specialization": emp.Specialization,
					"bio":            emp.Bio,
					"experience":     emp.Experience,
				}, true)
			},
		})
	}

	if err := RunSaga(ctx, steps); err != nil {
		return nil, conflictOr(err, "staff email already in use")
	}
	r.notifyWelcome(ctx, email, emp.Name)
	return emp, nil
}

// identityRoleForStaff maps a staff role onto the identity role enum.
func identityRoleForStaff(role string) string {
	switch role {
	case models.EmployeeRoleTrainer:
		return models.RoleTrainer
	case models.EmployeeRoleReception:
		return models.RoleReception
	case models.EmployeeRoleManager:
		return models.RoleManager
	}
	return ""
}

// staffRoleForIdentity is the inverse mapping, used when healing a staff
// record from an identity. Unknown roles fall back to the staff default.
func staffRoleForIdentity(role string) string {
	switch role {
	case models.RoleTrainer:
		return models.EmployeeRoleTrainer
	case models.RoleReception:
		return models.EmployeeRoleReception
	case models.RoleManager:
		return models.EmployeeRoleManager
	}
	return models.StaffDefaults.EmployeeRole
}

// EnsureMemberProfile repairs a missing member profile for a member identity.
// The upsert is keyed by the identity reference and only applies the seed on
// insert, so concurrent repairs converge on a single document. Synthesized
// memberships start now and run one billing cycle.
func (r *Reconciler) EnsureMemberProfile(ctx context.Context, user *models.User) (*models.Member, error) {
	now := time.Now()
	end := now.AddDate(0, 0, billing.BillingCycleDays)
	next := billing.NextBillingDate(now)
	seed := &models.Member{
		Name:                user.Name,
		Email:               user.Email,
		Phone:               models.OrDefault(user.Phone, models.MemberDefaults.Phone),
		Gender:              user.Gender,
		MembershipStartDate: now,
		MembershipEndDate:   end,
		Class:               models.MemberDefaults.Class,
		ClassType:           models.MemberDefaults.ClassType,
		DifficultyLevel:     models.MemberDefaults.DifficultyLevel,
		Status:              models.MemberDefaults.Status,
		NextBillingDate:     &next,
	}
	healed, err := r.members.EnsureForUser(ctx, user.ID, seed)
	if err != nil {
		return nil, err
	}
	if healed.CreatedAt.Equal(seed.CreatedAt) {
		logger.Warn().
			Str("user_id", user.ID.Hex()).
			Str("email", user.Email).
			Msg("healed missing member profile")
	}
	return healed, nil
}

// EnsureTrainerProfile repairs a missing trainer profile for a trainer
// identity.
func (r *Reconciler) EnsureTrainerProfile(ctx context.Context, user *models.User) (*models.Trainer, error) {
	seed := &models.Trainer{
		Name:  user.Name,
		Email: user.Email,
		Phone: models.OrDefault(user.Phone, models.TrainerDefaults.Phone),
	}
	healed, err := r.trainers.EnsureForUser(ctx, user.ID, seed)
	if err != nil {
		return nil, err
	}
	if healed.CreatedAt.Equal(seed.CreatedAt) {
		logger.Warn().
			Str("user_id", user.ID.Hex()).
			Str("email", user.Email).
			Msg("healed missing trainer profile")
	}
	return healed, nil
}

// EnsureStaffRecord repairs a missing Employee record for a portal staff
// identity, then backfills any trainer-shaped fields the existing record is
// missing. trainer is nil for reception and manager identities.
func (r *Reconciler) EnsureStaffRecord(ctx context.Context, user *models.User, trainer *models.Trainer) (*models.Employee, error) {
	code, err := r.NextStaffCode(ctx)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		trainer = &models.Trainer{}
	}
	seed := &models.Employee{
		EmployeeID:     code,
		Name:           user.Name,
		Role:           staffRoleForIdentity(user.Role),
		Gender:         models.OrDefault(user.Gender, models.StaffDefaults.Gender),
		Phone:          models.OrDefault(user.Phone, models.StaffDefaults.Phone),
		JoiningDate:    time.Now(),
		SalaryType:     models.StaffDefaults.SalaryType,
		BaseSalary:     models.StaffDefaults.BaseSalary,
		Status:         models.StaffDefaults.EmployeeStatus,
		User:           &user.ID,
		Specialization: trainer.Specialization,
		Bio:            trainer.Bio,
		Experience:     trainer.Experience,
	}
	emp, err := r.employees.EnsureForEmail(ctx, user.Email, seed)
	if err != nil {
		return nil, err
	}

	// Backfill fields an older staff record may lack. Only absent fields are
	// filled; present values are left alone so staff-side edits survive.
	patch := bson.M{}
	if emp.User == nil {
		patch["user"] = user.ID
		emp.User = &user.ID
	}
	if emp.Specialization == "" && trainer.Specialization != "" {
		patch["specialization"] = trainer.Specialization
		emp.Specialization = trainer.Specialization
	}
	if emp.Bio == "" && trainer.Bio != "" {
		patch["bio"] = trainer.Bio
		emp.Bio = trainer.Bio
	}
	if emp.Experience == "" && trainer.Experience != "" {
		patch["experience"] = trainer.Experience
		emp.Experience = trainer.Experience
	}
	if len(patch) > 0 {
		if err := r.employees.UpdateFields(ctx, emp.ID, patch); err != nil {
			return nil, err
		}
	}
	return emp, nil
}

// IdentityPatch is the set of shared identity fields a write may change.
// Empty fields are left untouched.
type IdentityPatch struct {
	Name   string
	Email  string
	Phone  string
	Gender string
}

func (p IdentityPatch) fields() bson.M {
	out := bson.M{}
	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.Email != "" {
		out["email"] = NormalizeEmail(p.Email)
	}
	if p.Phone != "" {
		out["phone"] = p.Phone
	}
	if p.Gender != "" {
		out["gender"] = p.Gender
	}
	return out
}

// SyncIdentity applies an identity-origin change to the User document and
// propagates the shared fields to every projection that references it. The
// origin write wins; projection errors are logged and do not abort the rest
// of the fan-out because a partially synced state is repaired on read.
func (r *Reconciler) SyncIdentity(ctx context.Context, userID primitive.ObjectID, patch IdentityPatch) error {
	fields := patch.fields()
	if len(fields) == 0 {
		return nil
	}
	if err := r.users.UpdateFields(ctx, userID, fields); err != nil {
		return conflictOr(err, "email already in use")
	}

	shared := bson.M{}
	for _, k := range []string{"name", "email", "phone", "gender"} {
		if v, ok := fields[k]; ok {
			shared[k] = v
		}
	}
	trainerShared := bson.M{}
	for _, k := range []string{"name", "email", "phone"} {
		if v, ok := shared[k]; ok {
			trainerShared[k] = v
		}
	}

	if err := r.members.ApplyByUser(ctx, userID, copyFields(shared)); err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("identity sync to member failed")
	}
	if len(trainerShared) > 0 {
		if err := r.trainers.ApplyByUser(ctx, userID, copyFields(trainerShared), false); err != nil {
			logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("identity sync to trainer failed")
		}
	}
	if err := r.employees.ApplyByUser(ctx, userID, copyFields(shared)); err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("identity sync to staff failed")
	}
	return nil
}

// TrainerPatch is the set of trainer-shaped fields shared between the
// Trainer profile and a trainer's staff record.
type TrainerPatch struct {
	Name           string
	Email          string
	Phone          string
	Specialization string
	Bio            string
	Experience     string
}

func (p TrainerPatch) fields() bson.M {
	out := bson.M{}
	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.Email != "" {
		out["email"] = NormalizeEmail(p.Email)
	}
	if p.Phone != "" {
		out["phone"] = p.Phone
	}
	if p.Specialization != "" {
		out["specialization"] = p.Specialization
	}
	if p.Bio != "" {
		out["bio"] = p.Bio
	}
	if p.Experience != "" {
		out["experience"] = p.Experience
	}
	return out
}

func (p TrainerPatch) identity() IdentityPatch {
	return IdentityPatch{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

// SyncFromTrainer applies a trainer-origin change to the Trainer profile and
// pushes the shared fields to the identity and the staff record.
func (r *Reconciler) SyncFromTrainer(ctx context.Context, trainerID primitive.ObjectID, patch TrainerPatch) (*models.Trainer, error) {
	trainer, err := r.trainers.FindByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, response.NewNotFound("trainer not found")
	}
	fields := patch.fields()
	if len(fields) == 0 {
		return trainer, nil
	}
	if err := r.trainers.UpdateFields(ctx, trainerID, copyFields(fields)); err != nil {
		return nil, conflictOr(err, "email already in use")
	}

	if idFields := patch.identity().fields(); len(idFields) > 0 {
		if err := r.users.UpdateFields(ctx, trainer.User, idFields); err != nil {
			logger.Error().Err(err).Str("trainer_id", trainerID.Hex()).Msg("trainer sync to identity failed")
		}
	}
	if err := r.employees.ApplyByUser(ctx, trainer.User, copyFields(fields)); err != nil {
		logger.Error().Err(err).Str("trainer_id", trainerID.Hex()).Msg("trainer sync to staff failed")
	}

	return r.trainers.FindByID(ctx, trainerID)
}

// SyncFromStaff applies a staff-origin change to the Employee record and,
// when the staff member is a trainer with a linked identity, pushes the
// shared fields to the identity and upserts the Trainer profile so it can
// never drift behind the staff record.
func (r *Reconciler) SyncFromStaff(ctx context.Context, employeeID primitive.ObjectID, fields bson.M, patch TrainerPatch) (*models.Employee, error) {
	emp, err := r.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, response.NewNotFound("staff record not found")
	}
	if len(fields) == 0 {
		return emp, nil
	}
	if err := r.employees.UpdateFields(ctx, employeeID, copyFields(fields)); err != nil {
		return nil, conflictOr(err, "email already in use")
	}

	if emp.User != nil {
		if idFields := patch.identity().fields(); len(idFields) > 0 {
			if err := r.users.UpdateFields(ctx, *emp.User, idFields); err != nil {
				logger.Error().Err(err).Str("employee_id", employeeID.Hex()).Msg("staff sync to identity failed")
			}
		}
		if emp.Role == models.EmployeeRoleTrainer {
			if tFields := patch.fields(); len(tFields) > 0 {
				if err := r.trainers.ApplyByUser(ctx, *emp.User, tFields, true); err != nil {
					logger.Error().Err(err).Str("employee_id", employeeID.Hex()).Msg("staff sync to trainer failed")
				}
			}
		}
	}

	return r.employees.FindByID(ctx, employeeID)
}

// CascadeDelete removes an identity and every projection referencing it.
// Projection deletes that fail are logged and skipped; the identity delete
// always runs so no login survives the cascade.
func (r *Reconciler) CascadeDelete(ctx context.Context, userID primitive.ObjectID) error {
	if err := r.members.DeleteByUser(ctx, userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("cascade: member delete failed")
	}
	if err := r.trainers.DeleteByUser(ctx, userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("cascade: trainer delete failed")
	}
	if err := r.employees.DeleteByUser(ctx, userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("cascade: staff delete failed")
	}
	return r.users.Delete(ctx, userID)
}

// NextStaffCode derives the next sequential staff code (EMP-001, EMP-002,
// ...) from the highest code currently stored. Two concurrent creates can
// derive the same code; the unique index on employeeId turns the loser into
// a conflict error rather than a silent duplicate.
func (r *Reconciler) NextStaffCode(ctx context.Context) (string, error) {
	last, err := r.employees.LastEmployeeCode(ctx)
	if err != nil {
		return "", err
	}
	n := 0
	if last != "" {
		raw := strings.TrimPrefix(last, models.EmployeeCodePrefix+"-")
		if parsed, perr := strconv.Atoi(raw); perr == nil {
			n = parsed
		}
	}
	return fmt.Sprintf("%s-%03d", models.EmployeeCodePrefix, n+1), nil
}

// conflictOr maps duplicate-key errors onto a 409 with msg; anything else
// passes through unchanged.
func conflictOr(err error, msg string) error {
	if errors.Is(err, models.ErrDuplicateKey) {
		return response.NewConflict(msg)
	}
	return err
}

// copyFields shallow-copies an update document so store implementations that
// mutate it (adding updatedAt) do not contaminate reuse across collections.
func copyFields(fields bson.M) bson.M {
	out := make(bson.M, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
