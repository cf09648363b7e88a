package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// EmployeeService is the façade over staff records. Listing repairs missing
// staff records for every portal staff identity first, so the roster stays
// complete even after a partial write.
type EmployeeService struct {
	employees EmployeeStore
	users     IdentityStore
	rec       *Reconciler
}

func NewEmployeeService(employees EmployeeStore, users IdentityStore, rec *Reconciler) *EmployeeService {
	return &EmployeeService{employees: employees, users: users, rec: rec}
}

func (s *EmployeeService) CreateStaff(ctx context.Context, in CreateStaffInput) (*models.Employee, error) {
	return s.rec.CreateStaff(ctx, in)
}

func (s *EmployeeService) ListStaff(ctx context.Context) ([]models.Employee, error) {
	for _, role := range []string{models.RoleReception, models.RoleManager} {
		identities, err := s.users.ListByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		for i := range identities {
			if _, err := s.rec.EnsureStaffRecord(ctx, &identities[i], nil); err != nil {
				logger.Error().Err(err).Str("email", identities[i].Email).Msg("staff record repair failed")
			}
		}
	}
	return s.employees.List(ctx)
}

func (s *EmployeeService) GetStaff(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	e, err := s.employees.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, response.NewNotFound("staff record not found")
	}
	return e, nil
}

// UpdateStaffInput carries a partial staff update. The staff role itself is
// immutable; changing someone's role means recreating the record.
type UpdateStaffInput struct {
	Name           string
	Gender         string
	Phone          string
	JoiningDate    *time.Time
	SalaryType     string
	BaseSalary     *float64
	Status         string
	Specialization string
	Bio            string
	Experience     string
}

// UpdateStaff applies a staff-origin update. The reconciler pushes shared
// fields to the identity and, for trainer staff, upserts the Trainer profile.
func (s *EmployeeService) UpdateStaff(ctx context.Context, id string, in UpdateStaffInput) (*models.Employee, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Gender != "" {
		fields["gender"] = in.Gender
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.JoiningDate != nil {
		fields["joiningDate"] = *in.JoiningDate
	}
	if in.SalaryType != "" {
		fields["salaryType"] = in.SalaryType
	}
	if in.BaseSalary != nil {
		fields["baseSalary"] = *in.BaseSalary
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	if in.Specialization != "" {
		fields["specialization"] = in.Specialization
	}
	if in.Bio != "" {
		fields["bio"] = in.Bio
	}
	if in.Experience != "" {
		fields["experience"] = in.Experience
	}

	patch := TrainerPatch{
		Name:           in.Name,
		Phone:          in.Phone,
		Specialization: in.Specialization,
		Bio:            in.Bio,
		Experience:     in.Experience,
	}
	return s.rec.SyncFromStaff(ctx, oid, fields, patch)
}

// DeleteStaff removes a staff record. Records with a portal identity cascade
// through it; cleaners are deleted directly.
func (s *EmployeeService) DeleteStaff(ctx context.Context, id string) error {
	e, err := s.GetStaff(ctx, id)
	if err != nil {
		return err
	}
	if e.User != nil {
		return s.rec.CascadeDelete(ctx, *e.User)
	}
	return s.employees.Delete(ctx, e.ID)
}
