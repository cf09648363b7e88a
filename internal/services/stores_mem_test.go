package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Senthuron/Gym-Backend/internal/models"
)

// In-memory store implementations used by the reconciler tests. They mirror
// the Mongo stores' contract: absent documents come back as (nil, nil),
// unique email violations as models.ErrDuplicateKey, and the Ensure methods
// behave like $setOnInsert upserts. Each store has per-method error hooks so
// tests can force individual saga steps to fail.

func dup(what string) error {
	return fmt.Errorf("%w: %s", models.ErrDuplicateKey, what)
}

type memUsers struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]models.User
	insertErr error
	deleteErr error
	deleted   []primitive.ObjectID
}

func newMemUsers() *memUsers {
	return &memUsers{docs: map[primitive.ObjectID]models.User{}}
}

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.docs[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.docs {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memUsers) ListByRole(_ context.Context, role string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.docs {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memUsers) Insert(_ context.Context, u *models.User) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.Email == u.Email {
			return dup("users email")
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.docs[u.ID] = *u
	return nil
}

func (s *memUsers) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.docs[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "gender":
			u.Gender = v.(string)
		case "password":
			u.Password = v.(string)
		}
	}
	u.UpdatedAt = time.Now()
	s.docs[id] = u
	return nil
}

func (s *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type memMembers struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]models.Member
	insertErr error
}

func newMemMembers() *memMembers {
	return &memMembers{docs: map[primitive.ObjectID]models.Member{}}
}

func (s *memMembers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.docs[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *memMembers) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByUserLocked(userID), nil
}

func (s *memMembers) findByUserLocked(userID primitive.ObjectID) *models.Member {
	for _, m := range s.docs {
		if m.User != nil && *m.User == userID {
			m := m
			return &m
		}
	}
	return nil
}

func (s *memMembers) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.docs {
		if m.Email == email {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memMembers) List(_ context.Context) ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Member, 0, len(s.docs))
	for _, m := range s.docs {
		out = append(out, m)
	}
	return out, nil
}

func (s *memMembers) Insert(_ context.Context, m *models.Member) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.Email == m.Email {
			return dup("members email")
		}
	}
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.docs[m.ID] = *m
	return nil
}

func (s *memMembers) EnsureForUser(_ context.Context, userID primitive.ObjectID, seed *models.Member) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.findByUserLocked(userID); existing != nil {
		return existing, nil
	}
	seed.User = &userID
	if seed.ID.IsZero() {
		seed.ID = primitive.NewObjectID()
	}
	now := time.Now()
	seed.CreatedAt = now
	seed.UpdatedAt = now
	s.docs[seed.ID] = *seed
	healed := *seed
	return &healed, nil
}

func (s *memMembers) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.docs[id]
	if !ok {
		return nil
	}
	applyMemberFields(&m, fields)
	s.docs[id] = m
	return nil
}

func (s *memMembers) ApplyByUser(_ context.Context, userID primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.findByUserLocked(userID); m != nil {
		stored := s.docs[m.ID]
		applyMemberFields(&stored, fields)
		s.docs[m.ID] = stored
	}
	return nil
}

func applyMemberFields(m *models.Member, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "name":
			m.Name = v.(string)
		case "email":
			m.Email = v.(string)
		case "phone":
			m.Phone = v.(string)
		case "gender":
			m.Gender = v.(string)
		case "status":
			m.Status = v.(string)
		}
	}
	m.UpdatedAt = time.Now()
}

func (s *memMembers) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *memMembers) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.findByUserLocked(userID); m != nil {
		delete(s.docs, m.ID)
	}
	return nil
}

type memTrainers struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]models.Trainer
	insertErr error
}

func newMemTrainers() *memTrainers {
	return &memTrainers{docs: map[primitive.ObjectID]models.Trainer{}}
}

func (s *memTrainers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.docs[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *memTrainers) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByUserLocked(userID), nil
}

func (s *memTrainers) findByUserLocked(userID primitive.ObjectID) *models.Trainer {
	for _, t := range s.docs {
		if t.User == userID {
			t := t
			return &t
		}
	}
	return nil
}

func (s *memTrainers) FindByEmail(_ context.Context, email string) (*models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.docs {
		if t.Email == email {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (s *memTrainers) List(_ context.Context) ([]models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Trainer, 0, len(s.docs))
	for _, t := range s.docs {
		out = append(out, t)
	}
	return out, nil
}

func (s *memTrainers) Insert(_ context.Context, t *models.Trainer) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.Email == t.Email {
			return dup("trainers email")
		}
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.docs[t.ID] = *t
	return nil
}

func (s *memTrainers) EnsureForUser(_ context.Context, userID primitive.ObjectID, seed *models.Trainer) (*models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.findByUserLocked(userID); existing != nil {
		return existing, nil
	}
	seed.User = userID
	if seed.ID.IsZero() {
		seed.ID = primitive.NewObjectID()
	}
	now := time.Now()
	seed.CreatedAt = now
	seed.UpdatedAt = now
	s.docs[seed.ID] = *seed
	healed := *seed
	return &healed, nil
}

func (s *memTrainers) ApplyByUser(_ context.Context, userID primitive.ObjectID, fields bson.M, upsert bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findByUserLocked(userID)
	if t == nil {
		if !upsert {
			return nil
		}
		created := models.Trainer{ID: primitive.NewObjectID(), User: userID, CreatedAt: time.Now()}
		applyTrainerFields(&created, fields)
		s.docs[created.ID] = created
		return nil
	}
	stored := s.docs[t.ID]
	applyTrainerFields(&stored, fields)
	s.docs[t.ID] = stored
	return nil
}

func applyTrainerFields(t *models.Trainer, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "name":
			t.Name = v.(string)
		case "email":
			t.Email = v.(string)
		case "phone":
			t.Phone = v.(string)
		case "specialization":
			t.Specialization = v.(string)
		case "bio":
			t.Bio = v.(string)
		case "experience":
			t.Experience = v.(string)
		}
	}
	t.UpdatedAt = time.Now()
}

func (s *memTrainers) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.docs[id]
	if !ok {
		return nil
	}
	applyTrainerFields(&t, fields)
	s.docs[id] = t
	return nil
}

func (s *memTrainers) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *memTrainers) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.findByUserLocked(userID); t != nil {
		delete(s.docs, t.ID)
	}
	return nil
}

type memEmployees struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]models.Employee
	insertErr error
}

func newMemEmployees() *memEmployees {
	return &memEmployees{docs: map[primitive.ObjectID]models.Employee{}}
}

func (s *memEmployees) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.docs[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *memEmployees) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByUserLocked(userID), nil
}

func (s *memEmployees) findByUserLocked(userID primitive.ObjectID) *models.Employee {
	for _, e := range s.docs {
		if e.User != nil && *e.User == userID {
			e := e
			return &e
		}
	}
	return nil
}

func (s *memEmployees) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByEmailLocked(email), nil
}

func (s *memEmployees) findByEmailLocked(email string) *models.Employee {
	for _, e := range s.docs {
		if e.Email == email {
			e := e
			return &e
		}
	}
	return nil
}

func (s *memEmployees) List(_ context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Employee, 0, len(s.docs))
	for _, e := range s.docs {
		out = append(out, e)
	}
	return out, nil
}

func (s *memEmployees) Insert(_ context.Context, e *models.Employee) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.Email == e.Email {
			return dup("employees email")
		}
		if existing.EmployeeID == e.EmployeeID {
			return dup("employees employeeId")
		}
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.docs[e.ID] = *e
	return nil
}

func (s *memEmployees) EnsureForEmail(_ context.Context, email string, seed *models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.findByEmailLocked(email); existing != nil {
		return existing, nil
	}
	seed.Email = email
	if seed.ID.IsZero() {
		seed.ID = primitive.NewObjectID()
	}
	now := time.Now()
	seed.CreatedAt = now
	seed.UpdatedAt = now
	s.docs[seed.ID] = *seed
	healed := *seed
	return &healed, nil
}

func (s *memEmployees) ApplyByUser(_ context.Context, userID primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.findByUserLocked(userID); e != nil {
		stored := s.docs[e.ID]
		applyEmployeeFields(&stored, fields)
		s.docs[e.ID] = stored
	}
	return nil
}

func applyEmployeeFields(e *models.Employee, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "name":
			e.Name = v.(string)
		case "email":
			e.Email = v.(string)
		case "phone":
			e.Phone = v.(string)
		case "gender":
			e.Gender = v.(string)
		case "status":
			e.Status = v.(string)
		case "specialization":
			e.Specialization = v.(string)
		case "bio":
			e.Bio = v.(string)
		case "experience":
			e.Experience = v.(string)
		case "user":
			id := v.(primitive.ObjectID)
			e.User = &id
		}
	}
	e.UpdatedAt = time.Now()
}

func (s *memEmployees) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return nil
	}
	applyEmployeeFields(&e, fields)
	s.docs[id] = e
	return nil
}

func (s *memEmployees) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *memEmployees) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.findByUserLocked(userID); e != nil {
		delete(s.docs, e.ID)
	}
	return nil
}

func (s *memEmployees) LastEmployeeCode(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := ""
	for _, e := range s.docs {
		if e.EmployeeID > last {
			last = e.EmployeeID
		}
	}
	return last, nil
}

// newTestReconciler wires a reconciler over fresh in-memory stores.
func newTestReconciler() (*Reconciler, *memUsers, *memMembers, *memTrainers, *memEmployees) {
	users := newMemUsers()
	members := newMemMembers()
	trainers := newMemTrainers()
	employees := newMemEmployees()
	return NewReconciler(users, members, trainers, employees), users, members, trainers, employees
}
