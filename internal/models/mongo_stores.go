package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateKey is returned when an insert or update violates a unique
// index, most commonly a duplicate email.
var ErrDuplicateKey = errors.New("duplicate key")

// wrapDup translates driver duplicate-key errors into ErrDuplicateKey so
// callers can branch without importing the driver.
func wrapDup(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

// findOne runs the common FindOne pattern: absent documents are reported
// as (nil, nil), not as errors, because callers treat absence as a normal
// out-of-sync condition.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func byCreatedDesc() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// --- Identity store ---

type MongoIdentityStore struct {
	coll *mongo.Collection
}

func NewIdentityStore(db *mongo.Database) *MongoIdentityStore {
	return &MongoIdentityStore{coll: db.Collection(CollUsers)}
}

func (s *MongoIdentityStore) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return findOne[User](ctx, s.coll, bson.M{"_id": id})
}

func (s *MongoIdentityStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return findOne[User](ctx, s.coll, bson.M{"email": email})
}

func (s *MongoIdentityStore) ListByRole(ctx context.Context, role string) ([]User, error) {
	return findAll[User](ctx, s.coll, bson.M{"role": role})
}

func (s *MongoIdentityStore) Insert(ctx context.Context, u *User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, u)
	return wrapDup(err)
}

func (s *MongoIdentityStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return wrapDup(err)
}

func (s *MongoIdentityStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// --- Member store ---

type MongoMemberStore struct {
	coll *mongo.Collection
}

func NewMemberStore(db *mongo.Database) *MongoMemberStore {
	return &MongoMemberStore{coll: db.Collection(CollMembers)}
}

func (s *MongoMemberStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Member, error) {
	return findOne[Member](ctx, s.coll, bson.M{"_id": id})
}

func (s *MongoMemberStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Member, error) {
	return findOne[Member](ctx, s.coll, bson.M{"user": userID})
}

func (s *MongoMemberStore) FindByEmail(ctx context.Context, email string) (*Member, error) {
	return findOne[Member](ctx, s.coll, bson.M{"email": email})
}

func (s *MongoMemberStore) List(ctx context.Context) ([]Member, error) {
	return findAll[Member](ctx, s.coll, bson.M{}, byCreatedDesc())
}

func (s *MongoMemberStore) Insert(ctx context.Context, m *Member) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, m)
	return wrapDup(err)
}

// EnsureForUser atomically upserts the member profile keyed by its identity
// reference. The seed document is only applied on insert, so concurrent
// callers cannot create two profiles or clobber an existing one.
func (s *MongoMemberStore) EnsureForUser(ctx context.Context, userID primitive.ObjectID, seed *Member) (*Member, error) {
	now := time.Now()
	seed.User = &userID
	seed.CreatedAt = now
	seed.UpdatedAt = now
	if seed.ID.IsZero() {
		seed.ID = primitive.NewObjectID()
	}

	var healed Member
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{"$setOnInsert": seed},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&healed)
	if err != nil {
		// Two racing upserts can both take the insert path; the loser hits
		// the unique user index and must read the winner's document.
		if err = wrapDup(err); errors.Is(err, ErrDuplicateKey) {
			return s.FindByUser(ctx, userID)
		}
		return nil, err
	}
	return &healed, nil
}

func (s *MongoMemberStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return wrapDup(err)
}

func (s *MongoMemberStore) ApplyByUser(ctx context.Context, userID primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.coll.UpdateOne(ctx, bson.M{"user": userID}, bson.M{"$set": fields})
	return wrapDup(err)
}

func (s *MongoMemberStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoMemberStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

// --- Trainer store ---

type MongoTrainerStore struct {
	coll *mongo.Collection
}

func NewTrainerStore(db *mongo.Database) *MongoTrainerStore {
	return &MongoTrainerStore{coll: db.Collection(CollTrainers)}
}

func (s *MongoTrainerStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Trainer, error) {
	return findOne[Trainer](ctx, s.coll, bson.M{"_id": id})
}

func (s *MongoTrainerStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Trainer, error) {
	return findOne[Trainer](ctx, s.coll, bson.M{"user": userID})
}

func (s *MongoTrainerStore) FindByEmail(ctx context.Context, email string) (*Trainer, error) {
	return findOne[Trainer](ctx, s.coll, bson.M{"email": email})
}

func (s *MongoTrainerStore) List(ctx context.Context) ([]Trainer, error) {
	return findAll[Trainer](ctx, s.coll, bson.M{}, byCreatedDesc())
}

func (s *MongoTrainerStore) Insert(ctx context.Context, t *Trainer) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, t)
	return wrapDup(err)
}

// EnsureForUser atomically upserts the trainer profile keyed by its identity
// reference. Safe to call concurrently; the unique sparse index on `user`
// backs the upsert.
func (s *MongoTrainerStore) EnsureForUser(ctx context.Context, userID primitive.ObjectID, seed *Trainer) (*Trainer, error) {
	now := time.Now()
	seed.User = userID
	seed.CreatedAt = now
	seed.UpdatedAt = now
	if seed.ID.IsZero() {
		seed.ID = primitive.NewObjectID()
	}

	var healed Trainer
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{"$setOnInsert": seed},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&healed)
	if err != nil {
		if err = wrapDup(err); errors.Is(err, ErrDuplicateKey) {
			return s.FindByUser(ctx, userID)
		}
		return nil, err
	}
	return &healed, nil
}

// ApplyByUser sets fields on the trainer profile for userID. With upsert the
// profile is created if missing; used when a staff-side write must win.
func (s *MongoTrainerStore) ApplyByUser(ctx context.Context, userID primitive.ObjectID, fields bson.M, upsert bool) error {
	now := time.Now()
	fields["updatedAt"] = now
	update := bson.M{"$set": fields}
	if upsert {
		update["$setOnInsert"] = bson.M{"user": userID, "createdAt": now}
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"user": userID}, update, options.Update().SetUpsert(upsert))
	return wrapDup(err)
}

func (s *MongoTrainerStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return wrapDup(err)
}

func (s *MongoTrainerStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoTrainerStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

// --- Employee store ---

type MongoEmployeeStore struct {
	coll *mongo.Collection
}

func NewEmployeeStore(db *mongo.Database) *MongoEmployeeStore {
	return &MongoEmployeeStore{coll: db.Collection(CollEmployees)}
}

func (s *MongoEmployeeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error) {
	return findOne[Employee](ctx, s.coll, bson.M{"_id": id})
}

func (s *MongoEmployeeStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Employee, error) {
	return findOne[Employee](ctx, s.coll, bson.M{"user": userID})
}

func (s *MongoEmployeeStore) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return findOne[Employee](ctx, s.coll, bson.M{"email": email})
}

func (s *MongoEmployeeStore) List(ctx context.Context) ([]Employee, error) {
	return findAll[Employee](ctx, s.coll, bson.M{}, byCreatedDesc())
}

func (s *MongoEmployeeStore) Insert(ctx context.Context, e *Employee) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, e)
	return wrapDup(err)
}

// EnsureForEmail atomically upserts a staff record keyed by email; the seed
// is only applied on insert.
func (s *MongoEmployeeStore) EnsureForEmail(ctx context.Context, email string, seed *Employee) (*Employee, error) {
	now := time.Now()
	seed.Email = email
	seed.CreatedAt = now
	seed.UpdatedAt = now
	if seed.ID.IsZero() {
		seed.ID = primitive.NewObjectID()
	}

	var healed Employee
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": seed},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&healed)
	if err != nil {
		if err = wrapDup(err); errors.Is(err, ErrDuplicateKey) {
			return s.FindByEmail(ctx, email)
		}
		return nil, err
	}
	return &healed, nil
}

func (s *MongoEmployeeStore) ApplyByUser(ctx context.Context, userID primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.coll.UpdateOne(ctx, bson.M{"user": userID}, bson.M{"$set": fields})
	return wrapDup(err)
}

func (s *MongoEmployeeStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return wrapDup(err)
}

func (s *MongoEmployeeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoEmployeeStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

// LastEmployeeCode returns the highest employeeId currently stored, or ""
// when the collection is empty. Codes are zero-padded so lexicographic order
// matches numeric order.
func (s *MongoEmployeeStore) LastEmployeeCode(ctx context.Context) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "employeeId", Value: -1}})
	var last Employee
	err := s.coll.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return last.EmployeeID, nil
}
