package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// EmployeeAttendanceService records one attendance status per employee per
// day. The date is truncated to the start of day in UTC so a second mark on
// the same day overwrites the first.
type EmployeeAttendanceService struct {
	db *mongo.Database
}

func NewEmployeeAttendanceService(db *mongo.Database) *EmployeeAttendanceService {
	return &EmployeeAttendanceService{db: db}
}

func (s *EmployeeAttendanceService) coll() *mongo.Collection {
	return s.db.Collection(models.CollEmployeeAttendance)
}

// DayOf truncates t to the start of its UTC day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validEmployeeAttendanceStatus(status string) bool {
	switch status {
	case models.EmpAttPresent, models.EmpAttAbsent, models.EmpAttLeave, models.EmpAttHoliday:
		return true
	}
	return false
}

func (s *EmployeeAttendanceService) Mark(ctx context.Context, employeeID string, date time.Time, status, note string) (*models.EmployeeAttendance, error) {
	eid, err := parseObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	if !validEmployeeAttendanceStatus(status) {
		return nil, response.NewValidation("invalid attendance status: " + status)
	}
	if count, err := s.db.Collection(models.CollEmployees).CountDocuments(ctx, bson.M{"_id": eid}); err != nil {
		return nil, err
	} else if count == 0 {
		return nil, response.NewNotFound("staff record not found")
	}

	day := DayOf(date)
	now := time.Now()
	_, err = s.coll().UpdateOne(ctx,
		bson.M{"employee": eid, "date": day},
		bson.M{
			"$set":         bson.M{"status": status, "note": note, "updatedAt": now},
			"$setOnInsert": bson.M{"employee": eid, "date": day, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	var record models.EmployeeAttendance
	if err := s.coll().FindOne(ctx, bson.M{"employee": eid, "date": day}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// BulkMarkEntry is one employee's status in a whole-day roll call.
type BulkMarkEntry struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Status     string `json:"status" binding:"required"`
	Note       string `json:"note"`
}

// MarkBulk records one day's roll call. Entries are applied independently;
// the first failure aborts and earlier marks stand, which is safe because
// marking is an idempotent upsert and the admin simply resubmits.
func (s *EmployeeAttendanceService) MarkBulk(ctx context.Context, date time.Time, entries []BulkMarkEntry) ([]models.EmployeeAttendance, error) {
	if len(entries) == 0 {
		return nil, response.NewValidation("no attendance entries supplied")
	}
	records := make([]models.EmployeeAttendance, 0, len(entries))
	for _, e := range entries {
		record, err := s.Mark(ctx, e.EmployeeID, date, e.Status, e.Note)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// ListForEmployee returns an employee's records within [from, to], newest
// first. Zero bounds are open.
func (s *EmployeeAttendanceService) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.EmployeeAttendance, error) {
	eid, err := parseObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	query := bson.M{"employee": eid}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = DayOf(from)
	}
	if !to.IsZero() {
		dateRange["$lte"] = DayOf(to)
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	return s.list(ctx, query)
}

// ListForDay returns every staff record for one day.
func (s *EmployeeAttendanceService) ListForDay(ctx context.Context, date time.Time) ([]models.EmployeeAttendance, error) {
	return s.list(ctx, bson.M{"date": DayOf(date)})
}

func (s *EmployeeAttendanceService) list(ctx context.Context, query bson.M) ([]models.EmployeeAttendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var records []models.EmployeeAttendance
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MonthlySummary counts an employee's statuses for one calendar month.
func (s *EmployeeAttendanceService) MonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) (map[string]int, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	records, err := s.ListForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	summary := map[string]int{}
	for _, r := range records {
		summary[r.Status]++
	}
	return summary, nil
}
