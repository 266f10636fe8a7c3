// ============================================================================
// internal/student/service.go
// Section roster management: single adds and bulk Excel import
// ============================================================================

package student

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"attendance-monitor/internal/importer"
	"attendance-monitor/internal/shared"
)

// AddInput carries one student for a section roster.
type AddInput struct {
	StudentNumber string `json:"student_number" validate:"required"`
	FirstName     string `json:"first_name" validate:"required"`
	MiddleName    string `json:"middle_name"`
	LastName      string `json:"last_name" validate:"required"`
	Section       string `json:"section" validate:"required"`
}

// Service manages section rosters over MongoDB.
type Service struct {
	students *mongo.Collection
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a roster Service.
func NewService(cols *shared.Collections, logger *zap.Logger) *Service {
	return &Service{
		students: cols.Students,
		logger:   logger.Named("student"),
		now:      time.Now,
	}
}

// Add upserts a student keyed by student number: an existing entry has its
// names and section updated in place, otherwise a new entry is inserted.
func (s *Service) Add(ctx context.Context, in AddInput) (*shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	in.StudentNumber = strings.TrimSpace(in.StudentNumber)

	filter := bson.M{"studentNumber": in.StudentNumber}
	update := bson.M{
		"$set": bson.M{
			"firstName":  strings.TrimSpace(in.FirstName),
			"middleName": strings.TrimSpace(in.MiddleName),
			"lastName":   strings.TrimSpace(in.LastName),
			"section":    strings.TrimSpace(in.Section),
		},
		"$setOnInsert": bson.M{
			"studentNumber": in.StudentNumber,
			"createdAt":     s.now().UTC(),
		},
	}
	if _, err := s.students.UpdateOne(queryCtx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("upserting student: %w", err)
	}

	var student shared.Student
	if err := s.students.FindOne(queryCtx, filter).Decode(&student); err != nil {
		return nil, fmt.Errorf("reloading student: %w", err)
	}

	s.logger.Info("student saved",
		zap.String("student_number", student.StudentNumber),
		zap.String("section", student.Section))
	return &student, nil
}

// ListBySection returns the section roster, surname first.
func (s *Service) ListBySection(ctx context.Context, section string) ([]shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.students.Find(queryCtx, bson.M{"section": section},
		options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	var students []shared.Student
	if err := cursor.All(queryCtx, &students); err != nil {
		return nil, fmt.Errorf("decoding roster: %w", err)
	}
	return students, nil
}

// ImportRoster registers parsed workbook rows into a section and returns
// the number of students written. Rows reuse the Add upsert semantics so a
// re-imported workbook refreshes rather than duplicates the roster.
func (s *Service) ImportRoster(ctx context.Context, section string, rows []importer.RosterRow) (int, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	imported := 0
	for _, row := range rows {
		_, err := s.Add(queryCtx, AddInput{
			StudentNumber: row.StudentNumber,
			FirstName:     row.FirstName,
			MiddleName:    row.MiddleName,
			LastName:      row.LastName,
			Section:       section,
		})
		if err != nil {
			return imported, fmt.Errorf("importing student %s: %w", row.StudentNumber, err)
		}
		imported++
	}

	s.logger.Info("roster imported",
		zap.String("section", section),
		zap.Int("students", imported))
	return imported, nil
}
