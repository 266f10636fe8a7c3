package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"attendance-monitor/internal/shared"
)

var (
	// ErrRoomConflict means another class already occupies the room during
	// an overlapping time on the same day.
	ErrRoomConflict = errors.New("room is already booked for an overlapping time slot")

	// ErrInvalidSlot means the submitted day or time range fails validation.
	ErrInvalidSlot = errors.New("invalid schedule slot")

	// ErrScheduleNotFound means the schedule id does not exist or belongs
	// to another professor.
	ErrScheduleNotFound = errors.New("schedule not found")
)

// AddInput carries a new weekly class slot. Start and End are wall-clock
// times ("3:04 PM" or "15:04" forms).
type AddInput struct {
	Day        string `json:"day" validate:"required"`
	Start      string `json:"start_time" validate:"required"`
	End        string `json:"end_time" validate:"required"`
	Section    string `json:"section" validate:"required"`
	RoomNumber string `json:"room_number" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
}

// Service implements weekly schedule management over MongoDB.
type Service struct {
	schedules *mongo.Collection
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a schedule Service.
func NewService(cols *shared.Collections, logger *zap.Logger) *Service {
	return &Service{
		schedules: cols.Schedules,
		logger:    logger.Named("schedule"),
		now:       time.Now,
	}
}

// ListByDay returns the professor's slots for one weekday, earliest first.
// An unrecognized day name falls back to Monday.
func (s *Service) ListByDay(ctx context.Context, professorUsername, day string) ([]shared.ClassSchedule, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	day = shared.CanonicalDay(day)
	cursor, err := s.schedules.Find(queryCtx, bson.M{
		"professorUsername": professorUsername,
		"day":               day,
	})
	if err != nil {
		return nil, fmt.Errorf("loading schedules: %w", err)
	}
	var schedules []shared.ClassSchedule
	if err := cursor.All(queryCtx, &schedules); err != nil {
		return nil, fmt.Errorf("decoding schedules: %w", err)
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		si, _, errI := parseInterval(schedules[i].Time)
		sj, _, errJ := parseInterval(schedules[j].Time)
		if errI != nil || errJ != nil {
			return errJ != nil && errI == nil
		}
		return si < sj
	})

	return schedules, nil
}

// Add validates a slot, checks the room for same-day overlaps across all
// professors, and inserts it. Stored Time is normalized to the 12-hour
// "07:00 AM - 08:00 AM" form.
func (s *Service) Add(ctx context.Context, professorUsername string, in AddInput) (*shared.ClassSchedule, error) {
	if !shared.IsValidDay(in.Day) {
		return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidSlot, in.Day)
	}
	startMin, err := parseClock(in.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	endMin, err := parseClock(in.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("%w: start time must precede end time", ErrInvalidSlot)
	}

	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	day := shared.CanonicalDay(in.Day)

	// Room overlap guard spans every professor's bookings for the room.
	cursor, err := s.schedules.Find(queryCtx, bson.M{"day": day, "roomNumber": in.RoomNumber})
	if err != nil {
		return nil, fmt.Errorf("checking room availability: %w", err)
	}
	var existing []shared.ClassSchedule
	if err := cursor.All(queryCtx, &existing); err != nil {
		return nil, fmt.Errorf("decoding room bookings: %w", err)
	}
	for i := range existing {
		existStart, existEnd, err := parseInterval(existing[i].Time)
		if err != nil {
			// Malformed stored ranges cannot be compared; skip them.
			s.logger.Warn("skipping malformed stored time range",
				zap.String("schedule_id", existing[i].ID.Hex()),
				zap.String("time", existing[i].Time))
			continue
		}
		if overlaps(startMin, endMin, existStart, existEnd) {
			return nil, ErrRoomConflict
		}
	}

	schedule := shared.ClassSchedule{
		Day:               day,
		Time:              formatInterval(startMin, endMin),
		Section:           in.Section,
		RoomNumber:        in.RoomNumber,
		Subject:           in.Subject,
		ProfessorUsername: professorUsername,
		CreatedAt:         s.now().UTC(),
	}
	result, err := s.schedules.InsertOne(queryCtx, schedule)
	if err != nil {
		return nil, fmt.Errorf("inserting schedule: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		schedule.ID = oid
	}

	s.logger.Info("schedule added",
		zap.String("professor", professorUsername),
		zap.String("day", schedule.Day),
		zap.String("time", schedule.Time),
		zap.String("room", schedule.RoomNumber))

	return &schedule, nil
}

// Delete removes one of the professor's own slots.
func (s *Service) Delete(ctx context.Context, professorUsername, scheduleID string) error {
	id, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return fmt.Errorf("%w: malformed id", ErrScheduleNotFound)
	}

	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.schedules.DeleteOne(queryCtx, bson.M{
		"_id":               id,
		"professorUsername": professorUsername,
	})
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// Sections lists the distinct sections the professor teaches, sorted.
func (s *Service) Sections(ctx context.Context, professorUsername string) ([]string, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, err := s.schedules.Distinct(queryCtx, "section", bson.M{"professorUsername": professorUsername})
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	sections := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			sections = append(sections, str)
		}
	}
	sort.Strings(sections)
	return sections, nil
}
