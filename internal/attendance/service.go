package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"attendance-monitor/internal/semester"
	"attendance-monitor/internal/shared"
)

var (
	// ErrSubjectRequired means no subject was given and none could be
	// inferred from the professor's schedule for the section.
	ErrSubjectRequired = errors.New("subject is required for attendance tracking")

	// ErrStudentNotFound means the student number does not exist in the
	// requested section.
	ErrStudentNotFound = errors.New("student number not found for this section")
)

// SheetEntry is one roster line on the attendance sheet for a day.
type SheetEntry struct {
	StudentID     string `json:"student_id"`
	StudentNumber string `json:"student_number"`
	Name          string `json:"name"`
	Status        string `json:"status"`
}

// Sheet is the attendance sheet for one section, subject and day.
type Sheet struct {
	Section  string       `json:"section"`
	Subject  string       `json:"subject"`
	Date     string       `json:"date"` // yyyy-mm-dd
	Semester string       `json:"semester"`
	Entries  []SheetEntry `json:"entries"`
}

// SaveEntry is one student's status submitted on a bulk save.
type SaveEntry struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
}

// Service implements attendance recording and retrieval over MongoDB.
type Service struct {
	students  *mongo.Collection
	schedules *mongo.Collection
	records   *mongo.Collection
	semesters *semester.Service
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewService creates an attendance Service. loc is the institution's local
// time zone, used to interpret submitted dates and stored timestamps.
func NewService(cols *shared.Collections, semesters *semester.Service, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		students:  cols.Students,
		schedules: cols.Schedules,
		records:   cols.Attendance,
		semesters: semesters,
		logger:    logger.Named("attendance"),
		loc:       loc,
		now:       time.Now,
	}
}

// resolveSubject falls back to the professor's first schedule row for the
// section when no subject was supplied.
func (s *Service) resolveSubject(ctx context.Context, professorUsername, section, subject string) (string, error) {
	if subject != "" {
		return subject, nil
	}

	filter := bson.M{"section": section}
	if professorUsername != "" {
		filter["professorUsername"] = professorUsername
	}

	var schedule shared.ClassSchedule
	err := s.schedules.FindOne(ctx, filter).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrSubjectRequired
		}
		return "", fmt.Errorf("looking up schedule for subject fallback: %w", err)
	}
	if schedule.Subject == "" {
		return "", ErrSubjectRequired
	}
	return schedule.Subject, nil
}

// resolveDate parses a yyyy-mm-dd date, defaulting to today on a missing
// or unparseable value. The returned time is local midnight of that day.
func (s *Service) resolveDate(date string) time.Time {
	if parsed, err := time.ParseInLocation("2006-01-02", date, s.loc); err == nil {
		return parsed
	}
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// dayRange bounds one calendar day as the half-open [midnight, midnight+24h).
func dayRange(day time.Time) bson.M {
	return bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
}

// GetSheet assembles the attendance sheet for a section and day. Subject
// and date are optional and resolve through their named fallbacks.
func (s *Service) GetSheet(ctx context.Context, professorUsername, section, subject, date string) (*Sheet, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	subject, err := s.resolveSubject(queryCtx, professorUsername, section, subject)
	if err != nil {
		return nil, err
	}
	day := s.resolveDate(date)
	semesterCode := s.semesters.Current(queryCtx)

	cursor, err := s.students.Find(queryCtx, bson.M{"section": section},
		options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("loading section roster: %w", err)
	}
	var students []shared.Student
	if err := cursor.All(queryCtx, &students); err != nil {
		return nil, fmt.Errorf("decoding section roster: %w", err)
	}

	recCursor, err := s.records.Find(queryCtx, bson.M{
		"section":  section,
		"subject":  subject,
		"semester": semesterCode,
		"date":     dayRange(day),
	})
	if err != nil {
		return nil, fmt.Errorf("loading attendance records: %w", err)
	}
	var records []shared.AttendanceRecord
	if err := recCursor.All(queryCtx, &records); err != nil {
		return nil, fmt.Errorf("decoding attendance records: %w", err)
	}

	statusByStudent := make(map[string]string, len(records))
	for _, rec := range records {
		statusByStudent[rec.StudentID.Hex()] = rec.Status
	}

	sheet := &Sheet{
		Section:  section,
		Subject:  subject,
		Date:     day.Format("2006-01-02"),
		Semester: semesterCode,
		Entries:  make([]SheetEntry, 0, len(students)),
	}
	for i := range students {
		st := &students[i]
		sheet.Entries = append(sheet.Entries, SheetEntry{
			StudentID:     st.ID.Hex(),
			StudentNumber: st.StudentNumber,
			Name:          st.DisplayName(),
			Status:        statusByStudent[st.ID.Hex()],
		})
	}

	return sheet, nil
}

// Save replaces the day's records for (section, subject, semester) with the
// submitted entries. A blank submitted status persists as Absent.
func (s *Service) Save(ctx context.Context, section, subject, date string, entries []SaveEntry) error {
	if subject == "" {
		return ErrSubjectRequired
	}

	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	day := s.resolveDate(date)
	semesterCode := s.semesters.Current(queryCtx)

	key := bson.M{
		"section":  section,
		"subject":  subject,
		"semester": semesterCode,
		"date":     dayRange(day),
	}
	if _, err := s.records.DeleteMany(queryCtx, key); err != nil {
		return fmt.Errorf("clearing existing records: %w", err)
	}

	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		studentID, err := primitive.ObjectIDFromHex(e.StudentID)
		if err != nil {
			s.logger.Warn("skipping entry with malformed student id", zap.String("student_id", e.StudentID))
			continue
		}
		status := e.Status
		if status == "" {
			status = shared.StatusAbsent
		}
		docs = append(docs, shared.AttendanceRecord{
			StudentID: studentID,
			Section:   section,
			Subject:   subject,
			Semester:  semesterCode,
			Date:      day,
			Status:    status,
			CreatedAt: s.now().UTC(),
		})
	}

	if len(docs) == 0 {
		return nil
	}
	if _, err := s.records.InsertMany(queryCtx, docs); err != nil {
		return fmt.Errorf("inserting attendance records: %w", err)
	}

	s.logger.Info("attendance saved",
		zap.String("section", section),
		zap.String("subject", subject),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("records", len(docs)))

	return nil
}

// MarkPresent looks up a student by section and student number and upserts
// the day's record with status Present. Used for quick roll-call marking.
func (s *Service) MarkPresent(ctx context.Context, professorUsername, section, studentNumber, subject, date string) (*shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	subject, err := s.resolveSubject(queryCtx, professorUsername, section, subject)
	if err != nil {
		return nil, err
	}
	day := s.resolveDate(date)
	semesterCode := s.semesters.Current(queryCtx)

	var student shared.Student
	err = s.students.FindOne(queryCtx, bson.M{"section": section, "studentNumber": studentNumber}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("looking up student: %w", err)
	}

	filter := bson.M{
		"studentId": student.ID,
		"section":   section,
		"subject":   subject,
		"semester":  semesterCode,
		"date":      day,
	}
	update := bson.M{
		"$set": bson.M{
			"studentId": student.ID,
			"section":   section,
			"subject":   subject,
			"semester":  semesterCode,
			"date":      day,
			"status":    shared.StatusPresent,
		},
		"$setOnInsert": bson.M{"createdAt": s.now().UTC()},
	}
	if _, err := s.records.UpdateOne(queryCtx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("upserting attendance record: %w", err)
	}

	return &student, nil
}

// WeekStrip is the student dashboard view: the 18-week status vector for
// one subject within the current semester.
type WeekStrip struct {
	Semester      string   `json:"semester"`
	SemesterLabel string   `json:"semester_label"`
	Subject       string   `json:"subject"`
	Subjects      []string `json:"subjects"`
	Weeks         []string `json:"weeks"`
}

// StudentWeeks builds the week-by-week status strip for a student. Records
// belonging to duplicate roster entries sharing the student's number are
// merged. A blank subject selects the first subject scheduled for the
// student's section.
func (s *Service) StudentWeeks(ctx context.Context, studentID, subject string) (*WeekStrip, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, fmt.Errorf("malformed student id: %w", err)
	}

	var student shared.Student
	if err := s.students.FindOne(queryCtx, bson.M{"_id": id}).Decode(&student); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("looking up student: %w", err)
	}

	subjects, err := s.sectionSubjects(queryCtx, student.Section)
	if err != nil {
		return nil, err
	}
	if subject == "" && len(subjects) > 0 {
		subject = subjects[0]
	}

	semesterCode := s.semesters.Current(queryCtx)
	strip := &WeekStrip{
		Semester:      semesterCode,
		SemesterLabel: semester.Label(semesterCode),
		Subject:       subject,
		Subjects:      subjects,
		Weeks:         BuildWeekVector(nil, time.Time{}, s.loc),
	}

	year, term, err := semester.Parse(semesterCode)
	if err != nil || subject == "" {
		// Malformed code or no scheduled subject: degrade to an empty strip.
		return strip, nil
	}
	start := semester.StartDate(year, term)

	// Duplicate roster entries may share one student number; fold their
	// records together.
	idCursor, err := s.students.Find(queryCtx, bson.M{"studentNumber": student.StudentNumber})
	if err != nil {
		return nil, fmt.Errorf("resolving sibling roster entries: %w", err)
	}
	var siblings []shared.Student
	if err := idCursor.All(queryCtx, &siblings); err != nil {
		return nil, fmt.Errorf("decoding sibling roster entries: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(siblings))
	for _, sib := range siblings {
		ids = append(ids, sib.ID)
	}

	recCursor, err := s.records.Find(queryCtx, bson.M{
		"studentId": bson.M{"$in": ids},
		"semester":  semesterCode,
		"subject":   subject,
	})
	if err != nil {
		return nil, fmt.Errorf("loading attendance records: %w", err)
	}
	var records []shared.AttendanceRecord
	if err := recCursor.All(queryCtx, &records); err != nil {
		return nil, fmt.Errorf("decoding attendance records: %w", err)
	}

	strip.Weeks = BuildWeekVector(records, start, s.loc)
	return strip, nil
}

// sectionSubjects lists the distinct subjects scheduled for a section.
func (s *Service) sectionSubjects(ctx context.Context, section string) ([]string, error) {
	raw, err := s.schedules.Distinct(ctx, "subject", bson.M{"section": section})
	if err != nil {
		return nil, fmt.Errorf("listing section subjects: %w", err)
	}
	subjects := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			subjects = append(subjects, str)
		}
	}
	return subjects, nil
}

// ForReport loads the roster and semester's records for a section, already
// aggregated into report rows.
func (s *Service) ForReport(ctx context.Context, section, semesterCode string) ([]SummaryRow, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.students.Find(queryCtx, bson.M{"section": section})
	if err != nil {
		return nil, fmt.Errorf("loading section roster: %w", err)
	}
	var students []shared.Student
	if err := cursor.All(queryCtx, &students); err != nil {
		return nil, fmt.Errorf("decoding section roster: %w", err)
	}

	recCursor, err := s.records.Find(queryCtx, bson.M{"section": section, "semester": semesterCode})
	if err != nil {
		return nil, fmt.Errorf("loading attendance records: %w", err)
	}
	var records []shared.AttendanceRecord
	if err := recCursor.All(queryCtx, &records); err != nil {
		return nil, fmt.Errorf("decoding attendance records: %w", err)
	}

	return Summarize(students, records), nil
}
