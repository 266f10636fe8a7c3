// ============================================================================
// internal/shared/models.go
// MongoDB document models shared across services
// ============================================================================

package shared

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ============================================================================
// Account Models
// ============================================================================

// Professor represents a professor account
type Professor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose in JSON
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	LastLogin    time.Time          `bson:"lastLogin,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`

	// Password reset flow
	PasswordResetToken       string     `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetTokenExpiry *time.Time `bson:"passwordResetTokenExpiry,omitempty" json:"-"`
}

// Student represents a student on a section roster. Students authenticate
// with their surname and student number; they carry no password.
type Student struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentNumber string             `bson:"studentNumber" json:"student_number"`
	FirstName     string             `bson:"firstName" json:"first_name"`
	MiddleName    string             `bson:"middleName" json:"middle_name,omitempty"`
	LastName      string             `bson:"lastName" json:"last_name"`
	Section       string             `bson:"section" json:"section"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}

// DisplayName returns "First Middle Last" with empty parts collapsed.
func (s *Student) DisplayName() string {
	parts := []string{s.FirstName, s.MiddleName, s.LastName}
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// ============================================================================
// Schedule Models
// ============================================================================

// ClassSchedule represents one weekly class slot owned by a professor.
// Time is stored as a display interval, e.g. "07:00 AM - 08:00 AM".
type ClassSchedule struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Day               string             `bson:"day" json:"day"`
	Time              string             `bson:"time" json:"time"`
	Section           string             `bson:"section" json:"section"`
	RoomNumber        string             `bson:"roomNumber" json:"room_number"`
	Subject           string             `bson:"subject" json:"subject"`
	ProfessorUsername string             `bson:"professorUsername" json:"professor_username"`
	CreatedAt         time.Time          `bson:"createdAt" json:"created_at"`
}

// ============================================================================
// Attendance Models
// ============================================================================

// AttendanceRecord is one student's status for one class day. At most one
// record exists per (student, section, subject, semester, day); bulk save
// enforces this by delete-then-reinsert, quick marking by upsert.
type AttendanceRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"studentId" json:"student_id"`
	Section   string             `bson:"section" json:"section"`
	Subject   string             `bson:"subject" json:"subject"`
	Semester  string             `bson:"semester" json:"semester"`
	Date      time.Time          `bson:"date" json:"date"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// Setting is a flat key/value settings document. The current-semester code
// is cached under SettingCurrentSemester; Override marks a value that was
// set explicitly and must not be recomputed from the clock.
type Setting struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key      string             `bson:"key" json:"key"`
	Value    string             `bson:"value" json:"value"`
	Override bool               `bson:"override,omitempty" json:"override,omitempty"`
}

// ============================================================================
// Validation Constants
// ============================================================================

const (
	// Attendance statuses
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"

	// Account roles
	RoleProfessor = "Professor"
	RoleStudent   = "Student"

	// Settings keys
	SettingCurrentSemester = "currentSemester"
)

// ValidDays are the schedulable weekdays, Monday first.
var ValidDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// IsValidDay checks a day name against ValidDays, ignoring case.
func IsValidDay(day string) bool {
	for _, d := range ValidDays {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

// CanonicalDay returns the properly-cased day name, defaulting to Monday
// for anything unrecognized.
func CanonicalDay(day string) string {
	for _, d := range ValidDays {
		if strings.EqualFold(d, day) {
			return d
		}
	}
	return ValidDays[0]
}

// IsValidStatus checks an attendance status. The empty string is a valid
// "no record" marker on input forms.
func IsValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, "":
		return true
	}
	return false
}
