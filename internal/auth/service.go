// ============================================================================
// internal/auth/service.go
// Authentication: professor and student login, JWT issuance, password reset
// ============================================================================

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"attendance-monitor/internal/mailer"
	"attendance-monitor/internal/shared"
)

var (
	// ErrInvalidCredentials covers every failed login path so responses
	// never reveal which part of the credentials was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken means a professor registration reused a username.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidResetToken means the reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("password reset link is invalid or has expired")
)

// Claims is the JWT payload for both account roles. Section is set for
// students only.
type Claims struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name"`
	Section  string `json:"section,omitempty"`
	jwt.RegisteredClaims
}

// LoginResult is the token plus the claims baked into it, returned to the
// client so it can render the session without decoding the JWT.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Section  string `json:"section,omitempty"`
}

// RegisterInput carries a new professor account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

// Service implements authentication over MongoDB.
type Service struct {
	professors *mongo.Collection
	students   *mongo.Collection
	mail       mailer.Sender
	security   shared.SecurityConfig
	baseURL    string
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates an auth Service.
func NewService(cols *shared.Collections, mail mailer.Sender, security shared.SecurityConfig, baseURL string, logger *zap.Logger) *Service {
	return &Service{
		professors: cols.Professors,
		students:   cols.Students,
		mail:       mail,
		security:   security,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("auth"),
		now:        time.Now,
	}
}

// issueToken signs a JWT for the given identity.
func (s *Service) issueToken(userID, role, username, name, section string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   userID,
		Role:     role,
		Username: username,
		Name:     name,
		Section:  section,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.security.JWTExpirationHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.security.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a JWT and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.security.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// LoginProfessor verifies a username/password pair and issues a token.
func (s *Service) LoginProfessor(ctx context.Context, username, password string) (*LoginResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var professor shared.Professor
	err := s.professors.FindOne(queryCtx, bson.M{"username": username}).Decode(&professor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up professor: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(professor.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.professors.UpdateOne(queryCtx,
		bson.M{"_id": professor.ID},
		bson.M{"$set": bson.M{"lastLogin": s.now().UTC()}}); err != nil {
		s.logger.Warn("failed to record last login", zap.String("username", username), zap.Error(err))
	}

	token, err := s.issueToken(professor.ID.Hex(), shared.RoleProfessor, professor.Username, professor.Name, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("professor logged in", zap.String("username", username))
	return &LoginResult{
		Token:    token,
		UserID:   professor.ID.Hex(),
		Role:     shared.RoleProfessor,
		Name:     professor.Name,
		Username: professor.Username,
	}, nil
}

// LoginStudent verifies a surname/student-number pair against the roster.
// Surname matching is case-insensitive and exact.
func (s *Service) LoginStudent(ctx context.Context, surname, studentNumber string) (*LoginResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	surname = strings.TrimSpace(surname)
	studentNumber = strings.TrimSpace(studentNumber)
	if surname == "" || studentNumber == "" {
		return nil, ErrInvalidCredentials
	}

	var student shared.Student
	err := s.students.FindOne(queryCtx, bson.M{
		"studentNumber": studentNumber,
		"lastName": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(surname) + "$",
			Options: "i",
		},
	}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up student: %w", err)
	}

	token, err := s.issueToken(student.ID.Hex(), shared.RoleStudent, "", student.DisplayName(), student.Section)
	if err != nil {
		return nil, err
	}

	s.logger.Info("student logged in", zap.String("student_number", studentNumber))
	return &LoginResult{
		Token:   token,
		UserID:  student.ID.Hex(),
		Role:    shared.RoleStudent,
		Name:    student.DisplayName(),
		Section: student.Section,
	}, nil
}

// RegisterProfessor creates a professor account with a bcrypt-hashed
// password.
func (s *Service) RegisterProfessor(ctx context.Context, in RegisterInput) (*shared.Professor, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := s.professors.CountDocuments(queryCtx, bson.M{"username": in.Username})
	if err != nil {
		return nil, fmt.Errorf("checking username availability: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.security.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	professor := shared.Professor{
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        strings.ToLower(in.Email),
		Role:         shared.RoleProfessor,
		CreatedAt:    s.now().UTC(),
	}
	result, err := s.professors.InsertOne(queryCtx, professor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("inserting professor: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		professor.ID = oid
	}

	s.logger.Info("professor registered", zap.String("username", professor.Username))
	return &professor, nil
}

// newResetToken generates an unguessable single-use token.
func (s *Service) newResetToken() string {
	return fmt.Sprintf("%s%d", strings.ReplaceAll(uuid.NewString(), "-", ""), s.now().UnixNano())
}

// ForgotPassword stores a one-hour reset token against the account and
// emails the reset link. Unknown emails return nil so the endpoint never
// discloses whether an account exists; a delivery failure is reported.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))

	var professor shared.Professor
	err := s.professors.FindOne(queryCtx, bson.M{"email": email}).Decode(&professor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("looking up account: %w", err)
	}

	token := s.newResetToken()
	expiry := s.now().UTC().Add(s.security.ResetTokenTTL)
	_, err = s.professors.UpdateOne(queryCtx,
		bson.M{"_id": professor.ID},
		bson.M{"$set": bson.M{
			"passwordResetToken":       token,
			"passwordResetTokenExpiry": expiry,
		}})
	if err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, url.QueryEscape(token))
	if err := s.mail.SendPasswordReset(ctx, professor.Email, resetURL); err != nil {
		return fmt.Errorf("delivering reset email: %w", err)
	}

	s.logger.Info("password reset email queued", zap.String("username", professor.Username))
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// The token must belong to the account owning the given email.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if token == "" {
		return ErrInvalidResetToken
	}

	filter := bson.M{"passwordResetToken": token}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		filter["email"] = email
	}

	var professor shared.Professor
	err := s.professors.FindOne(queryCtx, filter).Decode(&professor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("looking up reset token: %w", err)
	}

	if professor.PasswordResetTokenExpiry == nil || s.now().UTC().After(*professor.PasswordResetTokenExpiry) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.security.BCryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	_, err = s.professors.UpdateOne(queryCtx,
		bson.M{"_id": professor.ID},
		bson.M{
			"$set":   bson.M{"passwordHash": string(hash)},
			"$unset": bson.M{"passwordResetToken": "", "passwordResetTokenExpiry": ""},
		})
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	s.logger.Info("password reset completed", zap.String("username", professor.Username))
	return nil
}
