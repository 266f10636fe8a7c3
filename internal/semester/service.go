package semester

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"attendance-monitor/internal/shared"
)

// Service exposes the current semester code. The read path is pure: the
// code is recomputed from the clock on every call unless an explicit
// override was stored. Sync is the separate recompute-and-store operation,
// kept for consumers that read the settings collection directly.
type Service struct {
	settings *mongo.Collection
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a semester Service backed by the settings collection.
func NewService(cols *shared.Collections, logger *zap.Logger) *Service {
	return &Service{
		settings: cols.Settings,
		logger:   logger.Named("semester"),
		now:      time.Now,
	}
}

// Current returns the active semester code: the stored override when one
// was set explicitly, otherwise the code derived from today's date. A
// settings-store read failure degrades to the derived code.
func (s *Service) Current(ctx context.Context) string {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var setting shared.Setting
	err := s.settings.FindOne(queryCtx, bson.M{"key": shared.SettingCurrentSemester}).Decode(&setting)
	if err == nil && setting.Override && setting.Value != "" {
		return setting.Value
	}
	if err != nil && err != mongo.ErrNoDocuments {
		s.logger.Warn("reading current-semester setting", zap.Error(err))
	}

	return Resolve(s.now())
}

// SetCurrent stores an explicit semester override. Subsequent Current calls
// return it until ClearOverride is called.
func (s *Service) SetCurrent(ctx context.Context, code string) error {
	return s.upsert(ctx, code, true)
}

// ClearOverride removes an explicit override and re-stores the derived code.
func (s *Service) ClearOverride(ctx context.Context) error {
	return s.upsert(ctx, Resolve(s.now()), false)
}

// Sync recomputes the semester code from the clock and stores it, leaving
// any explicit override untouched. Called at startup.
func (s *Service) Sync(ctx context.Context) (string, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code := Resolve(s.now())

	var setting shared.Setting
	err := s.settings.FindOne(queryCtx, bson.M{"key": shared.SettingCurrentSemester}).Decode(&setting)
	if err == nil && setting.Override {
		return setting.Value, nil
	}
	if err != nil && err != mongo.ErrNoDocuments {
		return "", err
	}

	if err := s.upsert(ctx, code, false); err != nil {
		return "", err
	}
	return code, nil
}

func (s *Service) upsert(ctx context.Context, code string, override bool) error {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.settings.UpdateOne(queryCtx,
		bson.M{"key": shared.SettingCurrentSemester},
		bson.M{"$set": bson.M{"value": code, "override": override}},
		options.Update().SetUpsert(true),
	)
	return err
}
