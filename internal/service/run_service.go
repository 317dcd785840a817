package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

type runRepository interface {
	Get(ctx context.Context) (*models.Run, error)
	Upsert(ctx context.Context, title string, deadline *time.Time) (*models.Run, error)
}

// RunService manages the singleton contest-run record.
type RunService struct {
	runs      runRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRunService constructs a RunService instance.
func NewRunService(runs runRepository, validate *validator.Validate, logger *zap.Logger) *RunService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunService{runs: runs, validator: validate, logger: logger}
}

// Run returns the current contest run, or nil when none is configured yet.
func (s *RunService) Run(ctx context.Context) (*models.Run, error) {
	run, err := s.runs.Get(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch run")
	}
	return run, nil
}

// SetRun upserts the contest run. Admin only.
func (s *RunService) SetRun(ctx context.Context, viewer *models.Claims, input models.RunInput) (*models.Run, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You do not have admin rights!")
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title is required")
	}

	var deadline *time.Time
	if input.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, input.Deadline)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "deadline must be an RFC 3339 timestamp")
		}
		deadline = &parsed
	}

	run, err := s.runs.Upsert(ctx, input.Title, deadline)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set run")
	}
	return run, nil
}
