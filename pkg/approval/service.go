package approval

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/loantrack/models"
)

// Service applies approval transitions to stored builder visits.
type Service struct {
	db *gorm.DB
}

// NewService creates an approval service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.BuilderVisit, error) {
	var visit models.BuilderVisit
	if err := s.db.WithContext(ctx).First(&visit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &visit, nil
}

func (s *Service) save(ctx context.Context, visit *models.BuilderVisit) error {
	return s.db.WithContext(ctx).Model(visit).Updates(map[string]interface{}{
		"approval":        visit.Approval,
		"approval_status": visit.ApprovalStatus,
	}).Error
}

// Approve records an approval at the given level and persists the result.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, level int, by string) (*models.BuilderVisit, error) {
	visit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, status, err := Approve(visit.Approval, level, by, time.Now())
	if err != nil {
		return nil, err
	}
	visit.Approval = updated
	visit.ApprovalStatus = status

	if err := s.save(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// Reject records a rejection at the given level and persists the result.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, level int, by, comment string) (*models.BuilderVisit, error) {
	visit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, status, err := Reject(visit.Approval, level, by, comment, time.Now())
	if err != nil {
		return nil, err
	}
	visit.Approval = updated
	visit.ApprovalStatus = status

	if err := s.save(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// ResetOnEdit clears both levels on the in-memory record. The caller saves
// the record together with the rest of the edit.
func (s *Service) ResetOnEdit(visit *models.BuilderVisit) {
	visit.Approval = Reset()
	visit.ApprovalStatus = models.LevelPending
}
