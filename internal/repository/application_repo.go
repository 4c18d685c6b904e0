package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentgate/grading-api/internal/models"
)

// ApplicationRepository exposes persistence helpers for role applications.
type ApplicationRepository interface {
	FindPending(ctx context.Context, email, role string) (models.Application, error)
}

// NewApplicationRepository constructs an application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

type applicationRepository struct {
	db *gorm.DB
}

// FindPending returns the pending application matching (candidate email, role).
func (r *applicationRepository) FindPending(ctx context.Context, email, role string) (models.Application, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, "email = ?", email).Error; err != nil {
		return models.Application{}, err
	}

	var application models.Application
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND role = ? AND status = ?", candidate.ID, role, models.ApplicationStatusPending).
		First(&application).Error
	if err != nil {
		return models.Application{}, err
	}

	application.Candidate = candidate
	return application, nil
}
