package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentgate/grading-api/internal/models"
)

// SkillTestRepository exposes persistence helpers for skill tests and quiz
// submissions.
type SkillTestRepository interface {
	GetByID(ctx context.Context, id string) (models.SkillTest, error)
	CreateSubmission(ctx context.Context, submission *models.TestSubmission) error
	UpdateSubmission(ctx context.Context, submission *models.TestSubmission) error
}

// NewSkillTestRepository constructs a skill test repository.
func NewSkillTestRepository(db *gorm.DB) SkillTestRepository {
	return &skillTestRepository{db: db}
}

type skillTestRepository struct {
	db *gorm.DB
}

func (r *skillTestRepository) GetByID(ctx context.Context, id string) (models.SkillTest, error) {
	var test models.SkillTest
	err := r.db.WithContext(ctx).First(&test, "id = ?", id).Error
	if err != nil {
		return models.SkillTest{}, err
	}
	return test, nil
}

func (r *skillTestRepository) CreateSubmission(ctx context.Context, submission *models.TestSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *skillTestRepository) UpdateSubmission(ctx context.Context, submission *models.TestSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}
