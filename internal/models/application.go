package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application states. Only pending applications authorize a submission.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Candidate is the person behind applications and submissions.
type Candidate struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a generated identifier when none is present.
func (c *Candidate) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Application is a candidate's pending claim to a specific role. It is the
// authorization anchor for submissions: the webhook intake only accepts a
// pull request when a pending application exists for (email, role).
type Application struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CandidateID string    `gorm:"size:36;not null" json:"candidate_id"`
	Role        string    `gorm:"size:64;not null" json:"role"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Candidate   Candidate `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"candidate"`
}

// BeforeCreate assigns a generated identifier when none is present.
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
