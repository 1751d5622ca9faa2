package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcessStatus is the lifecycle state of a selection process.
type ProcessStatus string

const (
	ProcessDraft     ProcessStatus = "draft"
	ProcessActive    ProcessStatus = "active"
	ProcessCompleted ProcessStatus = "completed"
	ProcessCancelled ProcessStatus = "cancelled"
)

// SelectionProcess is a collaborator entity: its CRUD lives outside this
// core, but applications reference it and the dashboards count it.
type SelectionProcess struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID string        `gorm:"type:uuid;not null;index" json:"company_id"`
	Title     string        `gorm:"not null" json:"title"`
	Status    ProcessStatus `gorm:"not null;default:'draft';index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (p *SelectionProcess) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Company is a collaborator entity: it owns selection processes and the
// company dashboard is keyed by it.
type Company struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Worker is a collaborator entity referenced by applications.
type Worker struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
