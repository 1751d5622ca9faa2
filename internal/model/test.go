package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestType classifies a test within the hiring pipeline.
type TestType string

const (
	TestTypeKnowledge     TestType = "knowledge"
	TestTypeSkills        TestType = "skills"
	TestTypePsychological TestType = "psychological"
)

type Test struct {
	ID                   string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title                string     `gorm:"not null" json:"title"`
	Description          string     `gorm:"type:text" json:"description,omitempty"`
	Type                 TestType   `gorm:"not null;index" json:"type"`
	IsActive             bool       `gorm:"not null;default:true" json:"is_active"`
	RequiresManualReview bool       `gorm:"not null;default:false" json:"requires_manual_review"`
	PassingScore         *int       `json:"passing_score,omitempty"`
	Questions            []Question `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
