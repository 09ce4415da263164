package models

import (
	"time"
)

// Column sizes for InterviewPreference, shared with request validation.
const (
	PreferenceFieldMaxLength = 100
)

// InterviewPreference stores what kind of interview a candidate wants to practice
type InterviewPreference struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Domain        string    `gorm:"size:100;not null" json:"domain"`
	Difficulty    string    `gorm:"size:100;not null" json:"difficulty"`
	InterviewType string    `gorm:"size:100;not null" json:"interview_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for the InterviewPreference model
func (InterviewPreference) TableName() string {
	return "interview_preferences"
}
