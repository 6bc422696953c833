package models

import "time"

// Answer is a professional's reply to a Question. Answers never outlive
// their question: question deletion cascades over them.
type Answer struct {
	ID         uint   `gorm:"primaryKey"`
	Descricao  string `gorm:"type:text;not null"`
	QuestionID uint   `gorm:"index;not null"`
	UserID     uint   `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Question Question `gorm:"constraint:OnDelete:CASCADE"`
	User     User     `gorm:"constraint:OnDelete:CASCADE"`
}
