package models

import "time"

// Question is a forum post. NomeArquivo references an uploaded attachment
// under the uploads dir; empty means no attachment.
type Question struct {
	ID          uint   `gorm:"primaryKey"`
	Titulo      string `gorm:"size:255;not null"`
	Descricao   string `gorm:"type:text;not null"`
	UserID      uint   `gorm:"index;not null"`
	NomeArquivo string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
