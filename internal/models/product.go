package models

import "time"

// Product — таблица products. One row per catalog item; CreatedAt is the
// public ordering key and never changes after insert.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"not null;default:0" json:"price"`
	Weight        float64   `json:"weight"`
	Category      string    `json:"category"`
	ImageFilename string    `json:"image_filename,omitempty"`
	// без тега default: gorm выкидывает поля с default из INSERT при нулевом
	// значении, и false молча превращался бы в true. Дефолт задаёт код (seed).
	IsActive      bool      `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
