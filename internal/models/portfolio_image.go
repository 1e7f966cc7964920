package models

import "time"

type PortfolioImage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberProfileID uint          `gorm:"index" json:"barber_id"`
	BarberProfile   BarberProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ObjectKey string `gorm:"size:255;not null" json:"-"`
	URL       string `gorm:"size:255;not null" json:"url"`
	Caption   string `gorm:"size:255" json:"caption"`

	CreatedAt time.Time `json:"created_at"`
}
