package models

import "time"

const (
	NotificationAppointmentConfirmed = "appointment_confirmed"
	NotificationAppointmentReminder  = "appointment_reminder"

	AdminNotificationStatusChangedByBarber = "appointment_status_changed_by_barber"
)

// Notification é dirigida a um cliente.
type Notification struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	RecipientID uint `gorm:"index;not null" json:"recipient_id"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Title   string `gorm:"size:100" json:"title"`
	Message string `gorm:"size:500" json:"message"`
	Link    string `gorm:"size:255" json:"link"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

// AdminNotification carrega ids de correlação para rastrear o evento
// que a originou.
type AdminNotification struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	RecipientID uint `gorm:"index;not null" json:"recipient_id"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Title   string `gorm:"size:100" json:"title"`
	Message string `gorm:"size:500" json:"message"`
	Link    string `gorm:"size:255" json:"link"`

	AppointmentID   *uint `json:"appointment_id"`
	ClientID        *uint `json:"client_id"`
	BarberProfileID *uint `json:"barber_id"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
