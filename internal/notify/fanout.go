// Package notify grava as linhas de notificação derivadas de uma
// transição de status. Tudo roda na transação do chamador: a transição
// e suas notificações são visíveis juntas ou não são.
package notify

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/dto"
	"github.com/sharpfade/barber-booking/internal/models"
)

// FanOutConfirmed escreve a notificação do cliente e, em seguida, uma
// por admin. Admins são lidos na hora (sem cache); a ordem do loop é a
// ordem que o banco devolver. O loop é sequencial dentro da transação —
// aceitável enquanto o número de admins for pequeno.
func FanOutConfirmed(tx *gorm.DB, ap *dto.AppointmentDetail, barberName string) error {
	clientNotif := models.Notification{
		RecipientID: ap.ClientID,
		Type:        models.NotificationAppointmentConfirmed,
		Title:       "Agendamento confirmado",
		Message: fmt.Sprintf(
			"Seu horário de %s com %s em %s foi confirmado.",
			ap.ServiceName,
			barberName,
			ap.AppointmentTime.Format("02/01/2006 15:04"),
		),
		Link: "/app/appointments",
	}

	if err := tx.Create(&clientNotif).Error; err != nil {
		return err
	}

	var admins []models.User
	if err := tx.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return err
	}

	appointmentID := ap.ID
	clientID := ap.ClientID
	barberID := ap.BarberProfileID

	for _, admin := range admins {
		adminNotif := models.AdminNotification{
			RecipientID: admin.ID,
			Type:        models.AdminNotificationStatusChangedByBarber,
			Title:       "Status de agendamento alterado",
			Message: fmt.Sprintf(
				"%s alterou o agendamento #%d para %q.",
				barberName,
				ap.ID,
				ap.Status,
			),
			Link:            fmt.Sprintf("/admin/appointments?appointment_id=%d", ap.ID),
			AppointmentID:   &appointmentID,
			ClientID:        &clientID,
			BarberProfileID: &barberID,
		}

		if err := tx.Create(&adminNotif).Error; err != nil {
			return err
		}
	}

	return nil
}
