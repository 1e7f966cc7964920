// Package reminder roda o job de lembrete: agendamentos confirmados
// começando em ~1h ganham uma notificação (e e-mail, se houver SMTP).
package reminder

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/mailer"
	"github.com/sharpfade/barber-booking/internal/models"
	"github.com/sharpfade/barber-booking/internal/timezone"
)

type Reminder struct {
	db     *gorm.DB
	mailer *mailer.Mailer
	log    *zap.Logger
	tz     string
}

func New(db *gorm.DB, m *mailer.Mailer, log *zap.Logger, tz string) *Reminder {
	return &Reminder{db: db, mailer: m, log: log, tz: tz}
}

// Start agenda a varredura a cada minuto e devolve o cron para quem
// quiser parar no shutdown.
func (r *Reminder) Start() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", r.run); err != nil {
		r.log.Fatal("failed to schedule reminder job", zap.Error(err))
	}
	c.Start()
	r.log.Info("reminder job started")
	return c
}

func (r *Reminder) run() {
	now := timezone.NowIn(r.tz)
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var appointments []models.Appointment
	err := r.db.
		Preload("Client").
		Preload("Service").
		Where(
			"status = ? AND reminder_sent = ? AND appointment_time BETWEEN ? AND ?",
			string(domain.StatusConfirmed), false, startWindow, endWindow,
		).
		Find(&appointments).Error
	if err != nil {
		r.log.Error("reminder scan failed", zap.Error(err))
		return
	}

	for _, ap := range appointments {
		if err := r.remind(&ap); err != nil {
			r.log.Error("reminder failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
	}
}

func (r *Reminder) remind(ap *models.Appointment) error {
	// notificação e flag de dedup commitam juntas; reexecutar o job
	// não duplica o lembrete
	err := r.db.Transaction(func(tx *gorm.DB) error {
		notif := models.Notification{
			RecipientID: ap.ClientID,
			Type:        models.NotificationAppointmentReminder,
			Title:       "Lembrete de agendamento",
			Message: fmt.Sprintf(
				"Seu horário de %s é às %s.",
				ap.Service.Name,
				ap.AppointmentTime.Format("15:04"),
			),
			Link: "/app/appointments",
		}

		if err := tx.Create(&notif).Error; err != nil {
			return err
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("reminder_sent", true).Error
	})
	if err != nil {
		return err
	}

	if r.mailer != nil && ap.Client.Email != "" {
		body := fmt.Sprintf(
			"<p>Olá %s,</p><p>Seu horário de <strong>%s</strong> começa às %s.</p>",
			ap.Client.Name,
			ap.Service.Name,
			ap.AppointmentTime.Format("15:04"),
		)
		if err := r.mailer.Send(ap.Client.Email, "Lembrete de agendamento", body); err != nil {
			// e-mail é melhor-esforço; a notificação já está gravada
			r.log.Warn("reminder email failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		}
	}

	return nil
}
