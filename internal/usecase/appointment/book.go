package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharpfade/barber-booking/internal/audit"
	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/models"
	"github.com/sharpfade/barber-booking/internal/timezone"
)

const minAdvanceMinutes = 30

// BookAppointment cria um agendamento pendente para um cliente.
type BookAppointment struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	tz    string
	log   *zap.Logger
}

func NewBookAppointment(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	tz string,
	log *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		db:    db,
		audit: auditDispatcher,
		tz:    tz,
		log:   log,
	}
}

type BookInput struct {
	ClientID        uint
	BarberProfileID uint
	ServiceID       uint
	Date            string
	Time            string
	Notes           string
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	start, err := timezone.ParseDateTime(uc.tz, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(uc.tz)
	if start.Before(now.Add(minAdvanceMinutes * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	var service models.Service
	if err := uc.db.WithContext(ctx).
		Where("id = ? AND active = ?", in.ServiceID, true).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	var profile models.BarberProfile
	if err := uc.db.WithContext(ctx).First(&profile, in.BarberProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	var wh models.WorkingHours
	err = uc.db.WithContext(ctx).
		Where("barber_profile_id = ? AND weekday = ?", profile.ID, int(start.Weekday())).
		First(&wh).Error
	if err != nil || !domain.WithinWorkingHours(&wh, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	var created models.Appointment

	err = uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.
			Preload("Service").
			Where(
				"barber_profile_id = ? AND status IN ?",
				profile.ID, []string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			).
			Where(
				"appointment_time >= ? AND appointment_time < ?",
				start.Add(-maxServiceWindow), end,
			)

		// FOR UPDATE é postgres-only
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var neighbors []models.Appointment
		if err := q.Find(&neighbors).Error; err != nil {
			return err
		}

		for _, n := range neighbors {
			nEnd := n.AppointmentTime.Add(time.Duration(n.Service.DurationMin) * time.Minute)
			if domain.Overlaps(start, end, n.AppointmentTime, nEnd) {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		ap := models.Appointment{
			ClientID:        in.ClientID,
			BarberProfileID: profile.ID,
			ServiceID:       service.ID,
			AppointmentTime: start,
			Status:          string(domain.InitialStatus()),
			Notes:           in.Notes,
		}

		if err := tx.Create(&ap).Error; err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return &created, nil
}

// janela de varredura para vizinhos que podem invadir o novo horário;
// cobre o serviço mais longo do catálogo com folga
const maxServiceWindow = 4 * time.Hour
