package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/audit"
	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/dto"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/models"
	"github.com/sharpfade/barber-booking/internal/notify"
)

// TransitionStatus muda o status de um agendamento e dispara o fan-out
// de notificações quando o novo status pede. Update, releitura e
// notificações rodam numa única transação: ou tudo commita junto, ou
// nada fica visível.
type TransitionStatus struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewTransitionStatus(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *TransitionStatus {
	return &TransitionStatus{
		db:    db,
		audit: auditDispatcher,
		log:   log,
	}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	actorUserID uint,
	actorRole string,
	appointmentID uint,
	target domain.Status,
) (*dto.AppointmentDetail, error) {

	// rejeitado antes de qualquer transação
	if _, err := domain.ParseStatus(string(target)); err != nil {
		return nil, err
	}

	// barbeiro age sobre o próprio profile; admin sobre qualquer
	// agendamento
	var barberProfileID uint
	if actorRole == models.RoleBarber {
		var profile models.BarberProfile
		if err := uc.db.WithContext(ctx).
			Select("id").
			Where("user_id = ?", actorUserID).
			First(&profile).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("barber_profile_not_found")
			}
			return nil, err
		}
		barberProfileID = profile.ID
	}

	var detail dto.AppointmentDetail

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var actor models.User
		if err := tx.Select("id", "name").First(&actor, actorUserID).Error; err != nil {
			return err
		}

		q := tx.Model(&models.Appointment{}).Where("id = ?", appointmentID)
		if actorRole == models.RoleBarber {
			// o WHERE é também o check de posse: zero linhas não
			// distingue "não existe" de "não é seu"
			q = q.Where("barber_profile_id = ?", barberProfileID)
		}

		res := q.Update("status", string(target))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("appointment_not_found")
		}

		// releitura na mesma transação: o detalhe reflete o estado
		// recém-escrito
		if err := tx.
			Table("appointments").
			Select(`appointments.id, appointments.reference, appointments.client_id,
				appointments.barber_profile_id, appointments.service_id,
				appointments.appointment_time, appointments.status,
				services.name AS service_name, users.name AS client_name`).
			Joins("JOIN services ON services.id = appointments.service_id").
			Joins("JOIN users ON users.id = appointments.client_id").
			Where("appointments.id = ?", appointmentID).
			Take(&detail).Error; err != nil {
			return err
		}

		if domain.NotifiesOnEntry(target) {
			if err := notify.FanOutConfirmed(tx, &detail, actor.Name); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorUserID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &detail.ID,
		Metadata: map[string]any{"status": string(target)},
	})

	return &detail, nil
}
