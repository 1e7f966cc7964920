package appointment

import (
	"context"
	"time"

	"github.com/sharpfade/barber-booking/internal/dto"
	"github.com/sharpfade/barber-booking/internal/models"
)

// ReadViews são as consultas parametrizadas de leitura. Só enxergam
// estado commitado — nunca leem dentro da transação de escrita.
type ReadViews interface {
	// -------- Identity --------
	BarberIDByUser(
		ctx context.Context,
		userID uint,
	) (uint, error)

	// -------- Schedule --------
	ScheduleForDay(
		ctx context.Context,
		barberProfileID uint,
		start time.Time,
		end time.Time,
	) ([]dto.AppointmentDetail, error)

	ListForClient(
		ctx context.Context,
		clientID uint,
	) ([]dto.AppointmentDetail, error)

	ListByStatus(
		ctx context.Context,
		status string,
		limit int,
	) ([]dto.AppointmentDetail, error)

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		barberProfileID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Stats --------
	Stats(ctx context.Context) (*dto.Stats, error)
}
