package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/dto"
	"github.com/sharpfade/barber-booking/internal/models"
)

const detailColumns = `appointments.id, appointments.reference, appointments.client_id,
	appointments.barber_profile_id, appointments.service_id, appointments.appointment_time,
	appointments.status, services.name AS service_name, users.name AS client_name`

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Identity
// --------------------------------------------------

func (r *AppointmentGormRepository) BarberIDByUser(
	ctx context.Context,
	userID uint,
) (uint, error) {

	var profile models.BarberProfile
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return 0, err
	}
	return profile.ID, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments").
		Select(detailColumns).
		Joins("JOIN services ON services.id = appointments.service_id").
		Joins("JOIN users ON users.id = appointments.client_id")
}

func (r *AppointmentGormRepository) ScheduleForDay(
	ctx context.Context,
	barberProfileID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentDetail, error) {

	var rows []dto.AppointmentDetail
	if err := r.detailQuery(ctx).
		Where(
			"appointments.barber_profile_id = ? AND appointments.appointment_time >= ? AND appointments.appointment_time < ?",
			barberProfileID, start, end,
		).
		Order("appointments.appointment_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *AppointmentGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
) ([]dto.AppointmentDetail, error) {

	var rows []dto.AppointmentDetail
	if err := r.detailQuery(ctx).
		Where("appointments.client_id = ?", clientID).
		Order("appointments.appointment_time DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *AppointmentGormRepository) ListByStatus(
	ctx context.Context,
	status string,
	limit int,
) ([]dto.AppointmentDetail, error) {

	q := r.detailQuery(ctx)
	if status != "" {
		q = q.Where("appointments.status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []dto.AppointmentDetail
	if err := q.
		Order("appointments.appointment_time DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberProfileID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_profile_id = ? AND weekday = ?", barberProfileID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *AppointmentGormRepository) Stats(ctx context.Context) (*dto.Stats, error) {
	var stats dto.Stats

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats.AppointmentsByStatus).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&stats.UsersByRole).Error; err != nil {
		return nil, err
	}

	// o decimal do banco chega como texto; o Scan em float64 faz a
	// coerção numérica uma única vez, aqui na borda
	if err := r.db.WithContext(ctx).
		Table("appointments").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.status = ?", "completed").
		Select("COALESCE(SUM(services.price), 0)").
		Scan(&stats.CompletedRevenue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// Compile-time check
var _ domain.ReadViews = (*AppointmentGormRepository)(nil)
