package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/sharpfade/barber-booking/internal/db"
	"github.com/sharpfade/barber-booking/internal/models"
)

func newTestRepo(t *testing.T) (*AppointmentGormRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return NewAppointmentGormRepository(db), db
}

func seedRepo(t *testing.T, db *gorm.DB) (profile models.BarberProfile, client models.User) {
	t.Helper()

	barber := models.User{Name: "Rafael", Email: "rafael@example.com", PasswordHash: "x", Role: models.RoleBarber}
	client = models.User{Name: "João", Email: "joao@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&barber).Error)
	require.NoError(t, db.Create(&client).Error)

	profile = models.BarberProfile{UserID: barber.ID}
	require.NoError(t, db.Create(&profile).Error)

	svc := models.Service{Name: "Corte Masculino", DurationMin: 30, Price: 50, Active: true}
	require.NoError(t, db.Create(&svc).Error)

	mk := func(day, hour int, status string) {
		ap := models.Appointment{
			ClientID:        client.ID,
			BarberProfileID: profile.ID,
			ServiceID:       svc.ID,
			AppointmentTime: time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC),
			Status:          status,
		}
		require.NoError(t, db.Create(&ap).Error)
	}

	mk(10, 9, "pending")
	mk(10, 14, "confirmed")
	mk(11, 10, "completed")
	mk(11, 15, "completed")
	mk(12, 11, "canceled")

	return profile, client
}

func TestBarberIDByUser(t *testing.T) {
	repo, db := newTestRepo(t)
	profile, client := seedRepo(t, db)

	var barber models.User
	require.NoError(t, db.First(&barber, profile.UserID).Error)

	id, err := repo.BarberIDByUser(context.Background(), barber.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, id)

	_, err = repo.BarberIDByUser(context.Background(), client.ID)
	assert.Error(t, err)
}

func TestScheduleForDay_FiltersWindowAndJoinsNames(t *testing.T) {
	repo, db := newTestRepo(t)
	profile, _ := seedRepo(t, db)

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	rows, err := repo.ScheduleForDay(context.Background(), profile.ID, start, start.Add(24*time.Hour))

	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ordenado por horário
	assert.True(t, rows[0].AppointmentTime.Before(rows[1].AppointmentTime))
	assert.Equal(t, "Corte Masculino", rows[0].ServiceName)
	assert.Equal(t, "João", rows[0].ClientName)
}

func TestListByStatus(t *testing.T) {
	repo, db := newTestRepo(t)
	seedRepo(t, db)

	completed, err := repo.ListByStatus(context.Background(), "completed", 0)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	all, err := repo.ListByStatus(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	limited, err := repo.ListByStatus(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestStats(t *testing.T) {
	repo, db := newTestRepo(t)
	seedRepo(t, db)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	byStatus := map[string]int64{}
	for _, sc := range stats.AppointmentsByStatus {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, int64(1), byStatus["pending"])
	assert.Equal(t, int64(1), byStatus["confirmed"])
	assert.Equal(t, int64(2), byStatus["completed"])
	assert.Equal(t, int64(1), byStatus["canceled"])

	byRole := map[string]int64{}
	for _, rc := range stats.UsersByRole {
		byRole[rc.Role] = rc.Count
	}
	assert.Equal(t, int64(1), byRole["barber"])
	assert.Equal(t, int64(1), byRole["client"])

	// dois completed × R$50
	assert.InDelta(t, 100.0, stats.CompletedRevenue, 0.001)
}
