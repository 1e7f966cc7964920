package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sharpfade/barber-booking/internal/audit"
	dbpkg "github.com/sharpfade/barber-booking/internal/db"
	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTransitionUC(db *gorm.DB) *TransitionStatus {
	log := zap.NewNop()
	return NewTransitionStatus(db, audit.NewDispatcher(audit.New(db), log), log)
}

type scenario struct {
	barberUser models.User
	profile    models.BarberProfile
	client     models.User
	service    models.Service
	ap         models.Appointment
}

// seedScenario monta o cenário base: appointment id=5 pendente, dono é
// o profile id=2 do user id=10.
func seedScenario(t *testing.T, db *gorm.DB, adminCount int) scenario {
	t.Helper()

	s := scenario{
		barberUser: models.User{ID: 10, Name: "Rafael", Email: "rafael@example.com", PasswordHash: "x", Role: models.RoleBarber},
		client:     models.User{ID: 7, Name: "João", Email: "joao@example.com", PasswordHash: "x", Role: models.RoleClient},
		service:    models.Service{ID: 3, Name: "Corte Masculino", DurationMin: 30, Price: 50, Active: true},
	}
	require.NoError(t, db.Create(&s.barberUser).Error)
	require.NoError(t, db.Create(&s.client).Error)
	require.NoError(t, db.Create(&s.service).Error)

	s.profile = models.BarberProfile{ID: 2, UserID: s.barberUser.ID}
	require.NoError(t, db.Create(&s.profile).Error)

	for i := 0; i < adminCount; i++ {
		admin := models.User{
			Name:         "Admin",
			Email:        fmt.Sprintf("admin%d@example.com", i),
			PasswordHash: "x",
			Role:         models.RoleAdmin,
		}
		require.NoError(t, db.Create(&admin).Error)
	}

	s.ap = models.Appointment{
		ID:              5,
		ClientID:        s.client.ID,
		BarberProfileID: s.profile.ID,
		ServiceID:       s.service.ID,
		AppointmentTime: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Status:          string(domain.StatusPending),
	}
	require.NoError(t, db.Create(&s.ap).Error)

	return s
}

func currentStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var ap models.Appointment
	require.NoError(t, db.First(&ap, id).Error)
	return ap.Status
}

func countNotifications(t *testing.T, db *gorm.DB) (client int64, admin int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.Notification{}).Count(&client).Error)
	require.NoError(t, db.Model(&models.AdminNotification{}).Count(&admin).Error)
	return client, admin
}

// --- Enum validation ---

func TestTransition_InvalidStatusRejected(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 1)
	uc := newTransitionUC(db)

	_, err := uc.Execute(context.Background(), s.barberUser.ID, models.RoleBarber, s.ap.ID, domain.Status("archived"))

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	assert.Equal(t, string(domain.StatusPending), currentStatus(t, db, s.ap.ID))

	clientN, adminN := countNotifications(t, db)
	assert.Zero(t, clientN)
	assert.Zero(t, adminN)
}

// --- Ownership ---

func TestTransition_OtherBarberGetsNotFound(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 1)
	uc := newTransitionUC(db)

	other := models.User{ID: 99, Name: "Pedro", Email: "pedro@example.com", PasswordHash: "x", Role: models.RoleBarber}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.BarberProfile{ID: 3, UserID: other.ID}).Error)

	_, err := uc.Execute(context.Background(), other.ID, models.RoleBarber, s.ap.ID, domain.StatusConfirmed)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	assert.Equal(t, string(domain.StatusPending), currentStatus(t, db, s.ap.ID))
}

func TestTransition_MissingProfileGetsNotFound(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 0)
	uc := newTransitionUC(db)

	// barbeiro cujo profile nunca foi criado
	orphan := models.User{ID: 12, Name: "Sem Perfil", Email: "orfao@example.com", PasswordHash: "x", Role: models.RoleBarber}
	require.NoError(t, db.Create(&orphan).Error)

	_, err := uc.Execute(context.Background(), orphan.ID, models.RoleBarber, s.ap.ID, domain.StatusConfirmed)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "barber_profile_not_found"))
}

// --- Fan-out ---

func TestTransition_ConfirmFansOutToClientAndAdmins(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 3)
	uc := newTransitionUC(db)

	detail, err := uc.Execute(context.Background(), s.barberUser.ID, models.RoleBarber, s.ap.ID, domain.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), detail.Status)
	assert.Equal(t, s.client.ID, detail.ClientID)
	assert.Equal(t, s.profile.ID, detail.BarberProfileID)
	assert.Equal(t, "Corte Masculino", detail.ServiceName)
	assert.Equal(t, "João", detail.ClientName)

	var clientNotifs []models.Notification
	require.NoError(t, db.Find(&clientNotifs).Error)
	require.Len(t, clientNotifs, 1)
	assert.Equal(t, models.NotificationAppointmentConfirmed, clientNotifs[0].Type)
	assert.Equal(t, s.client.ID, clientNotifs[0].RecipientID)
	assert.False(t, clientNotifs[0].Read)

	var adminNotifs []models.AdminNotification
	require.NoError(t, db.Find(&adminNotifs).Error)
	require.Len(t, adminNotifs, 3)
	for _, n := range adminNotifs {
		assert.Equal(t, models.AdminNotificationStatusChangedByBarber, n.Type)
		require.NotNil(t, n.AppointmentID)
		assert.Equal(t, s.ap.ID, *n.AppointmentID)
		require.NotNil(t, n.ClientID)
		assert.Equal(t, s.client.ID, *n.ClientID)
		require.NotNil(t, n.BarberProfileID)
		assert.Equal(t, s.profile.ID, *n.BarberProfileID)
	}
}

func TestTransition_CompletedWritesNoNotifications(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 3)
	uc := newTransitionUC(db)

	detail, err := uc.Execute(context.Background(), s.barberUser.ID, models.RoleBarber, s.ap.ID, domain.StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), detail.Status)

	clientN, adminN := countNotifications(t, db)
	assert.Zero(t, clientN)
	assert.Zero(t, adminN)
}

func TestTransition_AdminActorSkipsOwnership(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 1)
	uc := newTransitionUC(db)

	var admin models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).First(&admin).Error)

	detail, err := uc.Execute(context.Background(), admin.ID, models.RoleAdmin, s.ap.ID, domain.StatusCanceled)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), detail.Status)
}

// --- Atomicity ---

func TestTransition_RollsBackWhenFanOutFails(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 2)
	uc := newTransitionUC(db)

	// derruba a tabela de notificações para simular falha no meio do
	// fan-out; o update de status já executado precisa reverter junto
	require.NoError(t, db.Migrator().DropTable(&models.Notification{}))

	_, err := uc.Execute(context.Background(), s.barberUser.ID, models.RoleBarber, s.ap.ID, domain.StatusConfirmed)

	require.Error(t, err)
	assert.Equal(t, string(domain.StatusPending), currentStatus(t, db, s.ap.ID))

	var adminN int64
	require.NoError(t, db.Model(&models.AdminNotification{}).Count(&adminN).Error)
	assert.Zero(t, adminN)
}

// --- Idempotence gap (comportamento documentado, não desejado) ---

func TestTransition_ReconfirmDuplicatesFanOut(t *testing.T) {
	db := newTestDB(t)
	s := seedScenario(t, db, 1)
	uc := newTransitionUC(db)

	_, err := uc.Execute(context.Background(), s.barberUser.ID, models.RoleBarber, s.ap.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	// retry do mesmo confirm: o WHERE não filtra por status, então a
	// linha ainda casa e o fan-out roda de novo
	_, err = uc.Execute(context.Background(), s.barberUser.ID, models.RoleBarber, s.ap.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	clientN, adminN := countNotifications(t, db)
	assert.Equal(t, int64(2), clientN)
	assert.Equal(t, int64(2), adminN)
}
