package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sharpfade/barber-booking/internal/config"
	dbpkg "github.com/sharpfade/barber-booking/internal/db"
	"github.com/sharpfade/barber-booking/internal/dto"
	"github.com/sharpfade/barber-booking/internal/models"
	"github.com/sharpfade/barber-booking/internal/routes"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret: testSecret,
		Timezone:  "UTC",
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:  db,
		Cfg: cfg,
		Log: zap.NewNop(),
	})

	return r, db
}

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func seedConfirmScenario(t *testing.T, db *gorm.DB) (barberUser, client models.User, profile models.BarberProfile, ap models.Appointment) {
	t.Helper()

	barberUser = models.User{ID: 10, Name: "Rafael", Email: "rafael@example.com", PasswordHash: "x", Role: models.RoleBarber}
	client = models.User{ID: 7, Name: "João", Email: "joao@example.com", PasswordHash: "x", Role: models.RoleClient}
	admin := models.User{ID: 20, Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&barberUser).Error)
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&admin).Error)

	svc := models.Service{ID: 3, Name: "Corte Masculino", DurationMin: 30, Price: 50, Active: true}
	require.NoError(t, db.Create(&svc).Error)

	profile = models.BarberProfile{ID: 2, UserID: barberUser.ID}
	require.NoError(t, db.Create(&profile).Error)

	ap = models.Appointment{
		ID:              5,
		ClientID:        client.ID,
		BarberProfileID: profile.ID,
		ServiceID:       svc.ID,
		AppointmentTime: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Status:          "pending",
	}
	require.NoError(t, db.Create(&ap).Error)
	return
}

func putStatus(r *gin.Engine, token string, appointmentID uint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(
		http.MethodPut,
		fmt.Sprintf("/api/me/appointments/%d/status", appointmentID),
		bytes.NewBufferString(body),
	)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateStatus_BarberConfirmsOwnAppointment(t *testing.T) {
	r, db := newTestServer(t)
	barberUser, client, profile, ap := seedConfirmScenario(t, db)

	token := signToken(t, barberUser.ID, models.RoleBarber)
	w := putStatus(r, token, ap.ID, `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail dto.AppointmentDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, ap.ID, detail.ID)
	assert.Equal(t, "confirmed", detail.Status)
	assert.Equal(t, client.ID, detail.ClientID)
	assert.Equal(t, profile.ID, detail.BarberProfileID)
	assert.Equal(t, "Corte Masculino", detail.ServiceName)
	assert.Equal(t, "João", detail.ClientName)

	var clientN, adminN int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&clientN).Error)
	require.NoError(t, db.Model(&models.AdminNotification{}).Count(&adminN).Error)
	assert.Equal(t, int64(1), clientN)
	assert.Equal(t, int64(1), adminN)
}

func TestUpdateStatus_UnknownStatusIs400AndWritesNothing(t *testing.T) {
	r, db := newTestServer(t)
	barberUser, _, _, ap := seedConfirmScenario(t, db)

	token := signToken(t, barberUser.ID, models.RoleBarber)
	w := putStatus(r, token, ap.ID, `{"status":"archived"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_status", body["error_code"])

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, ap.ID).Error)
	assert.Equal(t, "pending", reloaded.Status)

	var clientN int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&clientN).Error)
	assert.Zero(t, clientN)
}

func TestUpdateStatus_OtherBarberIs404(t *testing.T) {
	r, db := newTestServer(t)
	_, _, _, ap := seedConfirmScenario(t, db)

	other := models.User{ID: 11, Name: "Pedro", Email: "pedro@example.com", PasswordHash: "x", Role: models.RoleBarber}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.BarberProfile{ID: 4, UserID: other.ID}).Error)

	token := signToken(t, other.ID, models.RoleBarber)
	w := putStatus(r, token, ap.ID, `{"status":"confirmed"}`)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "appointment_not_found", body["error_code"])

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, ap.ID).Error)
	assert.Equal(t, "pending", reloaded.Status)
}

func TestUpdateStatus_ClientRoleIsForbidden(t *testing.T) {
	r, db := newTestServer(t)
	_, client, _, ap := seedConfirmScenario(t, db)

	token := signToken(t, client.ID, models.RoleClient)
	w := putStatus(r, token, ap.ID, `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStatus_MissingTokenIsUnauthorized(t *testing.T) {
	r, db := newTestServer(t)
	_, _, _, ap := seedConfirmScenario(t, db)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/me/appointments/%d/status", ap.ID), bytes.NewBufferString(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateStatus_AdminRouteWorksOnAnyAppointment(t *testing.T) {
	r, db := newTestServer(t)
	_, _, _, ap := seedConfirmScenario(t, db)

	token := signToken(t, 20, models.RoleAdmin)

	req := httptest.NewRequest(
		http.MethodPut,
		fmt.Sprintf("/api/admin/appointments/%d/status", ap.ID),
		bytes.NewBufferString(`{"status":"canceled"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail dto.AppointmentDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "canceled", detail.Status)
}

func TestListByDate_ReturnsBarberSchedule(t *testing.T) {
	r, db := newTestServer(t)
	barberUser, _, _, ap := seedConfirmScenario(t, db)

	token := signToken(t, barberUser.ID, models.RoleBarber)

	req := httptest.NewRequest(http.MethodGet, "/api/me/appointments?date=2026-09-10", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data  []dto.AppointmentDetail `json:"data"`
		Total int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, ap.ID, body.Data[0].ID)
	assert.Equal(t, "Corte Masculino", body.Data[0].ServiceName)
}
