package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/httpresp"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/timezone"
	ucAppointment "github.com/sharpfade/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	transitionUC *ucAppointment.TransitionStatus
	readViews    domain.ReadViews
	tz           string
}

func NewAppointmentHandler(
	transitionUC *ucAppointment.TransitionStatus,
	readViews domain.ReadViews,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		transitionUC: transitionUC,
		readViews:    readViews,
		tz:           tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Id de agendamento inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_status", "Status obrigatório.")
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}

	detail, err := h.transitionUC.Execute(c.Request.Context(), userID, role, uint(id), target)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "barber_profile_not_found"):
			httperr.NotFound(c, "barber_profile_not_found", "Perfil de barbeiro não encontrado.")
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
		default:
			httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar agendamento.")
		}
		return
	}

	httpresp.OK(c, detail)
}

// ======================================================
// SCHEDULE (BY DATE)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := timezone.ParseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	barberID, err := h.readViews.BarberIDByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.NotFound(c, "barber_profile_not_found", "Perfil de barbeiro não encontrado.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	rows, err := h.readViews.ScheduleForDay(c.Request.Context(), barberID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, rows)
}
