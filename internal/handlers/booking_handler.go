package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/httpresp"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/models"
	ucAppointment "github.com/sharpfade/barber-booking/internal/usecase/appointment"
)

// BookingHandler atende o fluxo do cliente: criar, listar e cancelar
// os próprios agendamentos.
type BookingHandler struct {
	db        *gorm.DB
	bookUC    *ucAppointment.BookAppointment
	readViews domain.ReadViews
}

func NewBookingHandler(
	db *gorm.DB,
	bookUC *ucAppointment.BookAppointment,
	readViews domain.ReadViews,
) *BookingHandler {
	return &BookingHandler{db: db, bookUC: bookUC, readViews: readViews}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookInput{
		ClientID:        clientID,
		BarberProfileID: req.BarberID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			switch code {
			case "service_not_found", "barber_not_found":
				httperr.NotFound(c, code, "Recurso não encontrado.")
			default:
				httperr.BadRequest(c, code, "Não foi possível agendar.")
			}
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, created)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	rows, err := h.readViews.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, rows)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Id de agendamento inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if err := domain.CanBeCanceledByClient(domain.Status(ap.Status)); err != nil {
		httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
		return
	}

	ap.Status = string(domain.StatusCanceled)
	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}
