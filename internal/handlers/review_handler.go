package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// --------- Handlers ---------

func (h *ReviewHandler) ListByBarber(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Id de barbeiro inválido.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("barber_profile_id = ?", barberID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// só avalia quem já teve um atendimento concluído com o barbeiro
	var count int64
	h.db.Model(&models.Appointment{}).
		Where(
			"client_id = ? AND barber_profile_id = ? AND status = ?",
			clientID, req.BarberID, string(domain.StatusCompleted),
		).
		Count(&count)
	if count == 0 {
		httperr.BadRequest(c, "no_completed_appointment", "Avaliação exige atendimento concluído.")
		return
	}

	review := models.Review{
		ClientID:        clientID,
		BarberProfileID: req.BarberID,
		Rating:          req.Rating,
		Comment:         req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Erro ao criar avaliação.")
		return
	}

	c.JSON(http.StatusCreated, review)
}
