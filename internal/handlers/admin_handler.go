package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/sharpfade/barber-booking/internal/domain/appointment"
	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/httpresp"
	"github.com/sharpfade/barber-booking/internal/models"
)

// AdminHandler concentra a visão gerencial: usuários, barbeiros,
// supervisão de agendamentos e o painel de números.
type AdminHandler struct {
	db        *gorm.DB
	readViews domain.ReadViews
}

func NewAdminHandler(db *gorm.DB, readViews domain.ReadViews) *AdminHandler {
	return &AdminHandler{db: db, readViews: readViews}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	Bio             string               `json:"bio"`
	Address         string               `json:"address"`
	Instagram       string               `json:"instagram"`
	Specialties     models.SpecialtyList `json:"specialties"`
	YearsExperience int                  `json:"years_experience"`
}

// --------- Users ---------

func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))

	q := h.db.Session(&gorm.Session{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateBarber cria o User e o BarberProfile numa transação só; um
// barbeiro sem profile é exatamente o buraco de integridade que o
// resolver de identidade devolve como 404.
func (h *AdminHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar barbeiro.")
		return
	}

	var user models.User
	var profile models.BarberProfile

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hash),
			Phone:        req.Phone,
			Role:         models.RoleBarber,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile = models.BarberProfile{
			UserID:          user.ID,
			Bio:             req.Bio,
			Address:         req.Address,
			Instagram:       req.Instagram,
			YearsExperience: req.YearsExperience,
		}
		profile.SetSpecialties(req.Specialties)

		return tx.Create(&profile).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"profile": gin.H{
			"id":               profile.ID,
			"bio":              profile.Bio,
			"specialties":      profile.Specialties(),
			"years_experience": profile.YearsExperience,
		},
	})
}

// --------- Appointments ---------

func (h *AdminHandler) ListAppointments(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		if _, err := domain.ParseStatus(status); err != nil {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
	}

	rows, err := h.readViews.ListByStatus(c.Request.Context(), status, 200)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, rows)
}

// --------- Stats ---------

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.readViews.Stats(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_stats", "Erro ao calcular estatísticas.")
		return
	}

	httpresp.OK(c, stats)
}
