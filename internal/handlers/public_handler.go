package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/models"
)

// PublicHandler serve o site de marketing: diretório de barbeiros e
// portfólio, sem autenticação.
type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var profiles []models.BarberProfile
	if err := h.db.
		Joins("User").
		Order("barber_profiles.id ASC").
		Find(&profiles).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, gin.H{
			"id":               p.ID,
			"name":             p.User.Name,
			"bio":              p.Bio,
			"instagram":        p.Instagram,
			"specialties":      p.Specialties(),
			"years_experience": p.YearsExperience,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *PublicHandler) GetBarber(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Id de barbeiro inválido.")
		return
	}

	var profile models.BarberProfile
	if err := h.db.Joins("User").First(&profile, uint(id)).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var images []models.PortfolioImage
	h.db.Where("barber_profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&images)

	c.JSON(http.StatusOK, gin.H{
		"id":               profile.ID,
		"name":             profile.User.Name,
		"bio":              profile.Bio,
		"address":          profile.Address,
		"instagram":        profile.Instagram,
		"specialties":      profile.Specialties(),
		"years_experience": profile.YearsExperience,
		"portfolio":        images,
	})
}
