package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/models"
)

// ProfileHandler cuida do perfil do barbeiro (dono é o único que edita)
// e dos horários de trabalho.
type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Bio             *string               `json:"bio,omitempty"`
	Address         *string               `json:"address,omitempty"`
	Instagram       *string               `json:"instagram,omitempty"`
	Specialties     *models.SpecialtyList `json:"specialties,omitempty"`
	YearsExperience *int                  `json:"years_experience,omitempty"`
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

// --------- Profile ---------

func (h *ProfileHandler) myProfile(c *gin.Context) (*models.BarberProfile, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.BarberProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "barber_profile_not_found", "Perfil de barbeiro não encontrado.")
		return nil, false
	}
	return &profile, true
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               profile.ID,
		"bio":              profile.Bio,
		"address":          profile.Address,
		"instagram":        profile.Instagram,
		"specialties":      profile.Specialties(),
		"years_experience": profile.YearsExperience,
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Instagram != nil {
		profile.Instagram = *req.Instagram
	}
	if req.Specialties != nil {
		profile.SetSpecialties(*req.Specialties)
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}

	if err := h.db.Save(profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Erro ao atualizar perfil.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               profile.ID,
		"bio":              profile.Bio,
		"address":          profile.Address,
		"instagram":        profile.Instagram,
		"specialties":      profile.Specialties(),
		"years_experience": profile.YearsExperience,
	})
}

// --------- Working hours ---------

func (h *ProfileHandler) GetWorkingHours(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_profile_id = ?", profile.ID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *ProfileHandler) UpdateWorkingHours(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.db.Where("barber_profile_id = ?", profile.ID).Delete(&models.WorkingHours{}).Error; err != nil {
		httperr.Internal(c, "failed_to_clear_existing_hours", "Erro ao limpar horários.")
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		toCreate = append(toCreate, models.WorkingHours{
			BarberProfileID: profile.ID,
			Weekday:         d.Weekday,
			Active:          d.Active,
			StartTime:       d.StartTime,
			EndTime:         d.EndTime,
			LunchStart:      d.LunchStart,
			LunchEnd:        d.LunchEnd,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
