package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/imageutil"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/models"
	"github.com/sharpfade/barber-booking/internal/storage"
)

const maxPortfolioWidth = 1600

type PortfolioHandler struct {
	db      *gorm.DB
	storage storage.ObjectStorage
}

func NewPortfolioHandler(db *gorm.DB, store storage.ObjectStorage) *PortfolioHandler {
	return &PortfolioHandler{db: db, storage: store}
}

func (h *PortfolioHandler) myProfile(c *gin.Context) (*models.BarberProfile, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.BarberProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "barber_profile_not_found", "Perfil de barbeiro não encontrado.")
		return nil, false
	}
	return &profile, true
}

func (h *PortfolioHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		httperr.Unavailable(c, "storage_unavailable", "Armazenamento de imagens não configurado.")
		return
	}

	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Imagem obrigatória.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler imagem.")
		return
	}
	defer f.Close()

	encoded, err := imageutil.ToWebP(f, maxPortfolioWidth)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	key := fmt.Sprintf("portfolio/%d/%s.webp", profile.ID, uuid.NewString())

	url, err := h.storage.Put(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Erro ao subir imagem.")
		return
	}

	img := models.PortfolioImage{
		BarberProfileID: profile.ID,
		ObjectKey:       key,
		URL:             url,
		Caption:         c.PostForm("caption"),
	}

	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_save_image", "Erro ao salvar imagem.")
		return
	}

	c.JSON(http.StatusCreated, img)
}

func (h *PortfolioHandler) List(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	var images []models.PortfolioImage
	if err := h.db.
		Where("barber_profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&images).Error; err != nil {

		httperr.Internal(c, "failed_to_list_images", "Erro ao listar imagens.")
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	profile, ok := h.myProfile(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_image_id", "Id inválido.")
		return
	}

	var img models.PortfolioImage
	if err := h.db.
		Where("id = ? AND barber_profile_id = ?", id, profile.ID).
		First(&img).Error; err != nil {
		httperr.NotFound(c, "image_not_found", "Imagem não encontrada.")
		return
	}

	if h.storage != nil {
		// falha no bucket não impede a remoção do registro
		_ = h.storage.Delete(c.Request.Context(), img.ObjectKey)
	}

	if err := h.db.Delete(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_image", "Erro ao remover imagem.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
