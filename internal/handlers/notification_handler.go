package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/models"
)

// NotificationHandler lê e marca como lida; escrever notificação é
// papel do fan-out, nunca daqui.
type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// --------- Client ---------

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var notifs []models.Notification
	if err := h.db.
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	c.JSON(http.StatusOK, notifs)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_notification_id", "Id inválido.")
		return
	}

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {

		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Admin ---------

func (h *NotificationHandler) ListAdmin(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var notifs []models.AdminNotification
	if err := h.db.
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	c.JSON(http.StatusOK, notifs)
}

func (h *NotificationHandler) MarkAdminRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_notification_id", "Id inválido.")
		return
	}

	res := h.db.Model(&models.AdminNotification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
