package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"chatia/models"
	"chatia/services/mailer"
	"chatia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotifyHandler receives already-structured orders and reservations and
// forwards them to the business inbox.
type NotifyHandler struct {
	Mailer      mailer.Mailer
	NotifyEmail string
}

func NewNotifyHandler(m mailer.Mailer, notifyEmail string) *NotifyHandler {
	return &NotifyHandler{Mailer: m, NotifyEmail: notifyEmail}
}

// CreateOrder mails a structured order to the notification address.
func (h *NotifyHandler) CreateOrder(c *gin.Context) {
	logger := utils.GetLogger()

	var order models.OrderRequest
	if err := c.ShouldBindJSON(&order); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid order", err.Error())
		return
	}

	if h.NotifyEmail == "" {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "CLIENT_NOTIFICATION_EMAIL non configuré."})
		return
	}

	body := buildOrderEmailBody(order)
	if err := h.Mailer.Send(c.Request.Context(), h.NotifyEmail, "Nouvelle commande", body); err != nil {
		logger.Error("failed to send order email", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to send order email", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateReservation mails a structured reservation to the notification address.
func (h *NotifyHandler) CreateReservation(c *gin.Context) {
	logger := utils.GetLogger()

	var resa models.ReservationRequest
	if err := c.ShouldBindJSON(&resa); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation", err.Error())
		return
	}

	if h.NotifyEmail == "" {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "CLIENT_NOTIFICATION_EMAIL non configuré."})
		return
	}

	body := buildReservationEmailBody(resa)
	if err := h.Mailer.Send(c.Request.Context(), h.NotifyEmail, "Nouvelle réservation", body); err != nil {
		logger.Error("failed to send reservation email", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to send reservation email", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func buildOrderEmailBody(o models.OrderRequest) string {
	lines := []string{
		"Nouvelle commande :",
		fmt.Sprintf("Client : %s", orDash(o.CustomerName)),
		fmt.Sprintf("Téléphone : %s", orDash(o.CustomerPhone)),
		fmt.Sprintf("Email : %s", orDash(o.CustomerEmail)),
		"",
		"Articles :",
	}
	for _, it := range o.Items {
		line := fmt.Sprintf(" - %d x %s", it.Quantity, it.Name)
		if it.Notes != "" {
			line += fmt.Sprintf(" (notes: %s)", it.Notes)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", fmt.Sprintf("Mode : %s", o.Delivery))
	if o.Address != "" {
		lines = append(lines, fmt.Sprintf("Adresse : %s", o.Address))
	}
	if o.DesiredTime != "" {
		lines = append(lines, fmt.Sprintf("Heure souhaitée : %s", o.DesiredTime))
	}
	if o.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes : %s", o.Notes))
	}
	return strings.Join(lines, "\n")
}

func buildReservationEmailBody(r models.ReservationRequest) string {
	lines := []string{
		"Nouvelle réservation :",
		fmt.Sprintf("Client : %s", orDash(r.CustomerName)),
		fmt.Sprintf("Téléphone : %s", orDash(r.CustomerPhone)),
		fmt.Sprintf("Email : %s", orDash(r.CustomerEmail)),
		"",
		fmt.Sprintf("Personnes : %d", r.People),
		fmt.Sprintf("Date : %s", r.Date),
		fmt.Sprintf("Heure : %s", r.Time),
	}
	if r.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes : %s", r.Notes))
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
