package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/brennosantos/eventos/internal/helpers"
	"github.com/brennosantos/eventos/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type CreateOrderRequest struct {
	EventID           uuid.UUID `json:"event_id" binding:"required"`
	ParticipantNames  []string  `json:"participant_names" binding:"required"`
	ParticipantEmails []string  `json:"participant_emails" binding:"required"`
	CouponCode        string    `json:"coupon_code"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	order, err := h.orders.Create(c.Request.Context(), services.CreateOrderInput{
		UserID:            userID.(uuid.UUID),
		EventID:           req.EventID,
		ParticipantNames:  req.ParticipantNames,
		ParticipantEmails: req.ParticipantEmails,
		CouponCode:        req.CouponCode,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order placed successfully.",
		"order_id":     order.ID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
		"tickets":      order.Tickets,
	})
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), userID.(uuid.UUID), orderID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled. Tickets were returned to the event inventory.",
		"status":  order.Status,
	})
}

func (h *OrderHandler) Preview(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	quantity, err := helpers.StringToInt(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid quantity.")
		return
	}

	quote, err := h.orders.Preview(c.Request.Context(), eventID, quantity, c.Query("coupon"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *OrderHandler) TicketQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	ticket, err := h.orders.Ticket(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if ticket.Order == nil || ticket.Order.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "This ticket belongs to another user.")
		return
	}

	qrData := helpers.TicketQRPayload(ticket, os.Getenv("QR_SECRET_KEY"))
	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error generating QR code.")
		return
	}

	c.Header("Content-Disposition", "inline; filename=ticket-"+ticket.Serial+".png")
	c.Data(http.StatusOK, "image/png", png)
}

type ValidateTicketRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

func (h *OrderHandler) ValidateTicket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	ticketID, err := helpers.ExtractTicketID(req.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code data.")
		return
	}

	ticket, err := h.orders.Ticket(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if !helpers.ValidateTicketSignature(ticket, req.QRData, os.Getenv("QR_SECRET_KEY")) {
		helpers.RespondWithError(c, http.StatusBadRequest, "QR code signature does not match.")
		return
	}

	ticket, err = h.orders.CheckInTicket(c.Request.Context(), userID.(uuid.UUID), ticketID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Ticket validated successfully.",
		"serial":           ticket.Serial,
		"participant_name": ticket.ParticipantName,
	})
}
