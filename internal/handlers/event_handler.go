package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brennosantos/eventos/internal/helpers"
	"github.com/brennosantos/eventos/internal/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	startTime, err := time.Parse(time.RFC3339, c.PostForm("start_time"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format.")
		return
	}

	capacity, err := helpers.StringToInt(c.PostForm("capacity"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid capacity.")
		return
	}

	unitPrice, err := helpers.StringToAmount(c.PostForm("unit_price"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid unit price.")
		return
	}

	couponDiscount, err := helpers.StringToAmount(c.PostForm("coupon_discount"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid coupon discount.")
		return
	}

	input := services.CreateEventInput{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Category:       c.PostForm("category"),
		Location:       c.PostForm("location"),
		StartTime:      startTime,
		Capacity:       capacity,
		UnitPrice:      unitPrice,
		CouponCode:     c.PostForm("coupon_code"),
		CouponDiscount: couponDiscount,
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		input.BannerPath = bannerPath
	}

	event, err := h.events.Create(c.Request.Context(), userID.(uuid.UUID), input)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func (h *EventHandler) Get(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.events.Get(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) List(c *gin.Context) {
	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || pageNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limitNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	events, err := h.events.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	total := len(events)
	start := (pageNum - 1) * limitNum
	if start > total {
		start = total
	}
	end := start + limitNum
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events[start:end],
		"total":       total,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (total + limitNum - 1) / limitNum,
	})
}

func (h *EventHandler) MyEvents(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	events, err := h.events.ListByOrganizer(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) Cancel(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	if err := h.events.Cancel(c.Request.Context(), eventID, userID.(uuid.UUID)); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event cancelled. All related orders were cancelled as well.",
	})
}
