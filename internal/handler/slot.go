package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

type SlotHandler struct {
	slots *service.SlotService
}

func NewSlotHandler(slots *service.SlotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

type slotRequest struct {
	CoachID   string `json:"coach_id" binding:"required"`
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // RFC3339
	EndTime   string `json:"end_time" binding:"required"`   // RFC3339
}

func (in *slotRequest) toInput() (service.SlotInput, error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return service.SlotInput{}, err
	}
	start, err := parseRFC3339UTC(in.StartTime)
	if err != nil {
		return service.SlotInput{}, err
	}
	end, err := parseRFC3339UTC(in.EndTime)
	if err != nil {
		return service.SlotInput{}, err
	}
	return service.SlotInput{
		CoachID:   in.CoachID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// GET /api/coach-available-slots
func (h *SlotHandler) List(c *gin.Context) {
	slots, err := h.slots.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GET /api/coach-available-slots/:id
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.slots.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// POST /api/coach-available-slots
func (h *SlotHandler) Create(c *gin.Context) {
	var in slotRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := in.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD, times must be RFC3339"})
		return
	}

	slot, err := h.slots.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// PUT /api/coach-available-slots/:id
func (h *SlotHandler) Update(c *gin.Context) {
	var in slotRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := in.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD, times must be RFC3339"})
		return
	}

	slot, err := h.slots.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// DELETE /api/coach-available-slots/:id
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.slots.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
