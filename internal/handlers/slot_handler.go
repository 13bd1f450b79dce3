package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MeetupServices/meetup-scheduler/internal/audit"
	"github.com/MeetupServices/meetup-scheduler/internal/dto"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/httpresp"
	"github.com/MeetupServices/meetup-scheduler/internal/middleware"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSlotHandler(db *gorm.DB, audit *audit.Dispatcher) *SlotHandler {
	return &SlotHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Start           time.Time `json:"start" binding:"required"`
	End             time.Time `json:"end" binding:"required"`
	DurationMinutes int       `json:"duration_minutes"`
	Topic           string    `json:"topic"`
	MeetingLink     string    `json:"meeting_link"`
}

type UpdateSlotRequest struct {
	Start           *time.Time `json:"start"`
	End             *time.Time `json:"end"`
	DurationMinutes *int       `json:"duration_minutes"`
	Topic           *string    `json:"topic"`
	MeetingLink     *string    `json:"meeting_link"`
	IsAvailable     *bool      `json:"is_available"`
}

// ======================================================
// HELPERS
// ======================================================

func validateSlotTimes(start, end, now time.Time) error {
	if start.Before(now) {
		return httperr.ErrBusiness("start_in_past")
	}
	if !start.Before(end) {
		return httperr.ErrBusiness("start_after_end")
	}
	return nil
}

// accepts the same truthy tokens the listing filter always accepted
func isAvailableFilterOn(v string) bool {
	switch v {
	case "true", "True", "1":
		return true
	}
	return false
}

// ======================================================
// CREATE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid slot payload.")
		return
	}

	if err := validateSlotTimes(req.Start, req.End, time.Now()); err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Cannot create slots in the past.")
		return
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = int(req.End.Sub(req.Start) / time.Minute)
	}

	// Teacher always comes from the caller, never from the payload.
	slot := models.TimeSlot{
		TeacherID:       teacherID,
		Start:           req.Start,
		End:             req.End,
		DurationMinutes: duration,
		Topic:           req.Topic,
		MeetingLink:     req.MeetingLink,
		IsAvailable:     true,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_slot", "Could not create slot.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &teacherID,
		Action:   "slot_created",
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	h.db.Preload("Teacher").First(&slot, slot.ID)
	httpresp.Created(c, dto.FromSlot(&slot))
}

// ======================================================
// LIST / RETRIEVE
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	q := h.db.Model(&models.TimeSlot{}).Preload("Teacher")

	if teacher := c.Query("teacher"); teacher != "" {
		q = q.Where("teacher_id = ?", teacher)
	}
	if isAvailableFilterOn(c.Query("available")) {
		q = q.Where("is_available = ?", true)
	}

	var slots []models.TimeSlot
	if err := q.Order("start ASC").Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Could not list slots.")
		return
	}

	httpresp.List(c, dto.FromSlots(slots))
}

func (h *SlotHandler) Retrieve(c *gin.Context) {
	var slot models.TimeSlot
	if err := h.db.Preload("Teacher").First(&slot, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	httpresp.OK(c, dto.FromSlot(&slot))
}

// ======================================================
// UPDATE
// ======================================================

func (h *SlotHandler) Update(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var slot models.TimeSlot
	if err := h.db.First(&slot, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid slot payload.")
		return
	}

	if req.Start != nil && req.Start.Before(time.Now()) {
		httperr.BadRequest(c, "start_in_past", "Cannot move slots to the past.")
		return
	}

	if req.Start != nil {
		slot.Start = *req.Start
	}
	if req.End != nil {
		slot.End = *req.End
	}
	if !slot.Start.Before(slot.End) {
		httperr.BadRequest(c, "start_after_end", "Slot must end after it starts.")
		return
	}
	if req.DurationMinutes != nil {
		slot.DurationMinutes = *req.DurationMinutes
	}
	if req.Topic != nil {
		slot.Topic = *req.Topic
	}
	if req.MeetingLink != nil {
		slot.MeetingLink = *req.MeetingLink
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_update_slot", "Could not update slot.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &teacherID,
		Action:   "slot_updated",
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	h.db.Preload("Teacher").First(&slot, slot.ID)
	httpresp.OK(c, dto.FromSlot(&slot))
}

// ======================================================
// DELETE
// ======================================================

func (h *SlotHandler) Delete(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var slot models.TimeSlot
	if err := h.db.First(&slot, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	// Bookings on this slot go with it via the FK cascade.
	if err := h.db.Delete(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_slot", "Could not delete slot.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &teacherID,
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// MARK UNAVAILABLE
// ======================================================

func (h *SlotHandler) MarkUnavailable(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var slot models.TimeSlot
	if err := h.db.First(&slot, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	slot.IsAvailable = false
	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_update_slot", "Could not update slot.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &teacherID,
		Action:   "slot_marked_unavailable",
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	httpresp.OK(c, gin.H{"status": "slot marked unavailable"})
}
