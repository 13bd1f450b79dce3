package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MeetupServices/meetup-scheduler/internal/audit"
	domain "github.com/MeetupServices/meetup-scheduler/internal/domain/booking"
	"github.com/MeetupServices/meetup-scheduler/internal/dto"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/httpresp"
	"github.com/MeetupServices/meetup-scheduler/internal/middleware"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"github.com/MeetupServices/meetup-scheduler/internal/policy"
	"github.com/MeetupServices/meetup-scheduler/internal/storage"
	ucBooking "github.com/MeetupServices/meetup-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	cancelUC *ucBooking.CancelBooking
	listUC   *ucBooking.ListBookings

	repo        domain.Repository
	attachments *storage.AttachmentStore
	audit       *audit.Dispatcher
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	listUC *ucBooking.ListBookings,
	repo domain.Repository,
	attachments *storage.AttachmentStore,
	audit *audit.Dispatcher,
) *BookingHandler {
	return &BookingHandler{
		createUC:    createUC,
		cancelUC:    cancelUC,
		listUC:      listUC,
		repo:        repo,
		attachments: attachments,
		audit:       audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SlotID      uint   `json:"slot_id" binding:"required"`
	Purpose     string `json:"purpose"`
	MeetingMode string `json:"meeting_mode"`
	MeetingLink string `json:"meeting_link"`
}

type UpdateBookingRequest struct {
	Purpose     *string `json:"purpose"`
	MeetingMode *string `json:"meeting_mode"`
	MeetingLink *string `json:"meeting_link"`
}

// ======================================================
// HELPERS
// ======================================================

func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return 0, false
	}
	return uint(id), true
}

// loads the booking and hides it behind a 404 when outside the
// caller's visible set, same as the list filters
func (h *BookingHandler) visibleBooking(c *gin.Context) (*models.Booking, bool) {
	id, ok := bookingID(c)
	if !ok {
		return nil, false
	}

	b, err := h.repo.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return nil, false
	}

	if !policy.CanViewBooking(middleware.CallerIdentity(c), b) {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return nil, false
	}

	return b, true
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	studentID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudentID:   studentID,
		SlotID:      req.SlotID,
		Purpose:     req.Purpose,
		MeetingMode: req.MeetingMode,
		MeetingLink: req.MeetingLink,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_not_found"):
			httperr.BadRequest(c, "slot_not_found", "Slot does not exist.")
		case httperr.IsBusiness(err, "slot_unavailable"):
			httperr.BadRequest(c, "slot_unavailable", "Slot already booked.")
		default:
			httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		}
		return
	}

	httpresp.Created(c, dto.FromBooking(b))
}

// ======================================================
// LIST / RETRIEVE
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.listUC.Execute(c.Request.Context(), middleware.CallerIdentity(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, dto.FromBookings(bookings))
}

func (h *BookingHandler) Retrieve(c *gin.Context) {
	b, ok := h.visibleBooking(c)
	if !ok {
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	b, ok := h.visibleBooking(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	if req.Purpose != nil {
		b.Purpose = *req.Purpose
	}
	if req.MeetingMode != nil {
		b.MeetingMode = *req.MeetingMode
	}
	if req.MeetingLink != nil {
		b.MeetingLink = *req.MeetingLink
	}

	if err := h.repo.UpdateBooking(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update booking.")
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}

func (h *BookingHandler) Delete(c *gin.Context) {
	b, ok := h.visibleBooking(c)
	if !ok {
		return
	}

	callerID := middleware.CallerIdentity(c).UserID

	if err := h.repo.DeleteBooking(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "Could not delete booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), middleware.CallerIdentity(c), id)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "not_allowed"):
			httperr.Forbidden(c, "not_allowed", "Only the booking's student or the slot's teacher can cancel.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Booking cannot be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel booking.")
		}
		return
	}

	httpresp.OK(c, gin.H{
		"status":  "booking cancelled",
		"booking": dto.FromBooking(b),
	})
}

// ======================================================
// ATTACHMENT
// ======================================================

func (h *BookingHandler) UploadAttachment(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.repo.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	caller := middleware.CallerIdentity(c)
	if !policy.CanAttachToBooking(caller, b) {
		httperr.Forbidden(c, "not_allowed", "Only the booking's student can attach files.")
		return
	}

	if !h.attachments.Enabled() {
		httperr.BadRequest(c, "attachments_disabled", "Attachment storage is not configured.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Multipart field 'file' is required.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read uploaded file.")
		return
	}
	defer f.Close()

	key, err := h.attachments.Put(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_store_attachment", "Could not store attachment.")
		return
	}

	b.AttachmentKey = key
	if err := h.repo.UpdateBooking(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "booking_attachment_uploaded",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	httpresp.OK(c, dto.FromBooking(b))
}
