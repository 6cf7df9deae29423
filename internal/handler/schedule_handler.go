package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/service"
)

type WeeksResponse struct {
	Weeks []service.WeekSummary `json:"weeks"`
}

type BookRequest struct {
	PostID        string `json:"postId" validate:"required"`
	WeekStartDate string `json:"weekStartDate" validate:"required"`
	SlotNumber    int    `json:"slotNumber" validate:"required"`
}

type VerifyPaymentRequest struct {
	SessionID  string `json:"sessionId" validate:"required"`
	ScheduleID string `json:"scheduleId" validate:"required"`
	SlotNumber int    `json:"slotNumber" validate:"required"`
	PostID     string `json:"postId" validate:"required"`
}

type CancelPaymentRequest struct {
	ScheduleID string `json:"scheduleId" validate:"required"`
	SlotNumber int    `json:"slotNumber" validate:"required"`
	PostID     string `json:"postId" validate:"required"`
}

type DebugScheduleResponse struct {
	ScheduleID     string    `json:"id"`
	WeekStart      time.Time `json:"weekStart"`
	WeekEnd        time.Time `json:"weekEnd"`
	AvailableSlots int       `json:"availableSlots"`
	TotalSlots     int       `json:"totalSlots"`
}

// GetWeeks lists the next bookable weeks, materializing their schedules on
// first request.
func (h *Handlers) GetWeeks(w http.ResponseWriter, r *http.Request) {
	if _, err := h.currentUser(r); err != nil {
		writeErrorFor(w, err)
		return
	}

	weeks, err := h.ScheduleService.ListUpcomingWeeks(r.Context())
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, WeeksResponse{Weeks: weeks}, http.StatusOK)
}

// BookSlot reserves a slot for a draft post and returns the checkout
// redirect. The post stays draft until the payment callback confirms.
func (h *Handlers) BookSlot(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStartDate)
	if err != nil {
		WriteError(w, "Invalid weekStartDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	checkout, err := h.BookingService.BookSlot(r.Context(), user, req.PostID, weekStart, req.SlotNumber)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, checkout, http.StatusOK)
}

// VerifyPayment is the success callback: it checks the session with the
// payment provider and finalizes the reservation. Safe to call again with
// the same arguments.
func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	confirmation, err := h.BookingService.ConfirmPayment(r.Context(), user.UserID, req.SessionID, req.ScheduleID, req.SlotNumber, req.PostID)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, confirmation, http.StatusOK)
}

// CancelPayment is the cancel callback: it releases the held slot and
// restores the post to draft. Calling it for an already-released slot is a
// no-op success.
func (h *Handlers) CancelPayment(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	var req CancelPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.BookingService.CancelPending(r.Context(), user.UserID, req.ScheduleID, req.SlotNumber, req.PostID)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Slot released successfully"}, http.StatusOK)
}

func (h *Handlers) DebugSchedules(w http.ResponseWriter, r *http.Request) {
	if _, err := h.currentUser(r); err != nil {
		writeErrorFor(w, err)
		return
	}

	schedules, err := h.ScheduleService.ListSchedules(r.Context())
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	out := make([]DebugScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, DebugScheduleResponse{
			ScheduleID:     schedules[i].ScheduleID,
			WeekStart:      schedules[i].WeekStartDate,
			WeekEnd:        schedules[i].WeekEndDate,
			AvailableSlots: schedules[i].AvailableSlots(),
			TotalSlots:     models.SlotsPerWeek,
		})
	}

	WriteSuccess(w, map[string]interface{}{
		"count":     len(out),
		"schedules": out,
	}, http.StatusOK)
}
