package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/service"
)

// Profile upserts the caller's account on sign-in: first request creates
// the user from the provider's claims, later requests return the stored
// profile.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("uid").(string)
	if !ok || uid == "" {
		writeErrorFor(w, models.ErrUnauthorized)
		return
	}

	var req service.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.UID = uid

	if req.Email == "" {
		if email, ok := r.Context().Value("email").(string); ok {
			req.Email = email
		}
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetOrCreateProfile(r.Context(), req)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}
