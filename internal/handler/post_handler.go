package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mddanishyusuf/listyouridea/internal/service"
)

type LikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// GetMyPosts returns the caller's submissions, optionally filtered by
// status (draft, scheduled, published).
func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	posts, err := h.PostService.GetMyPosts(r.Context(), user.UserID, r.URL.Query().Get("status"))
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), user.UserID, req)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

// GetPublicFeed lists published posts, newest publication first. No auth.
func (h *Handlers) GetPublicFeed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	posts, err := h.PostService.GetPublicFeed(r.Context(), r.URL.Query().Get("category"), limit, page)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	postID := mux.Vars(r)["id"]

	liked, count, err := h.PostService.ToggleLike(r.Context(), postID, user.UserID)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	WriteSuccess(w, LikeResponse{Liked: liked, LikesCount: count}, http.StatusOK)
}
