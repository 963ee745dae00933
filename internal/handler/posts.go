package handler

import (
	"net/http"
	"strconv"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/avilkin/blog-service/internal/feed"
	"github.com/avilkin/blog-service/internal/middleware"
	"github.com/gorilla/mux"
)

// CreatePost handles multipart post creation. The author comes from the
// session claims, never from the form.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.respondError(w, auth.ErrTokenMissing)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	cover, err := h.saveCover(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	post, err := h.svc.CreatePost(r.Context(), claims.UserID,
		r.FormValue("title"), r.FormValue("summary"), r.FormValue("content"), cover)
	if err != nil {
		h.discardCover(cover)
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, post)
}

// UpdatePost handles multipart post edits, gated on authorship.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.respondError(w, auth.ErrTokenMissing)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	postID, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid post id")
		return
	}

	cover, err := h.saveCover(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), postID, claims.UserID,
		r.FormValue("title"), r.FormValue("summary"), r.FormValue("content"), cover)
	if err != nil {
		h.discardCover(cover)
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, post)
}

// saveCover stores the optional "file" form part and returns its public
// path, or "" when no file was uploaded.
func (h *Handler) saveCover(r *http.Request) (string, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		return "", nil
	}
	return h.uploads.Save(r.MultipartForm.File["file"][0])
}

// discardCover deletes a cover that was written to disk for a request that
// then failed, so rejected posts leave no orphaned files behind.
func (h *Handler) discardCover(cover string) {
	if cover == "" {
		return
	}
	if err := h.uploads.Remove(cover); err != nil {
		h.log.Errorf("Failed to remove orphaned cover %s: %v", cover, err)
	}
}

// ListPosts returns the newest posts, optionally filtered by ?search=.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.SearchPosts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, posts)
}

// GetPost returns a single post with its author's username.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, post)
}

// Feed renders the newest posts as RSS.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.SearchPosts(r.Context(), "")
	if err != nil {
		h.respondError(w, err)
		return
	}

	out, err := feed.Render(posts, h.cfg.PublicURL)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write(out); err != nil {
		h.log.Errorf("Failed to write feed response: %v", err)
	}
}
