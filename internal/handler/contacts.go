package handler

import (
	"encoding/json"
	"net/http"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact stores a contact-form message. Intentionally not gated on a
// session, matching the public contact form.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.svc.SubmitContact(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Your message has been sent successfully!",
		"contact": contact,
	})
}

// DeleteContact removes the newest contact record for ?email=.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.respondErrorMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	contact, err := h.svc.DeleteContact(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "contact deleted",
		"contact": contact,
	})
}
