package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"formflow/internal/service"
	"formflow/internal/transport/rest/middleware"
)

// RegistrationHandler handles the registrant fill flow
type RegistrationHandler struct {
	regSvc *service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(regSvc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Start handles POST /v1/forms/{id}/registrations (public)
func (h *RegistrationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Guardian map[string]any `json:"guardian"`
	}
	if r.Body != nil {
		// An empty body just means no guardian details yet
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	formID := mux.Vars(r)["id"]
	resp, err := h.regSvc.Start(r.Context(), formID, req.Guardian)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// SetAnswer handles PUT /v1/registrations/{id}/answers
func (h *RegistrationHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	var req service.SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.regSvc.SetAnswer(r.Context(), regID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SetGuardian handles PUT /v1/registrations/{id}/guardian
func (h *RegistrationHandler) SetGuardian(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	var guardian map[string]any
	if err := json.NewDecoder(r.Body).Decode(&guardian); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.regSvc.SetGuardian(r.Context(), regID, guardian)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// AddParticipant handles POST /v1/registrations/{id}/participants
func (h *RegistrationHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	var req struct {
		Profile map[string]any `json:"profile"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	participant, state, err := h.regSvc.AddParticipant(r.Context(), regID, req.Profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"participant": participant,
		"visibility":  state,
	})
}

// RemoveParticipant handles DELETE /v1/registrations/{id}/participants/{pid}
func (h *RegistrationHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	state, err := h.regSvc.RemoveParticipant(r.Context(), regID, mux.Vars(r)["pid"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Navigate handles POST /v1/registrations/{id}/navigate
func (h *RegistrationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.regSvc.Navigate(r.Context(), regID, req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Visibility handles GET /v1/registrations/{id}/visibility
func (h *RegistrationHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	state, err := h.regSvc.Visibility(r.Context(), regID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Submit handles POST /v1/registrations/{id}/submit
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	regID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	reg, missing, err := h.regSvc.Submit(r.Context(), regID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": missing})
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// authorized checks that the token's registration matches the path
func (h *RegistrationHandler) authorized(w http.ResponseWriter, r *http.Request) (string, bool) {
	regID := mux.Vars(r)["id"]
	if middleware.GetRegistrationID(r.Context()) != regID {
		writeError(w, http.StatusForbidden, "token does not match registration")
		return "", false
	}
	return regID, true
}
