package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"formflow/internal/model"
	"formflow/internal/schema"
	"formflow/internal/service"
	"formflow/internal/transport/rest/middleware"
)

// FormHandler handles form authoring endpoints
type FormHandler struct {
	formSvc *service.FormService
	regSvc  *service.RegistrationService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService, regSvc *service.RegistrationService) *FormHandler {
	return &FormHandler{formSvc: formSvc, regSvc: regSvc}
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sch model.FormSchema
	if err := json.NewDecoder(r.Body).Decode(&sch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	organizerID := middleware.GetOrganizerID(r.Context())
	id, result, err := h.formSvc.Create(r.Context(), organizerID, sch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !result.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"warnings": result.Warnings,
	})
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	organizerID := middleware.GetOrganizerID(r.Context())
	forms, err := h.formSvc.GetByOrganizerID(r.Context(), organizerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// Get handles GET /v1/forms/{id}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// GetSchema handles GET /v1/forms/{id}/schema
func (h *FormHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}
	writeJSON(w, http.StatusOK, schema.FromPayload(&form.Payload))
}

// UpdateSchema handles PUT /v1/forms/{id}/schema
func (h *FormHandler) UpdateSchema(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	var sch model.FormSchema
	if err := json.NewDecoder(r.Body).Decode(&sch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.formSvc.UpdateSchema(r.Context(), form.ID, sch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !result.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /v1/forms/{id}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}
	if err := h.formSvc.Delete(r.Context(), form.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPayload handles GET /v1/forms/{id}/payload (public, serves the fill UI)
func (h *FormHandler) GetPayload(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]
	form, err := h.formSvc.GetByID(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	writeJSON(w, http.StatusOK, form.Payload)
}

// ListRegistrations handles GET /v1/forms/{id}/registrations
func (h *FormHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}
	regs, err := h.regSvc.GetByFormID(r.Context(), form.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// AddStep handles POST /v1/forms/{id}/steps
func (h *FormHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var key string
	updated, err := h.formSvc.ApplyEdit(r.Context(), form.ID, func(s *model.FormSchema) error {
		key = schema.AddStep(s, req.Title).Key
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"key": key, "schema": updated})
}

// UpdateStep handles PATCH /v1/forms/{id}/steps/{key}
func (h *FormHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	var upd schema.StepUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := mux.Vars(r)["key"]
	updated, err := h.formSvc.ApplyEdit(r.Context(), form.ID, func(s *model.FormSchema) error {
		return schema.UpdateStep(s, key, upd)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemoveStep handles DELETE /v1/forms/{id}/steps/{key}
func (h *FormHandler) RemoveStep(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	key := mux.Vars(r)["key"]
	updated, err := h.formSvc.ApplyEdit(r.Context(), form.ID, func(s *model.FormSchema) error {
		if !schema.RemoveStep(s, key) {
			return errNotFound("step")
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// AddField handles POST /v1/forms/{id}/steps/{key}/fields
func (h *FormHandler) AddField(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	var field model.FormField
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := mux.Vars(r)["key"]
	var name string
	updated, err := h.formSvc.ApplyEdit(r.Context(), form.ID, func(s *model.FormSchema) error {
		added, err := schema.AddField(s, key, field)
		if err != nil {
			return err
		}
		name = added.Name
		return nil
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"name": name, "schema": updated})
}

// UpdateField handles PATCH /v1/forms/{id}/fields/{name}
func (h *FormHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	var upd schema.FieldUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := mux.Vars(r)["name"]
	var newName string
	updated, err := h.formSvc.ApplyEdit(r.Context(), form.ID, func(s *model.FormSchema) error {
		n, err := schema.UpdateField(s, name, upd)
		if err != nil {
			return err
		}
		newName = n
		return nil
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": newName, "schema": updated})
}

// RemoveField handles DELETE /v1/forms/{id}/fields/{name}
func (h *FormHandler) RemoveField(w http.ResponseWriter, r *http.Request) {
	form := h.ownedForm(w, r)
	if form == nil {
		return
	}

	name := mux.Vars(r)["name"]
	updated, err := h.formSvc.ApplyEdit(r.Context(), form.ID, func(s *model.FormSchema) error {
		if !schema.RemoveField(s, name) {
			return errNotFound("field")
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ownedForm loads the form from the path and enforces ownership; on failure
// it writes the error response and returns nil
func (h *FormHandler) ownedForm(w http.ResponseWriter, r *http.Request) *model.Form {
	formID := mux.Vars(r)["id"]
	form, err := h.formSvc.GetByID(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return nil
	}
	if form.OrganizerID != middleware.GetOrganizerID(r.Context()) {
		writeError(w, http.StatusForbidden, "not your form")
		return nil
	}
	return form
}

type errNotFound string

func (e errNotFound) Error() string { return string(e) + " not found" }
