package service

import (
	"context"
	"fmt"
	"log"

	"formflow/internal/cache"
	"formflow/internal/model"
	"formflow/internal/repository"
	"formflow/internal/schema"
)

// FormService handles form authoring: CRUD over forms and the
// validate/normalize/serialize pipeline between the authoring schema and the
// persisted payload.
type FormService struct {
	formRepo    repository.FormRepo
	schemaCache cache.SchemaCache
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, schemaCache cache.SchemaCache) *FormService {
	return &FormService{
		formRepo:    formRepo,
		schemaCache: schemaCache,
	}
}

// Create validates and persists a new form. Validation errors come back in
// the result, not as an error; the form is only stored when the result is OK.
func (s *FormService) Create(ctx context.Context, organizerID string, sch model.FormSchema) (string, schema.ValidationResult, error) {
	result := schema.Validate(&sch)
	if !result.OK() {
		return "", result, nil
	}

	normalized := schema.Normalize(sch)
	form := &model.Form{
		OrganizerID: organizerID,
		Payload:     *schema.BuildPayload(&normalized),
	}

	id, err := s.formRepo.Create(ctx, form)
	if err != nil {
		return "", result, fmt.Errorf("failed to create form: %w", err)
	}
	return id, result, nil
}

// UpdateSchema validates, normalizes and replaces a form's schema, then
// invalidates the cached payload
func (s *FormService) UpdateSchema(ctx context.Context, formID string, sch model.FormSchema) (schema.ValidationResult, error) {
	result := schema.Validate(&sch)
	if !result.OK() {
		return result, nil
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return result, fmt.Errorf("failed to load form: %w", err)
	}
	if form == nil {
		return result, fmt.Errorf("form not found")
	}

	normalized := schema.Normalize(sch)
	form.Payload = *schema.BuildPayload(&normalized)
	if err := s.formRepo.Update(ctx, form); err != nil {
		return result, fmt.Errorf("failed to update form: %w", err)
	}

	if err := s.schemaCache.Invalidate(ctx, formID); err != nil {
		log.Printf("Warning: failed to invalidate schema cache for %s: %v", formID, err)
	}
	return result, nil
}

// ApplyEdit loads a form's schema, applies an authoring mutation and
// persists the normalized result. Editor mutations keep names unique and
// spans clamped on their own, so full validation waits until publish.
func (s *FormService) ApplyEdit(ctx context.Context, formID string, edit func(*model.FormSchema) error) (*model.FormSchema, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	if form == nil {
		return nil, fmt.Errorf("form not found")
	}

	sch := schema.FromPayload(&form.Payload)
	if err := edit(sch); err != nil {
		return nil, err
	}

	normalized := schema.Normalize(*sch)
	form.Payload = *schema.BuildPayload(&normalized)
	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	if err := s.schemaCache.Invalidate(ctx, formID); err != nil {
		log.Printf("Warning: failed to invalidate schema cache for %s: %v", formID, err)
	}
	return &normalized, nil
}

// GetByID retrieves a form envelope by ID
func (s *FormService) GetByID(ctx context.Context, id string) (*model.Form, error) {
	return s.formRepo.GetByID(ctx, id)
}

// GetByOrganizerID retrieves all forms for an organizer
func (s *FormService) GetByOrganizerID(ctx context.Context, organizerID string) ([]*model.Form, error) {
	return s.formRepo.GetByOrganizerID(ctx, organizerID)
}

// Delete deletes a form and its cached payload
func (s *FormService) Delete(ctx context.Context, id string) error {
	if err := s.formRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.schemaCache.Invalidate(ctx, id); err != nil {
		log.Printf("Warning: failed to invalidate schema cache for %s: %v", id, err)
	}
	return nil
}

// LoadSchema returns the authoring representation of a form's schema,
// serving the wire payload from cache when possible
func (s *FormService) LoadSchema(ctx context.Context, formID string) (*model.FormSchema, error) {
	payload, err := s.schemaCache.Get(ctx, formID)
	if err != nil {
		log.Printf("Warning: schema cache read failed for %s: %v", formID, err)
	}

	if payload == nil {
		form, err := s.formRepo.GetByID(ctx, formID)
		if err != nil {
			return nil, fmt.Errorf("failed to load form: %w", err)
		}
		if form == nil {
			return nil, nil
		}
		payload = &form.Payload
		if err := s.schemaCache.Set(ctx, formID, payload); err != nil {
			log.Printf("Warning: schema cache write failed for %s: %v", formID, err)
		}
	}

	return schema.FromPayload(payload), nil
}
