package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"formflow/internal/cache"
	"formflow/internal/engine"
	"formflow/internal/model"
	"formflow/internal/repository"
	"formflow/internal/schema"
)

// RegistrationService drives the fill flow: drafts live in Redis, every
// answer edit recomputes visibility through the engine, and submission
// validates required visible fields before persisting to Mongo.
type RegistrationService struct {
	formSvc     *FormService
	regRepo     repository.RegistrationRepo
	regCache    cache.RegistrationCache
	authSvc     *AuthService
	broadcaster Broadcaster
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	formSvc *FormService,
	regRepo repository.RegistrationRepo,
	regCache cache.RegistrationCache,
	authSvc *AuthService,
) *RegistrationService {
	return &RegistrationService{
		formSvc:  formSvc,
		regRepo:  regRepo,
		regCache: regCache,
		authSvc:  authSvc,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *RegistrationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartResponse is returned when a registration draft is opened
type StartResponse struct {
	RegistrationID string                 `json:"registrationId"`
	Token          string                 `json:"token"`
	Visibility     *model.VisibilityState `json:"visibility"`
}

// Start opens a new registration draft against a form
func (s *RegistrationService) Start(ctx context.Context, formID string, guardian map[string]any) (*StartResponse, error) {
	sch, err := s.formSvc.LoadSchema(ctx, formID)
	if err != nil {
		return nil, err
	}
	if sch == nil {
		return nil, fmt.Errorf("form not found")
	}

	if guardian == nil {
		guardian = map[string]any{}
	}
	now := time.Now()
	reg := &model.Registration{
		ID:                 "reg_" + uuid.New().String()[:8],
		FormID:             formID,
		Program:            sch.Program,
		Status:             model.RegistrationDraft,
		Guardian:           guardian,
		Participants:       []model.Participant{},
		Answers:            map[string]any{},
		ParticipantAnswers: map[string]map[string]any{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	state := s.visibilityState(sch, reg)
	reg.CurrentStep = state.CurrentStep

	if err := s.regCache.Set(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	token, err := s.authSvc.GenerateRegistrantToken(formID, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOrganizer(formID, "registration_started", map[string]string{
			"registrationId": reg.ID,
		})
	}

	return &StartResponse{
		RegistrationID: reg.ID,
		Token:          token,
		Visibility:     state,
	}, nil
}

// SetAnswerRequest mutates one answer. ParticipantIndex nil targets the
// global answer bag; otherwise the given participant's own answers.
type SetAnswerRequest struct {
	Field            string `json:"field"`
	Value            any    `json:"value"`
	ParticipantIndex *int   `json:"participantIndex,omitempty"`
}

// SetAnswer records one answer, recomputes visibility and re-validates the
// current step so the client is never left on a hidden page
func (s *RegistrationService) SetAnswer(ctx context.Context, registrationID string, req SetAnswerRequest) (*model.VisibilityState, error) {
	if strings.TrimSpace(req.Field) == "" {
		return nil, fmt.Errorf("field name is required")
	}

	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if req.ParticipantIndex == nil {
		if reg.Answers == nil {
			reg.Answers = map[string]any{}
		}
		reg.Answers[req.Field] = req.Value
	} else {
		i := *req.ParticipantIndex
		if i < 0 || i >= len(reg.Participants) {
			return nil, fmt.Errorf("participant index %d out of range", i)
		}
		pid := reg.Participants[i].ID
		if reg.ParticipantAnswers == nil {
			reg.ParticipantAnswers = map[string]map[string]any{}
		}
		if reg.ParticipantAnswers[pid] == nil {
			reg.ParticipantAnswers[pid] = map[string]any{}
		}
		reg.ParticipantAnswers[pid][req.Field] = req.Value
	}

	return s.refresh(ctx, reg, sch)
}

// SetGuardian replaces the guardian record
func (s *RegistrationService) SetGuardian(ctx context.Context, registrationID string, guardian map[string]any) (*model.VisibilityState, error) {
	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if guardian == nil {
		guardian = map[string]any{}
	}
	reg.Guardian = guardian
	return s.refresh(ctx, reg, sch)
}

// AddParticipant registers a participant and re-evaluates per-participant
// steps
func (s *RegistrationService) AddParticipant(ctx context.Context, registrationID string, profile map[string]any) (*model.Participant, *model.VisibilityState, error) {
	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, nil, err
	}

	if profile == nil {
		profile = map[string]any{}
	}
	participant := model.Participant{
		ID:      "part_" + uuid.New().String()[:8],
		Profile: profile,
	}
	reg.Participants = append(reg.Participants, participant)

	state, err := s.refresh(ctx, reg, sch)
	if err != nil {
		return nil, nil, err
	}
	return &participant, state, nil
}

// RemoveParticipant drops a participant and their answers
func (s *RegistrationService) RemoveParticipant(ctx context.Context, registrationID, participantID string) (*model.VisibilityState, error) {
	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	found := false
	for i, p := range reg.Participants {
		if p.ID == participantID {
			reg.Participants = append(reg.Participants[:i], reg.Participants[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("participant not found")
	}
	delete(reg.ParticipantAnswers, participantID)

	return s.refresh(ctx, reg, sch)
}

// Navigate moves to the next or previous visible step
func (s *RegistrationService) Navigate(ctx context.Context, registrationID, direction string) (*model.VisibilityState, error) {
	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	fill := s.fillContext(reg)
	switch direction {
	case "next":
		reg.CurrentStep = engine.NextVisibleStep(sch, fill, reg.CurrentStep)
	case "prev":
		reg.CurrentStep = engine.PrevVisibleStep(sch, fill, reg.CurrentStep)
	default:
		return nil, fmt.Errorf("unknown direction %q", direction)
	}

	return s.refresh(ctx, reg, sch)
}

// Visibility returns the current engine snapshot without mutating anything
func (s *RegistrationService) Visibility(ctx context.Context, registrationID string) (*model.VisibilityState, error) {
	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	return s.visibilityState(sch, reg), nil
}

// Submit validates required visible fields and persists the registration.
// Hidden fields never block submission; a required field only counts when
// its own condition and its step's condition pass for the relevant context.
func (s *RegistrationService) Submit(ctx context.Context, registrationID string) (*model.Registration, []schema.Issue, error) {
	reg, sch, err := s.loadDraft(ctx, registrationID)
	if err != nil {
		return nil, nil, err
	}

	missing := s.missingRequired(sch, reg)
	if len(missing) > 0 {
		return nil, missing, nil
	}

	now := time.Now()
	reg.Status = model.RegistrationSubmitted
	reg.SubmittedAt = &now
	reg.UpdatedAt = now

	if _, err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, nil, fmt.Errorf("failed to persist registration: %w", err)
	}
	if err := s.regCache.Delete(ctx, reg.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to drop draft: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOrganizer(reg.FormID, "registration_submitted", map[string]string{
			"registrationId": reg.ID,
		})
		s.broadcaster.BroadcastToRegistrant(reg.ID, "registration_submitted", map[string]string{
			"registrationId": reg.ID,
		})
	}
	return reg, nil, nil
}

// GetByFormID lists submitted registrations for a form
func (s *RegistrationService) GetByFormID(ctx context.Context, formID string) ([]*model.Registration, error) {
	return s.regRepo.GetByFormID(ctx, formID)
}

func (s *RegistrationService) loadDraft(ctx context.Context, registrationID string) (*model.Registration, *model.FormSchema, error) {
	reg, err := s.regCache.Get(ctx, registrationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if reg == nil {
		return nil, nil, fmt.Errorf("registration not found")
	}
	if reg.Status != model.RegistrationDraft {
		return nil, nil, fmt.Errorf("registration already submitted")
	}

	sch, err := s.formSvc.LoadSchema(ctx, reg.FormID)
	if err != nil {
		return nil, nil, err
	}
	if sch == nil {
		return nil, nil, fmt.Errorf("form not found")
	}
	return reg, sch, nil
}

// refresh re-validates the current step, saves the draft and pushes the new
// visibility snapshot to connected clients
func (s *RegistrationService) refresh(ctx context.Context, reg *model.Registration, sch *model.FormSchema) (*model.VisibilityState, error) {
	state := s.visibilityState(sch, reg)
	reg.CurrentStep = state.CurrentStep
	reg.UpdatedAt = time.Now()

	if err := s.regCache.Set(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRegistrant(reg.ID, "visibility_changed", state)
	}
	return state, nil
}

func (s *RegistrationService) fillContext(reg *model.Registration) engine.FillContext {
	fill := engine.FillContext{
		Guardian: reg.Guardian,
		Answers:  reg.Answers,
	}
	for _, p := range reg.Participants {
		fill.Participants = append(fill.Participants, p.Profile)
		fill.ParticipantAnswers = append(fill.ParticipantAnswers, reg.AnswersFor(p.ID))
	}
	return fill
}

func (s *RegistrationService) visibilityState(sch *model.FormSchema, reg *model.Registration) *model.VisibilityState {
	fill := s.fillContext(reg)

	state := &model.VisibilityState{
		VisibleSteps: engine.VisibleStepIndexes(sch, fill),
		CurrentStep:  engine.EnsureVisibleStep(sch, fill, reg.CurrentStep),
	}

	if state.CurrentStep >= 0 && state.CurrentStep < len(sch.Steps) {
		step := sch.Steps[state.CurrentStep]
		if step.PerParticipant {
			state.FieldsByIndex = make(map[string][]string)
			for i := range fill.Participants {
				ctx := fill.ForParticipant(i)
				if engine.EvaluateGroup(step.Conditions, ctx) {
					state.FieldsByIndex[strconv.Itoa(i)] = engine.VisibleFieldNames(step, ctx)
				}
			}
		} else {
			state.StepFields = engine.VisibleFieldNames(step, fill.Global())
		}
	}
	return state
}

// missingRequired lists required fields that are visible yet unanswered
func (s *RegistrationService) missingRequired(sch *model.FormSchema, reg *model.Registration) []schema.Issue {
	fill := s.fillContext(reg)
	var missing []schema.Issue

	for _, step := range sch.Steps {
		if step.PerParticipant {
			for i := range fill.Participants {
				ctx := fill.ForParticipant(i)
				if !engine.EvaluateGroup(step.Conditions, ctx) {
					continue
				}
				for _, field := range step.Fields {
					if !field.Required || !engine.FieldVisible(field, ctx) {
						continue
					}
					if answerMissing(ctx.Answers[field.Name]) {
						missing = append(missing, schema.Issue{
							Code:    "missing_required",
							Message: fmt.Sprintf("field %q is required for participant %d", field.Name, i+1),
						})
					}
				}
			}
			continue
		}

		ctx := fill.Global()
		if !engine.EvaluateGroup(step.Conditions, ctx) {
			continue
		}
		for _, field := range step.Fields {
			if !field.Required || !engine.FieldVisible(field, ctx) {
				continue
			}
			if answerMissing(ctx.Answers[field.Name]) {
				missing = append(missing, schema.Issue{
					Code:    "missing_required",
					Message: fmt.Sprintf("field %q is required", field.Name),
				})
			}
		}
	}
	return missing
}

func answerMissing(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}
