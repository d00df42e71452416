package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"formflow/internal/model"
)

// In-memory repositories backing service tests and local development
// without a Mongo instance.

type memoryFormRepo struct {
	mu    sync.RWMutex
	forms map[string]*model.Form
}

// NewMemoryFormRepo creates an in-memory form repository
func NewMemoryFormRepo() FormRepo {
	return &memoryFormRepo{forms: make(map[string]*model.Form)}
}

func (r *memoryFormRepo) Create(_ context.Context, form *model.Form) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New().String()
	stored := *form
	stored.ID = id
	r.forms[id] = &stored
	return id, nil
}

func (r *memoryFormRepo) GetByID(_ context.Context, id string) (*model.Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	form, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	copied := *form
	return &copied, nil
}

func (r *memoryFormRepo) GetByOrganizerID(_ context.Context, organizerID string) ([]*model.Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var forms []*model.Form
	for _, form := range r.forms {
		if form.OrganizerID == organizerID {
			copied := *form
			forms = append(forms, &copied)
		}
	}
	return forms, nil
}

func (r *memoryFormRepo) Update(_ context.Context, form *model.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.forms[form.ID]; !ok {
		return nil
	}
	stored := *form
	r.forms[form.ID] = &stored
	return nil
}

func (r *memoryFormRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
	return nil
}

type memoryRegistrationRepo struct {
	mu   sync.RWMutex
	regs map[string]*model.Registration
}

// NewMemoryRegistrationRepo creates an in-memory registration repository
func NewMemoryRegistrationRepo() RegistrationRepo {
	return &memoryRegistrationRepo{regs: make(map[string]*model.Registration)}
}

func (r *memoryRegistrationRepo) Create(_ context.Context, reg *model.Registration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	stored := *reg
	r.regs[reg.ID] = &stored
	return reg.ID, nil
}

func (r *memoryRegistrationRepo) GetByID(_ context.Context, id string) (*model.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.regs[id]
	if !ok {
		return nil, nil
	}
	copied := *reg
	return &copied, nil
}

func (r *memoryRegistrationRepo) GetByFormID(_ context.Context, formID string) ([]*model.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var regs []*model.Registration
	for _, reg := range r.regs {
		if reg.FormID == formID {
			copied := *reg
			regs = append(regs, &copied)
		}
	}
	return regs, nil
}
