package cache

import (
	"context"
	"sync"

	"formflow/internal/model"
)

// In-memory cache implementations for tests and Redis-less local runs

type memorySchemaCache struct {
	mu       sync.RWMutex
	payloads map[string]*model.FormPayload
}

// NewMemorySchemaCache creates an in-memory schema cache
func NewMemorySchemaCache() SchemaCache {
	return &memorySchemaCache{payloads: make(map[string]*model.FormPayload)}
}

func (c *memorySchemaCache) Set(_ context.Context, formID string, payload *model.FormPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *payload
	c.payloads[formID] = &copied
	return nil
}

func (c *memorySchemaCache) Get(_ context.Context, formID string) (*model.FormPayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.payloads[formID]
	if !ok {
		return nil, nil
	}
	copied := *payload
	return &copied, nil
}

func (c *memorySchemaCache) Invalidate(_ context.Context, formID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.payloads, formID)
	return nil
}

type memoryRegistrationCache struct {
	mu   sync.RWMutex
	regs map[string]*model.Registration
}

// NewMemoryRegistrationCache creates an in-memory registration draft cache
func NewMemoryRegistrationCache() RegistrationCache {
	return &memoryRegistrationCache{regs: make(map[string]*model.Registration)}
}

func (c *memoryRegistrationCache) Set(_ context.Context, reg *model.Registration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *reg
	c.regs[reg.ID] = &copied
	return nil
}

func (c *memoryRegistrationCache) Get(_ context.Context, id string) (*model.Registration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reg, ok := c.regs[id]
	if !ok {
		return nil, nil
	}
	copied := *reg
	return &copied, nil
}

func (c *memoryRegistrationCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.regs, id)
	return nil
}
