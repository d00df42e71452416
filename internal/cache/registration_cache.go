package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formflow/internal/model"
)

// RegistrationCache holds in-progress registration drafts. Every answer edit
// rewrites the draft wholesale; the draft only reaches Mongo on submit.
type RegistrationCache interface {
	Set(ctx context.Context, reg *model.Registration) error
	Get(ctx context.Context, id string) (*model.Registration, error)
	Delete(ctx context.Context, id string) error
}

type registrationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationCache creates a new registration draft cache
func NewRegistrationCache(client *redis.Client) RegistrationCache {
	return &registrationCache{
		client: client,
		ttl:    7 * 24 * time.Hour,
	}
}

func (c *registrationCache) key(id string) string {
	return fmt.Sprintf("reg:%s:draft", id)
}

func (c *registrationCache) Set(ctx context.Context, reg *model.Registration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(reg.ID), data, c.ttl).Err()
}

func (c *registrationCache) Get(ctx context.Context, id string) (*model.Registration, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var reg model.Registration
	if err := json.Unmarshal([]byte(data), &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (c *registrationCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
