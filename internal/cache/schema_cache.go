package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formflow/internal/model"
)

// SchemaCache keeps published form payloads hot so the fill flow does not
// hit Mongo on every page load
type SchemaCache interface {
	Set(ctx context.Context, formID string, payload *model.FormPayload) error
	Get(ctx context.Context, formID string) (*model.FormPayload, error)
	Invalidate(ctx context.Context, formID string) error
}

type schemaCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSchemaCache creates a new schema cache
func NewSchemaCache(client *redis.Client) SchemaCache {
	return &schemaCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

func (c *schemaCache) key(formID string) string {
	return fmt.Sprintf("form:%s:payload", formID)
}

func (c *schemaCache) Set(ctx context.Context, formID string, payload *model.FormPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(formID), data, c.ttl).Err()
}

func (c *schemaCache) Get(ctx context.Context, formID string) (*model.FormPayload, error) {
	data, err := c.client.Get(ctx, c.key(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var payload model.FormPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *schemaCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
