package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"formhub/models"

	"github.com/redis/go-redis/v9"
)

const formCacheTTL = 15 * time.Minute

// FormCache is a read-through Redis cache for published forms keyed by their
// public id. Every path that mutates a published form must Invalidate its
// public id. A nil Redis client disables caching (tests, minimal deploys).
type FormCache struct {
	redis *redis.Client
}

func NewFormCache(client *redis.Client) *FormCache {
	return &FormCache{redis: client}
}

func (c *FormCache) Get(publicID string) *models.Form {
	if c.redis == nil || publicID == "" {
		return nil
	}

	data, err := c.redis.Get(context.Background(), "form:public:"+publicID).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting form %s: %v", publicID, err)
		}
		return nil
	}

	var form models.Form
	if err := json.Unmarshal([]byte(data), &form); err != nil {
		log.Printf("Failed to unmarshal cached form %s: %v", publicID, err)
		return nil
	}
	return &form
}

func (c *FormCache) Put(form *models.Form) {
	if c.redis == nil || form.PublicID == "" {
		return
	}

	data, err := json.Marshal(form)
	if err != nil {
		log.Printf("Failed to marshal form %s for cache: %v", form.PublicID, err)
		return
	}

	if err := c.redis.Set(context.Background(), "form:public:"+form.PublicID, data, formCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache form %s: %v", form.PublicID, err)
	}
}

func (c *FormCache) Invalidate(publicID string) {
	if c.redis == nil || publicID == "" {
		return
	}

	if err := c.redis.Del(context.Background(), "form:public:"+publicID).Err(); err != nil {
		log.Printf("Failed to invalidate cached form %s: %v", publicID, err)
	}
}
