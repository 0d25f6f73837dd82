package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	SettingsCacheKey = "settings:all"

	// marqueur présent dès que le hash a été rempli, même sans aucun setting
	settingsLoadedField = "__loaded"
)

// SettingsCache garde tous les settings dans un seul hash Redis,
// partagé par toutes les instances du serveur
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSettingsCache(client *redis.Client, ttl time.Duration) *SettingsCache {
	return &SettingsCache{client: client, ttl: ttl}
}

// Load récupère le hash complet. ok=false si le cache est vide.
func (c *SettingsCache) Load(ctx context.Context) (map[string]string, bool, error) {
	values, err := c.client.HGetAll(ctx, SettingsCacheKey).Result()
	if err != nil {
		return nil, false, err
	}
	if _, ok := values[settingsLoadedField]; !ok {
		return nil, false, nil
	}
	delete(values, settingsLoadedField)
	return values, true, nil
}

// Store remplace le contenu du cache de façon atomique
func (c *SettingsCache) Store(ctx context.Context, values map[string]string) error {
	fields := make(map[string]interface{}, len(values)+1)
	for k, v := range values {
		fields[k] = v
	}
	fields[settingsLoadedField] = "1"

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, SettingsCacheKey)
	pipe.HSet(ctx, SettingsCacheKey, fields)
	if c.ttl > 0 {
		pipe.Expire(ctx, SettingsCacheKey, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Clear invalide le cache
func (c *SettingsCache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, SettingsCacheKey).Err()
}
