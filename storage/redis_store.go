package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis only has string type, there is no boolean, so we use "1" to
// represent true.
const redisTrue = "1"

// How long a notification marker lives. Repeated detection runs within
// this window won't re-deliver the same alert.
const notifiedTTL = 24 * time.Hour

var ctx = context.Background()

// AlertStatusStore tracks which alerts have already been delivered so
// periodic re-analysis of overlapping batches doesn't spam the
// notification channel.
type AlertStatusStore struct {
	inner *redis.Client
}

func GetAlertStatusStore() (*AlertStatusStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return &AlertStatusStore{inner: redisClient}, nil
}

func alertKey(dedupKey string) string {
	return "alert_notified__" + dedupKey
}

// MarkNotified records a delivery marker and reports whether this call
// was the first to set it. The SETNX semantics make concurrent runs
// safe: exactly one caller wins the right to deliver.
func (s *AlertStatusStore) MarkNotified(dedupKey string) (bool, error) {
	return s.inner.SetNX(ctx, alertKey(dedupKey), redisTrue, notifiedTTL).Result()
}

// WasNotified reports whether a delivery marker exists for the key.
func (s *AlertStatusStore) WasNotified(dedupKey string) (bool, error) {
	count, err := s.inner.Exists(ctx, alertKey(dedupKey)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
