package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TrackingSample is the durable throttle state left behind by the last
// accepted location update.
type TrackingSample struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingRepository holds the tracking session state in Redis. The session
// entry is the only channel between the background capture actor and the
// ingestion path; there is no shared in-process state.
type TrackingRepository struct {
	Redis redis.UniversalClient
}

func NewTrackingRepository(redisClient redis.UniversalClient) *TrackingRepository {
	return &TrackingRepository{
		Redis: redisClient,
	}
}

const sessionTTL = 24 * time.Hour

func sessionKey(driverID string) string {
	return fmt.Sprintf("TRACKING:SESSION:%s", driverID)
}

func lastSampleKey(driverID string) string {
	return fmt.Sprintf("TRACKING:LAST:%s", driverID)
}

func (r *TrackingRepository) GetActiveOrder(ctx context.Context, driverID string) (string, error) {
	orderID, err := r.Redis.Get(ctx, sessionKey(driverID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return orderID, err
}

// SetActiveOrder starts a session for orderID and returns the order the
// previous session was tracking, if any.
func (r *TrackingRepository) SetActiveOrder(ctx context.Context, driverID, orderID string) (string, error) {
	previous, err := r.GetActiveOrder(ctx, driverID)
	if err != nil {
		return "", err
	}
	if err := r.Redis.Set(ctx, sessionKey(driverID), orderID, sessionTTL).Err(); err != nil {
		return "", err
	}
	if previous != "" && previous != orderID {
		// throttle state belongs to the old session
		if err := r.Redis.Del(ctx, lastSampleKey(driverID)).Err(); err != nil {
			return "", err
		}
	}
	return previous, nil
}

func (r *TrackingRepository) ClearActiveOrder(ctx context.Context, driverID string) error {
	return r.Redis.Del(ctx, sessionKey(driverID), lastSampleKey(driverID)).Err()
}

func (r *TrackingRepository) GetLastSample(ctx context.Context, driverID string) (*TrackingSample, error) {
	data, err := r.Redis.Get(ctx, lastSampleKey(driverID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sample TrackingSample
	if err := json.Unmarshal([]byte(data), &sample); err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *TrackingRepository) SetLastSample(ctx context.Context, driverID string, sample *TrackingSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, lastSampleKey(driverID), data, sessionTTL).Err()
}
