package timer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"nekomate-backend/internal/models"
)

const (
	stateKeyPrefix   = "timer:state:"
	updateChanPrefix = "timer:updates:"
	stateScanPattern = "timer:state:*"
)

// RedisChannel stores the shared TimerState as one JSON value per user and
// fans out every overwrite on a per-user pub/sub channel. The websocket hub
// relays the same channel to connected tabs.
type RedisChannel struct {
	state  *redis.Client
	pubsub *redis.Client
}

func NewRedisChannel(state, pubsub *redis.Client) *RedisChannel {
	return &RedisChannel{state: state, pubsub: pubsub}
}

func StateKey(userID uuid.UUID) string      { return stateKeyPrefix + userID.String() }
func UpdateChannel(userID uuid.UUID) string { return updateChanPrefix + userID.String() }

func (c *RedisChannel) Save(ctx context.Context, state models.TimerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal timer state: %w", err)
	}

	if err := c.state.Set(ctx, StateKey(state.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write timer state: %w", err)
	}

	if err := c.state.Publish(ctx, UpdateChannel(state.UserID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish timer update: %w", err)
	}
	return nil
}

func (c *RedisChannel) Load(ctx context.Context, userID uuid.UUID) (*models.TimerState, error) {
	data, err := c.state.Get(ctx, StateKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read timer state: %w", err)
	}

	var state models.TimerState
	if err := json.Unmarshal(data, &state); err != nil {
		// A record we cannot read is the same as no record.
		log.Printf("timer: discarding malformed state for user %s: %v", userID, err)
		return nil, nil
	}
	return &state, nil
}

func (c *RedisChannel) Subscribe(ctx context.Context, userID uuid.UUID, fn func(models.TimerState)) (func(), error) {
	sub := c.pubsub.Subscribe(ctx, UpdateChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to timer updates: %w", err)
	}

	done := make(chan struct{})
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var state models.TimerState
				if err := json.Unmarshal([]byte(msg.Payload), &state); err != nil {
					continue
				}
				fn(state)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			sub.Close()
		})
	}, nil
}
