package timer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"nekomate-backend/internal/models"
)

const janitorInterval = time.Minute

// Janitor clears shared timer records left in the running state by a
// process that died mid-countdown. A record is stale when it claims to be
// running, has not been touched for staleAfter, and no live engine in this
// process owns it.
type Janitor struct {
	state      *redis.Client
	channel    *RedisChannel
	service    *Service
	staleAfter time.Duration
	stopChan   chan struct{}
}

func NewJanitor(state *redis.Client, channel *RedisChannel, service *Service, staleAfter time.Duration) *Janitor {
	return &Janitor{
		state:      state,
		channel:    channel,
		service:    service,
		staleAfter: staleAfter,
		stopChan:   make(chan struct{}),
	}
}

func (j *Janitor) Start() {
	go j.loop()
}

func (j *Janitor) Stop() {
	select {
	case <-j.stopChan:
		return
	default:
		close(j.stopChan)
	}
}

func (j *Janitor) loop() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ticker.C:
			j.sweep(context.Background())
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := j.state.Scan(ctx, cursor, stateScanPattern, 100).Result()
		if err != nil {
			log.Printf("timer janitor: scan failed: %v", err)
			return
		}

		for _, key := range keys {
			j.sweepKey(ctx, key)
		}

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (j *Janitor) sweepKey(ctx context.Context, key string) {
	data, err := j.state.Get(ctx, key).Bytes()
	if err != nil {
		return
	}

	var state models.TimerState
	if err := json.Unmarshal(data, &state); err != nil {
		return
	}
	if !state.IsRunning {
		return
	}
	if time.Since(time.UnixMilli(state.LastUpdated)) < j.staleAfter {
		return
	}
	if j.service.Has(state.UserID) {
		// An engine in this process is still ticking it.
		return
	}

	state.IsRunning = false
	state.LastUpdated = time.Now().UnixMilli()
	if err := j.channel.Save(ctx, state); err != nil {
		log.Printf("timer janitor: clearing stale state %s: %v", key, err)
		return
	}
	log.Printf("timer janitor: cleared stale running timer for user %s", state.UserID)
}
