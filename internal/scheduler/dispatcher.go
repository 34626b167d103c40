package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edulead_backend/platform/config"
	"edulead_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Dispatcher enqueues the rebalance sweep task on a fixed interval. Task
// uniqueness spans the interval, so a slow worker never accumulates a
// backlog of sweeps.
type Dispatcher struct {
	client   *asynq.Client
	queue    string
	interval time.Duration
	log      *logger.Logger
}

// NewDispatcher creates the sweep dispatcher.
func NewDispatcher(cfg config.SchedulerConfig, log *logger.Logger) (*Dispatcher, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	interval := cfg.GetSweepInterval()
	if interval <= 0 {
		interval = time.Minute
	}

	return &Dispatcher{
		client:   asynq.NewClient(opt),
		queue:    queue,
		interval: interval,
		log:      log,
	}, nil
}

func (d *Dispatcher) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}

func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		task := NewLeadsRebalanceTask()
		_, err := d.client.EnqueueContext(ctx, task, asynq.Queue(d.queue), asynq.Unique(d.interval))
		if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
			d.log.Warn("failed to enqueue sweep task", "error", err)
		}
	}
}
