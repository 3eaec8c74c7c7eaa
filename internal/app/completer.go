package app

import (
	"context"
	"sync"
	"time"
)

// Completer фоновая задача: закрывает сессии, время которых прошло
type Completer struct {
	repo         SessionCompleter
	timeProvider TimeProvider
	interval     time.Duration
	logger       Logger

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewCompleter создаёт фоновую задачу завершения сессий
func NewCompleter(repo SessionCompleter, timeProvider TimeProvider, interval time.Duration, logger Logger) *Completer {
	return &Completer{
		repo:         repo,
		timeProvider: timeProvider,
		interval:     interval,
		logger:       logger,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start запускает задачу в отдельной горутине
func (c *Completer) Start(ctx context.Context) {
	c.logger.Info("Starting session completer, interval=%s", c.interval)
	go c.run(ctx)
}

// Stop останавливает задачу и ждёт завершения текущего прохода
func (c *Completer) Stop() {
	c.stopOnce.Do(func() {
		c.logger.Info("Stopping session completer")
		close(c.stopChan)
	})
	<-c.done
}

func (c *Completer) run(ctx context.Context) {
	defer close(c.done)

	// Первый проход сразу при старте
	c.completeEnded(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.completeEnded(ctx)
		case <-c.stopChan:
			c.logger.Info("Session completer stopped")
			return
		case <-ctx.Done():
			c.logger.Info("Session completer cancelled")
			return
		}
	}
}

func (c *Completer) completeEnded(ctx context.Context) {
	count, err := c.repo.CompleteEnded(ctx, c.timeProvider.Now())
	if err != nil {
		c.logger.Error("Failed to complete ended sessions: %v", err)
		return
	}
	if count > 0 {
		c.logger.Info("Completed %d ended sessions", count)
	}
}
