package application

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"auctioneer/service"
)

// NotificationWorker periodically runs the winner notification sweep
type NotificationWorker struct {
	notifications service.NotificationService
	interval      time.Duration
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(notifications service.NotificationService, interval time.Duration) *NotificationWorker {
	return &NotificationWorker{
		notifications: notifications,
		interval:      interval,
	}
}

// Start runs a sweep immediately and then once per interval until ctx is
// cancelled or the returned stop function is called. Stop waits for an
// in-flight sweep to finish.
func (w *NotificationWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		log.WithField("interval", w.interval.String()).Info("Winner notification worker started")

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.sweep(ctx)

			select {
			case <-ctx.Done():
				log.Info("Winner notification worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Winner notification worker shutting down (stop requested)...")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopChan) })
		<-done
	}
}

func (w *NotificationWorker) sweep(ctx context.Context) {
	start := time.Now()
	notified, err := w.notifications.ProcessEndedAuctions(ctx)
	if err != nil {
		// the next tick retries everything still pending
		log.WithError(err).Error("Winner notification sweep failed")
		return
	}

	entry := log.WithFields(log.Fields{
		"notified": notified,
		"duration": time.Since(start).String(),
	})
	if notified > 0 {
		entry.Info("Winner notification sweep completed")
		return
	}
	entry.Debug("Winner notification sweep found nothing to send")
}
