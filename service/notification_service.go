package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Notification metric results
const (
	NotificationSent       = "sent"
	NotificationSendFailed = "send_failed"
	NotificationMarkFailed = "mark_failed"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	uowFactory         UnitOfWorkFactory
	sender             MessageSender
	clock              Clock
	metrics            MetricsRecorder
	requireActiveEvent bool

	// running guards against overlapping sweeps in this process
	running sync.Mutex
}

// NewNotificationService creates a new winner notification service.
// When requireActiveEvent is set, auctions of deactivated events are skipped
// even after their end time.
func NewNotificationService(uowFactory UnitOfWorkFactory, sender MessageSender, clock Clock, metrics MetricsRecorder, requireActiveEvent bool) NotificationService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &notificationService{
		uowFactory:         uowFactory,
		sender:             sender,
		clock:              clock,
		metrics:            metrics,
		requireActiveEvent: requireActiveEvent,
	}
}

// ProcessEndedAuctions sends one message per recipient covering every game
// they won in ended auctions, and marks those bids notified only after the
// message was delivered. Failures are isolated per recipient and retried by
// the next sweep.
func (s *notificationService) ProcessEndedAuctions(ctx context.Context) (int, error) {
	if !s.running.TryLock() {
		log.Info("Winner notification sweep already running, skipping")
		return 0, nil
	}
	defer s.running.Unlock()

	start := time.Now()
	now := s.clock.Now()

	digests, err := s.loadDigests(ctx, now)
	if err != nil {
		return 0, err
	}

	if len(digests) == 0 {
		log.Debug("No pending winner notifications")
		s.metrics.RecordSweep(0, time.Since(start))
		return 0, nil
	}

	log.WithField("recipients", len(digests)).Info("Processing winner notifications")

	var notified, failed int
	for _, digest := range digests {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Winner notification sweep cancelled")
			break
		}

		if err := s.notifyRecipient(ctx, digest, now); err != nil {
			log.WithFields(log.Fields{
				"recipient_id": digest.RecipientID,
				"user_id":      digest.UserID,
				"bid_count":    len(digest.Items),
				"error":        err,
			}).Error("Failed to notify winner")
			failed++
			continue
		}
		notified++
	}

	log.WithFields(log.Fields{
		"notified": notified,
		"failed":   failed,
		"duration": time.Since(start).String(),
	}).Info("Winner notification sweep completed")

	s.metrics.RecordSweep(notified, time.Since(start))
	return notified, nil
}

func (s *notificationService) loadDigests(ctx context.Context, now time.Time) ([]*winnerDigest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pending, err := uow.BidRepository().GetPendingWinnerNotifications(ctx, now, s.requireActiveEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending winner notifications: %w", err)
	}

	return groupByRecipient(pending), nil
}

func (s *notificationService) notifyRecipient(ctx context.Context, digest *winnerDigest, now time.Time) error {
	if err := s.sender.SendMessage(ctx, digest.RecipientID, formatWinnerMessage(digest)); err != nil {
		s.metrics.RecordNotification(NotificationSendFailed)
		return fmt.Errorf("failed to send winner message: %w", err)
	}

	if err := s.markNotified(ctx, digest.bidIDs(), now); err != nil {
		// The message went out but the bids stay pending, so the next sweep
		// will send it again
		s.metrics.RecordNotification(NotificationMarkFailed)
		return err
	}

	s.metrics.RecordNotification(NotificationSent)
	return nil
}

func (s *notificationService) markNotified(ctx context.Context, bidIDs []int64, now time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	updated, err := uow.BidRepository().MarkNotified(ctx, bidIDs, now)
	if err != nil {
		return fmt.Errorf("failed to mark bids notified: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit notified bids: %w", err)
	}

	if updated != int64(len(bidIDs)) {
		log.WithFields(log.Fields{
			"expected": len(bidIDs),
			"updated":  updated,
		}).Warn("Some bids were already marked notified")
	}
	return nil
}
