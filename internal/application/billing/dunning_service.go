package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/notification"
	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSendDelay is the pause between consecutive WhatsApp sends.
// The gateway throttles bursts, so batch runs space messages out.
const DefaultSendDelay = 2 * time.Second

// DunningService runs the overdue sweep and the payment reminders.
type DunningService struct {
	residentRepo resident.Repository
	tokenRepo    resident.TokenRepository
	notifRepo    notification.Repository
	sender       notification.Sender
	logger       *zap.Logger

	sendDelay time.Duration
}

// NewDunningService creates a new DunningService. A sendDelay of zero
// disables the pause between sends.
func NewDunningService(
	residentRepo resident.Repository,
	tokenRepo resident.TokenRepository,
	notifRepo notification.Repository,
	sender notification.Sender,
	sendDelay time.Duration,
	logger *zap.Logger,
) *DunningService {
	return &DunningService{
		residentRepo: residentRepo,
		tokenRepo:    tokenRepo,
		notifRepo:    notifRepo,
		sender:       sender,
		sendDelay:    sendDelay,
		logger:       logger,
	}
}

// SweepOverdue escalates every pending resident whose next payment date
// fell before the 5th of the current month. Inside the grace period (day
// 1-5) the sweep is a no-op. One overdue notice goes out per escalated
// resident with a phone number; a failed send is logged and the sweep
// moves on to the next resident. Running the sweep twice on the same day
// changes nothing the second time.
func (s *DunningService) SweepOverdue(ctx context.Context, today time.Time) (*SweepResult, error) {
	return s.sweep(ctx, today, resident.PaymentStateOverdue)
}

// RunScheduledSweep is the variant the daily scheduler triggers. It
// applies the same escalation with the late label.
func (s *DunningService) RunScheduledSweep(ctx context.Context, today time.Time) (*SweepResult, error) {
	return s.sweep(ctx, today, resident.PaymentStateLate)
}

func (s *DunningService) sweep(ctx context.Context, today time.Time, label resident.PaymentState) (*SweepResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dunning", "sweep")
	defer span.End()

	result := &SweepResult{}

	if billing.InGracePeriod(today) {
		result.Skipped = true
		s.logger.Info("Overdue sweep skipped, inside grace period",
			zap.Time("today", today),
		)
		return result, nil
	}

	cutoff := billing.GraceCutoff(today)
	residents, err := s.residentRepo.FindPendingDueBefore(ctx, cutoff)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load pending residents: %w", err)
	}

	telemetry.SetAttribute(span, "candidates", len(residents))

	for i := range residents {
		res := &residents[i]

		if err := res.MarkDelinquent(label, today); err != nil {
			s.logger.Warn("Skipping resident that cannot be escalated",
				zap.String("resident_id", res.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.residentRepo.Save(ctx, res); err != nil {
			telemetry.RecordError(span, err)
			return result, fmt.Errorf("failed to save resident %s: %w", res.ID, err)
		}
		if err := s.tokenRepo.MirrorPaymentStateForResident(ctx, res.ID,
			label, res.LastPaymentDate, res.NextPaymentDate); err != nil {
			telemetry.RecordError(span, err)
			return result, fmt.Errorf("failed to update tokens for resident %s: %w", res.ID, err)
		}
		result.Updated++

		if !res.HasPhone() {
			continue
		}

		if result.Notified+result.SendFailures > 0 {
			if err := s.pause(ctx); err != nil {
				return result, err
			}
		}

		if s.notify(ctx, res, notification.KindOverdueNotice) {
			result.Notified++
		} else {
			result.SendFailures++
		}
	}

	s.logger.Info("Overdue sweep finished",
		zap.Int("updated", result.Updated),
		zap.Int("notified", result.Notified),
		zap.Int("send_failures", result.SendFailures),
		zap.String("label", label.String()),
	)

	return result, nil
}

// SendReminders messages every pending resident whose next payment date
// falls inside the current billing month. No payment state changes.
func (s *DunningService) SendReminders(ctx context.Context, today time.Time) (*ReminderResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dunning", "reminders")
	defer span.End()

	period := billing.CurrentPeriod(today)
	from := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	to := billing.EndOfBillingCycle(period)

	residents, err := s.residentRepo.FindPendingDueBetween(ctx, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load pending residents: %w", err)
	}

	result := &ReminderResult{Candidates: len(residents)}
	telemetry.SetAttribute(span, "candidates", len(residents))

	for i := range residents {
		res := &residents[i]
		if !res.HasPhone() {
			continue
		}

		if result.Notified+result.SendFailures > 0 {
			if err := s.pause(ctx); err != nil {
				return result, err
			}
		}

		if s.notify(ctx, res, notification.KindReminder) {
			result.Notified++
		} else {
			result.SendFailures++
		}
	}

	s.logger.Info("Reminder run finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("notified", result.Notified),
		zap.Int("send_failures", result.SendFailures),
	)

	return result, nil
}

// notify sends one message and appends it to the notification log.
// Returns false when the send failed; the caller continues with the next
// resident either way.
func (s *DunningService) notify(ctx context.Context, res *resident.Resident, kind notification.Kind) bool {
	to := notification.Recipient{
		Name:  res.FullName(),
		Phone: res.Phone,
	}

	var (
		message string
		err     error
	)
	switch kind {
	case notification.KindOverdueNotice:
		message, err = s.sender.SendOverdueNotice(ctx, to)
	default:
		message, err = s.sender.SendReminder(ctx, to)
	}
	if err != nil {
		s.logger.Error("Failed to send notification",
			zap.String("resident_id", res.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return false
	}

	entry, err := notification.NewNotification(res.ID, notification.ChannelWhatsApp, kind, message)
	if err != nil {
		s.logger.Error("Failed to build notification log entry",
			zap.String("resident_id", res.ID.String()),
			zap.Error(err),
		)
		return true
	}
	if err := s.notifRepo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append notification log entry",
			zap.String("resident_id", res.ID.String()),
			zap.Error(err),
		)
	}

	return true
}

// pause waits the configured delay between sends, aborting early when the
// context is canceled.
func (s *DunningService) pause(ctx context.Context) error {
	if s.sendDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.sendDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NotificationHistory lists the messages sent to a resident, newest first.
func (s *DunningService) NotificationHistory(ctx context.Context, residentID uuid.UUID) ([]NotificationDTO, error) {
	res, err := s.residentRepo.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, shared.ErrNotFound
	}

	entries, err := s.notifRepo.FindByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}

	dtos := make([]NotificationDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, ToNotificationDTO(&entries[i]))
	}
	return dtos, nil
}
