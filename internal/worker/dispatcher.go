package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/message"
	"github.com/aliskhannn/pickup-notifier/internal/model"
	"github.com/aliskhannn/pickup-notifier/internal/repository/notification"
	"github.com/aliskhannn/pickup-notifier/pkg/push"
)

// ErrTickInFlight is returned by RunOnce while another batch of the same dispatcher is running.
var ErrTickInFlight = errors.New("dispatch tick already in flight")

type recordStore interface {
	ClaimDueBatch(ctx context.Context, now, leaseCutoff time.Time, limit int, workerID string) ([]model.NotificationRecord, error)
	MarkSent(ctx context.Context, id uuid.UUID, workerID string, sentAt time.Time) error
	MarkSkipped(ctx context.Context, id uuid.UUID, workerID, reason string) error
	Release(ctx context.Context, id uuid.UUID, workerID, reason string, maxAttempts int) (model.Status, error)
}

type orderReader interface {
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
}

type recipientReader interface {
	GetRecipient(ctx context.Context, userID uuid.UUID) (model.Recipient, error)
}

type renderer interface {
	Render(kind model.Kind, order model.Order) (message.Rendered, error)
}

type inboxWriter interface {
	Create(ctx context.Context, n model.UserNotification) (uuid.UUID, error)
}

type pushSender interface {
	Send(ctx context.Context, msg push.Message) (push.Ticket, error)
}

type failureAlerter interface {
	ReminderFailed(ctx context.Context, rec model.NotificationRecord, reason string)
}

// DispatcherConfig holds the loop settings.
type DispatcherConfig struct {
	WorkerID    string
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	ClaimLease  time.Duration
	PushTimeout time.Duration
}

// Result summarizes one dispatch tick.
type Result struct {
	Claimed int `json:"claimed"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Retried int `json:"retried"`
	Failed  int `json:"failed"`
}

func (r *Result) add(s model.Status) {
	switch s {
	case model.StatusSent:
		r.Sent++
	case model.StatusSkipped:
		r.Skipped++
	case model.StatusScheduled:
		r.Retried++
	case model.StatusFailed:
		r.Failed++
	}
}

// Dispatcher periodically claims due reminders and delivers them.
//
// At most one batch is in flight per Dispatcher. Several dispatchers, in one
// process or many, can share a store because claiming is atomic there.
type Dispatcher struct {
	cfg DispatcherConfig

	store      recordStore
	orders     orderReader
	recipients recipientReader
	renderer   renderer
	inbox      inboxWriter
	push       pushSender
	alerter    failureAlerter

	now func() time.Time

	inFlight atomic.Bool
	mu       sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher. alerter may be nil.
func NewDispatcher(
	cfg DispatcherConfig,
	store recordStore,
	orders orderReader,
	recipients recipientReader,
	r renderer,
	inbox inboxWriter,
	p pushSender,
	alerter failureAlerter,
) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = 5 * time.Minute
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = 10 * time.Second
	}

	return &Dispatcher{
		cfg:        cfg,
		store:      store,
		orders:     orders,
		recipients: recipients,
		renderer:   r,
		inbox:      inbox,
		push:       p,
		alerter:    alerter,
		now:        time.Now,
	}
}

// Start runs the polling loop in the background until Stop is called or ctx ends.
// Calling Start on a running dispatcher does nothing.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)

	d.wg.Add(1)
	go d.loop(ctx)

	zlog.Logger.Info().
		Str("worker_id", d.cfg.WorkerID).
		Dur("interval", d.cfg.Interval).
		Int("batch_size", d.cfg.BatchSize).
		Msg("dispatcher started")
}

// Stop ends the loop and waits for the batch in flight to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	d.wg.Wait()

	zlog.Logger.Info().Str("worker_id", d.cfg.WorkerID).Msg("dispatcher stopped")
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	d.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// tick starts a batch without blocking the loop; a tick that finds a batch in
// flight is dropped.
func (d *Dispatcher) tick(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		res, err := d.RunOnce(ctx)
		switch {
		case errors.Is(err, ErrTickInFlight):
			zlog.Logger.Debug().Msg("previous dispatch tick still running, skipping")
		case err != nil:
			zlog.Logger.Error().Err(err).Msg("dispatch tick failed")
		case res.Claimed > 0:
			zlog.Logger.Info().
				Int("claimed", res.Claimed).
				Int("sent", res.Sent).
				Int("skipped", res.Skipped).
				Int("retried", res.Retried).
				Int("failed", res.Failed).
				Msg("dispatch tick finished")
		}
	}()
}

// RunOnce claims one batch of due reminders and processes each of them.
//
// A failure of one record never affects the others. Once claimed, a batch is
// processed to the end even if ctx is cancelled, but never past the claim lease:
// records still untouched when the lease runs out are left for whichever worker
// reclaims them.
func (d *Dispatcher) RunOnce(ctx context.Context) (Result, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrTickInFlight
	}
	defer d.inFlight.Store(false)

	now := d.now()
	leaseEnd := now.Add(d.cfg.ClaimLease)

	records, err := d.store.ClaimDueBatch(ctx, now, now.Add(-d.cfg.ClaimLease), d.cfg.BatchSize, d.cfg.WorkerID)
	if err != nil {
		return Result{}, fmt.Errorf("claim due records: %w", err)
	}

	res := Result{Claimed: len(records)}
	batchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.ClaimLease)
	defer cancel()

	for i, rec := range records {
		if !d.now().Before(leaseEnd) {
			zlog.Logger.Warn().
				Str("worker_id", d.cfg.WorkerID).
				Int("left", len(records)-i).
				Msg("claim lease ran out, leaving the rest of the batch")
			break
		}

		res.add(d.process(batchCtx, rec))
	}

	return res, nil
}

// process takes a claimed record to its next state and returns that state.
func (d *Dispatcher) process(ctx context.Context, rec model.NotificationRecord) model.Status {
	log := zlog.Logger.With().
		Str("record_id", rec.ID.String()).
		Str("order_id", rec.OrderID.String()).
		Str("kind", string(rec.Kind)).
		Int("attempt", rec.AttemptCount).
		Logger()

	status, err := d.deliverSafely(ctx, rec, log)
	if err == nil {
		return status
	}

	log.Warn().Err(err).Msg("reminder delivery failed")

	status, relErr := d.store.Release(ctx, rec.ID, d.cfg.WorkerID, err.Error(), d.cfg.MaxAttempts)
	if relErr != nil {
		if errors.Is(relErr, notification.ErrNotClaimed) {
			log.Warn().Msg("claim taken over by another worker, release dropped")
		} else {
			log.Error().Err(relErr).Msg("failed to release reminder")
		}
		return model.StatusProcessing
	}

	if status == model.StatusFailed {
		log.Error().Err(err).Msg("reminder failed permanently")
		if d.alerter != nil {
			d.alerter.ReminderFailed(ctx, rec, err.Error())
		}
	}

	return status
}

func (d *Dispatcher) deliverSafely(
	ctx context.Context, rec model.NotificationRecord, log zerolog.Logger,
) (status model.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while delivering: %v", r)
		}
	}()

	return d.deliver(ctx, rec, log)
}

func (d *Dispatcher) deliver(ctx context.Context, rec model.NotificationRecord, log zerolog.Logger) (model.Status, error) {
	// A claim taken over after its lease expired may already be past the limit.
	if rec.AttemptCount > d.cfg.MaxAttempts {
		return "", errors.New("attempts exhausted after abandoned claim")
	}

	order, err := d.orders.GetOrder(ctx, rec.OrderID)
	if err != nil {
		return "", fmt.Errorf("get order: %w", err)
	}

	// Cancel is expected to have skipped these already; this covers the race.
	if order.Terminal() {
		reason := "order " + string(order.Status)
		if order.DeletedAt != nil {
			reason = "order deleted"
		}

		if err := d.store.MarkSkipped(ctx, rec.ID, d.cfg.WorkerID, reason); err != nil {
			return "", fmt.Errorf("mark skipped: %w", err)
		}

		log.Info().Str("reason", reason).Msg("reminder skipped")
		return model.StatusSkipped, nil
	}

	recipient, err := d.recipients.GetRecipient(ctx, rec.TargetUserID)
	if err != nil {
		return "", fmt.Errorf("get recipient: %w", err)
	}

	rendered, err := d.renderer.Render(rec.Kind, order)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	if _, err := d.inbox.Create(ctx, model.UserNotification{
		UserID:   rec.TargetUserID,
		OrderID:  &order.ID,
		RecordID: &rec.ID,
		Kind:     string(rec.Kind),
		Title:    rendered.Title,
		Message:  rendered.Body,
	}); err != nil {
		return "", fmt.Errorf("create inbox entry: %w", err)
	}

	if recipient.DeviceToken != "" {
		d.sendPush(ctx, rec, order, recipient.DeviceToken, rendered, log)
	}

	if err := d.store.MarkSent(ctx, rec.ID, d.cfg.WorkerID, d.now()); err != nil {
		return "", fmt.Errorf("mark sent: %w", err)
	}

	log.Info().Str("user_id", rec.TargetUserID.String()).Msg("reminder sent")

	return model.StatusSent, nil
}

// sendPush makes one push attempt. The inbox entry already exists, so failures
// are only logged.
func (d *Dispatcher) sendPush(
	ctx context.Context,
	rec model.NotificationRecord,
	order model.Order,
	token string,
	rendered message.Rendered,
	log zerolog.Logger,
) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.PushTimeout)
	defer cancel()

	_, err := d.push.Send(ctx, push.Message{
		To:    token,
		Title: rendered.Title,
		Body:  rendered.Body,
		Data: map[string]any{
			"orderId":  order.ID.String(),
			"orderNo":  order.OrderNo,
			"recordId": rec.ID.String(),
			"type":     string(rec.Kind),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("push delivery failed, inbox entry kept")
	}
}
