package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/pickup-notifier/internal/message"
	"github.com/aliskhannn/pickup-notifier/internal/model"
	"github.com/aliskhannn/pickup-notifier/internal/repository/notification"
	orderrepo "github.com/aliskhannn/pickup-notifier/internal/repository/order"
	"github.com/aliskhannn/pickup-notifier/internal/schedule"
	"github.com/aliskhannn/pickup-notifier/internal/service/reminder"
	"github.com/aliskhannn/pickup-notifier/pkg/push"
)

// memStore mimics the claim semantics of the notification_records table.
type memStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*model.NotificationRecord
}

func newMemStore() *memStore {
	return &memStore{records: map[uuid.UUID]*model.NotificationRecord{}}
}

func (m *memStore) add(rec model.NotificationRecord) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = model.StatusScheduled
	}
	m.records[rec.ID] = &rec

	return rec.ID
}

func (m *memStore) get(id uuid.UUID) model.NotificationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.records[id]
}

func (m *memStore) SaveSchedule(_ context.Context, orderID uuid.UUID, recs []model.NotificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range recs {
		r := r
		var existing *model.NotificationRecord
		for _, e := range m.records {
			if e.OrderID == orderID && e.Kind == r.Kind {
				existing = e
			}
		}

		switch {
		case existing == nil:
			r.ID = uuid.New()
			r.Status = model.StatusScheduled
			m.records[r.ID] = &r
		case existing.Status == model.StatusScheduled, superseded(existing):
			existing.ScheduledFor = r.ScheduledFor
			existing.Status = model.StatusScheduled
			existing.Error = nil
		}
	}

	for _, e := range m.records {
		if e.OrderID != orderID || e.Status != model.StatusScheduled || planned(recs, e.Kind) {
			continue
		}

		reason := notification.SupersededReason
		e.Status = model.StatusSkipped
		e.Error = &reason
	}

	return nil
}

func superseded(r *model.NotificationRecord) bool {
	return r.Status == model.StatusSkipped && r.Error != nil && *r.Error == notification.SupersededReason
}

func planned(recs []model.NotificationRecord, kind model.Kind) bool {
	for _, r := range recs {
		if r.Kind == kind {
			return true
		}
	}

	return false
}

func (m *memStore) CancelScheduled(_ context.Context, orderID uuid.UUID, reason string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, r := range m.records {
		if r.OrderID == orderID && r.Status == model.StatusScheduled {
			r.Status = model.StatusSkipped
			r.Error = &reason
			n++
		}
	}

	return n, nil
}

func (m *memStore) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.NotificationRecord
	for _, r := range m.records {
		if r.OrderID == orderID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })

	return out, nil
}

func (m *memStore) ClaimDueBatch(
	_ context.Context, now, leaseCutoff time.Time, limit int, workerID string,
) ([]model.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var due []*model.NotificationRecord
	for _, r := range m.records {
		scheduled := r.Status == model.StatusScheduled && !r.ScheduledFor.After(now)
		abandoned := r.Status == model.StatusProcessing && r.ClaimedAt != nil && !r.ClaimedAt.After(leaseCutoff)
		if scheduled || abandoned {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledFor.Before(due[j].ScheduledFor) })

	if len(due) > limit {
		due = due[:limit]
	}

	out := make([]model.NotificationRecord, 0, len(due))
	for _, r := range due {
		claimedAt, claimedBy := now, workerID
		r.Status = model.StatusProcessing
		r.AttemptCount++
		r.ClaimedAt = &claimedAt
		r.ClaimedBy = &claimedBy
		out = append(out, *r)
	}

	return out, nil
}

func (m *memStore) claimed(id uuid.UUID, workerID string) (*model.NotificationRecord, error) {
	r, ok := m.records[id]
	if !ok || r.Status != model.StatusProcessing || r.ClaimedBy == nil || *r.ClaimedBy != workerID {
		return nil, notification.ErrNotClaimed
	}

	return r, nil
}

func (m *memStore) MarkSent(_ context.Context, id uuid.UUID, workerID string, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.claimed(id, workerID)
	if err != nil {
		return err
	}
	r.Status = model.StatusSent
	r.SentAt = &sentAt

	return nil
}

func (m *memStore) MarkSkipped(_ context.Context, id uuid.UUID, workerID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.claimed(id, workerID)
	if err != nil {
		return err
	}
	r.Status = model.StatusSkipped
	r.Error = &reason

	return nil
}

func (m *memStore) Release(
	_ context.Context, id uuid.UUID, workerID, reason string, maxAttempts int,
) (model.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.claimed(id, workerID)
	if err != nil {
		return "", err
	}

	r.Status = model.StatusScheduled
	if r.AttemptCount >= maxAttempts {
		r.Status = model.StatusFailed
	}
	r.Error = &reason
	r.ClaimedAt = nil
	r.ClaimedBy = nil

	return r.Status, nil
}

type fakeOrders map[uuid.UUID]model.Order

func (f fakeOrders) GetOrder(_ context.Context, id uuid.UUID) (model.Order, error) {
	o, ok := f[id]
	if !ok {
		return model.Order{}, orderrepo.ErrOrderNotFound
	}

	return o, nil
}

type fakeRecipients map[uuid.UUID]string

func (f fakeRecipients) GetRecipient(_ context.Context, userID uuid.UUID) (model.Recipient, error) {
	return model.Recipient{ID: userID, Name: "Customer", DeviceToken: f[userID]}, nil
}

type fakeInbox struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.UserNotification // by record id
}

func newFakeInbox() *fakeInbox {
	return &fakeInbox{rows: map[uuid.UUID]model.UserNotification{}}
}

func (f *fakeInbox) Create(_ context.Context, n model.UserNotification) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[*n.RecordID]; ok {
		return uuid.Nil, nil
	}
	n.ID = uuid.New()
	f.rows[*n.RecordID] = n

	return n.ID, nil
}

func (f *fakeInbox) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.rows)
}

type fakePush struct {
	mu     sync.Mutex
	calls  []push.Message
	delay  time.Duration
	err    error
	onSend func(msg push.Message) // runs before the call is recorded
}

func (f *fakePush) Send(_ context.Context, msg push.Message) (push.Ticket, error) {
	time.Sleep(f.delay)
	if f.onSend != nil {
		f.onSend(msg)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, msg)
	if f.err != nil {
		return push.Ticket{Status: "error"}, f.err
	}

	return push.Ticket{Status: "ok"}, nil
}

func (f *fakePush) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// flakyRenderer fails or panics for selected orders.
type flakyRenderer struct {
	inner   *message.Renderer
	failFor map[uuid.UUID]bool
	panicOn map[uuid.UUID]bool
}

func (r flakyRenderer) Render(kind model.Kind, order model.Order) (message.Rendered, error) {
	if r.panicOn[order.ID] {
		panic("template exploded")
	}
	if r.failFor[order.ID] {
		return message.Rendered{}, errors.New("cannot render")
	}

	return r.inner.Render(kind, order)
}

type fakeAlerter struct {
	mu     sync.Mutex
	failed []uuid.UUID
}

func (f *fakeAlerter) ReminderFailed(_ context.Context, rec model.NotificationRecord, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failed = append(f.failed, rec.ID)
}

type harness struct {
	store      *memStore
	orders     fakeOrders
	recipients fakeRecipients
	renderer   flakyRenderer
	inbox      *fakeInbox
	push       *fakePush
	alerter    *fakeAlerter
}

func newHarness() *harness {
	return &harness{
		store:      newMemStore(),
		orders:     fakeOrders{},
		recipients: fakeRecipients{},
		renderer: flakyRenderer{
			inner:   message.NewRenderer(time.UTC),
			failFor: map[uuid.UUID]bool{},
			panicOn: map[uuid.UUID]bool{},
		},
		inbox:   newFakeInbox(),
		push:    &fakePush{},
		alerter: &fakeAlerter{},
	}
}

func (h *harness) dispatcher(workerID string, now time.Time) *Dispatcher {
	d := NewDispatcher(
		DispatcherConfig{WorkerID: workerID, BatchSize: 20, MaxAttempts: 3, Interval: 10 * time.Millisecond},
		h.store, h.orders, h.recipients, h.renderer, h.inbox, h.push, h.alerter,
	)
	d.now = func() time.Time { return now }

	return d
}

func (h *harness) order(pickup time.Time) model.Order {
	o := model.Order{
		ID:        uuid.New(),
		OrderNo:   "1001",
		PickupAt:  pickup,
		Status:    model.OrderReady,
		CreatedBy: uuid.New(),
	}
	h.orders[o.ID] = o

	return o
}

func (h *harness) due(o model.Order, kind model.Kind, at time.Time) uuid.UUID {
	return h.store.add(model.NotificationRecord{
		OrderID:      o.ID,
		TargetUserID: o.CreatedBy,
		Kind:         kind,
		ScheduledFor: at,
	})
}

func TestDispatcher_ConcreteExample(t *testing.T) {
	h := newHarness()

	// Pickup at 15:00 UTC two calendar days from now, so scheduling happens about 48h ahead.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	pickup := today.Add(48*time.Hour + 15*time.Hour)
	o := h.order(pickup)

	svc := reminder.NewService(h.orders, h.store, schedule.NewPlanner(time.UTC, 9, 0), retry.Strategy{Attempts: 1})

	n, err := svc.Schedule(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	records, err := svc.Records(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.KindDayBefore, records[0].Kind)
	assert.True(t, records[0].ScheduledFor.Equal(pickup.Add(-24*time.Hour)))
	assert.Equal(t, model.KindSameDay, records[1].Kind)
	assert.True(t, records[1].ScheduledFor.Equal(today.Add(48*time.Hour+9*time.Hour)))

	d := h.dispatcher("w1", pickup.Add(-24*time.Hour))

	res, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 1, Sent: 1}, res)

	dayBefore := h.store.get(records[0].ID)
	assert.Equal(t, model.StatusSent, dayBefore.Status)
	require.NotNil(t, dayBefore.SentAt)
	assert.Equal(t, model.StatusScheduled, h.store.get(records[1].ID).Status)

	require.Equal(t, 1, h.inbox.count())
	entry := h.inbox.rows[records[0].ID]
	assert.Equal(t, o.CreatedBy, entry.UserID)
	assert.Equal(t, "📅 Order Pickup Reminder", entry.Title)
	assert.Equal(t, "Your order #1001 is ready for pickup tomorrow at 03:00 PM", entry.Message)
	assert.Zero(t, h.push.count())
}

func TestDispatcher_ExclusiveClaim(t *testing.T) {
	h := newHarness()
	h.push.delay = 20 * time.Millisecond

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	h.recipients[o.CreatedBy] = "ExponentPushToken[abc]"
	id := h.due(o, model.KindSameDay, now.Add(-time.Minute))

	dispatchers := []*Dispatcher{h.dispatcher("w1", now), h.dispatcher("w2", now)}
	results := make([]Result, len(dispatchers))

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i, d := range dispatchers {
		wg.Add(1)
		go func(i int, d *Dispatcher) {
			defer wg.Done()
			<-start
			res, err := d.RunOnce(context.Background())
			assert.NoError(t, err)
			results[i] = res
		}(i, d)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, results[0].Sent+results[1].Sent)
	assert.Equal(t, 1, h.push.count())
	assert.Equal(t, model.StatusSent, h.store.get(id).Status)
	assert.Equal(t, 1, h.store.get(id).AttemptCount)
}

func TestDispatcher_CancellationSuppressesDelivery(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(30 * time.Hour))
	h.recipients[o.CreatedBy] = "ExponentPushToken[abc]"
	first := h.due(o, model.KindDayBefore, now.Add(6*time.Hour))
	second := h.due(o, model.KindSameDay, now.Add(20*time.Hour))

	svc := reminder.NewService(h.orders, h.store, schedule.NewPlanner(time.UTC, 9, 0), retry.Strategy{Attempts: 1})
	n, err := svc.Cancel(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	res, err := h.dispatcher("w1", now.Add(25*time.Hour)).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Claimed)

	assert.Equal(t, model.StatusSkipped, h.store.get(first).Status)
	assert.Equal(t, model.StatusSkipped, h.store.get(second).Status)
	assert.Equal(t, reminder.CancelReason, *h.store.get(second).Error)
	assert.Zero(t, h.push.count())
	assert.Zero(t, h.inbox.count())
}

func TestDispatcher_BoundedRetry(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	h.renderer.failFor[o.ID] = true
	id := h.due(o, model.KindSameDay, now.Add(-time.Minute))

	d := h.dispatcher("w1", now)

	want := []struct {
		status  model.Status
		attempt int
	}{
		{model.StatusScheduled, 1},
		{model.StatusScheduled, 2},
		{model.StatusFailed, 3},
	}

	for _, w := range want {
		_, err := d.RunOnce(context.Background())
		require.NoError(t, err)

		rec := h.store.get(id)
		assert.Equal(t, w.status, rec.Status)
		assert.Equal(t, w.attempt, rec.AttemptCount)
		require.NotNil(t, rec.Error)
		assert.Contains(t, *rec.Error, "cannot render")
	}

	res, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Claimed)
	assert.Equal(t, []uuid.UUID{id}, h.alerter.failed)
}

func TestDispatcher_PartialSuccess(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o1, o2, o3 := h.order(now.Add(time.Hour)), h.order(now.Add(time.Hour)), h.order(now.Add(time.Hour))
	h.renderer.failFor[o2.ID] = true

	r1 := h.due(o1, model.KindSameDay, now.Add(-3*time.Minute))
	r2 := h.due(o2, model.KindSameDay, now.Add(-2*time.Minute))
	r3 := h.due(o3, model.KindSameDay, now.Add(-time.Minute))

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 3, Sent: 2, Retried: 1}, res)

	assert.Equal(t, model.StatusSent, h.store.get(r1).Status)
	assert.Equal(t, model.StatusScheduled, h.store.get(r2).Status)
	assert.Equal(t, model.StatusSent, h.store.get(r3).Status)
}

func TestDispatcher_PanicIsContained(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o1, o2 := h.order(now.Add(time.Hour)), h.order(now.Add(time.Hour))
	h.renderer.panicOn[o1.ID] = true

	r1 := h.due(o1, model.KindSameDay, now.Add(-2*time.Minute))
	r2 := h.due(o2, model.KindSameDay, now.Add(-time.Minute))

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	rec := h.store.get(r1)
	assert.Equal(t, model.StatusScheduled, rec.Status)
	require.NotNil(t, rec.Error)
	assert.Contains(t, *rec.Error, "template exploded")
	assert.Equal(t, model.StatusSent, h.store.get(r2).Status)
}

func TestDispatcher_PushFailureStillSent(t *testing.T) {
	h := newHarness()
	h.push.err = push.ErrDeliveryFailed

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	h.recipients[o.CreatedBy] = "ExponentPushToken[abc]"
	id := h.due(o, model.KindSameDay, now.Add(-time.Minute))

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	assert.Equal(t, model.StatusSent, h.store.get(id).Status)
	assert.Equal(t, 1, h.push.count())
	assert.Equal(t, 1, h.inbox.count())

	msg := h.push.calls[0]
	assert.Equal(t, "ExponentPushToken[abc]", msg.To)
	assert.Equal(t, o.ID.String(), msg.Data["orderId"])
}

func TestDispatcher_SkipsTerminalOrder(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	o.Status = model.OrderCompleted
	h.orders[o.ID] = o
	h.recipients[o.CreatedBy] = "ExponentPushToken[abc]"
	id := h.due(o, model.KindSameDay, now.Add(-time.Minute))

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)

	rec := h.store.get(id)
	assert.Equal(t, model.StatusSkipped, rec.Status)
	require.NotNil(t, rec.Error)
	assert.Equal(t, "order COMPLETED", *rec.Error)
	assert.Zero(t, h.inbox.count())
	assert.Zero(t, h.push.count())
}

func TestDispatcher_SkipsRowsWrittenAfterCancel(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	h.recipients[o.CreatedBy] = "ExponentPushToken[abc]"

	svc := reminder.NewService(h.orders, h.store, schedule.NewPlanner(time.UTC, 9, 0), retry.Strategy{Attempts: 1})

	// The cancelled event commits first and finds nothing to skip.
	o.Status = model.OrderCancelled
	h.orders[o.ID] = o
	n, err := svc.Cancel(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// A created event that read the order earlier writes its rows afterwards.
	id := h.due(o, model.KindSameDay, now.Add(-time.Minute))

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 1, Skipped: 1}, res)

	rec := h.store.get(id)
	assert.Equal(t, model.StatusSkipped, rec.Status)
	require.NotNil(t, rec.Error)
	assert.Equal(t, "order CANCELLED", *rec.Error)
	assert.Zero(t, h.push.count())
	assert.Zero(t, h.inbox.count())
}

func TestDispatcher_ReclaimsAbandonedClaim(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	claimedAt := now.Add(-10 * time.Minute)
	id := h.store.add(model.NotificationRecord{
		OrderID:      o.ID,
		TargetUserID: o.CreatedBy,
		Kind:         model.KindSameDay,
		ScheduledFor: now.Add(-15 * time.Minute),
		Status:       model.StatusProcessing,
		AttemptCount: 1,
		ClaimedAt:    &claimedAt,
	})

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	rec := h.store.get(id)
	assert.Equal(t, model.StatusSent, rec.Status)
	assert.Equal(t, 2, rec.AttemptCount)
}

func TestDispatcher_AbandonedClaimPastLimitFails(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	claimedAt := now.Add(-10 * time.Minute)
	id := h.store.add(model.NotificationRecord{
		OrderID:      o.ID,
		TargetUserID: o.CreatedBy,
		Kind:         model.KindSameDay,
		ScheduledFor: now.Add(-15 * time.Minute),
		Status:       model.StatusProcessing,
		AttemptCount: 3,
		ClaimedAt:    &claimedAt,
	})

	res, err := h.dispatcher("w1", now).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, model.StatusFailed, h.store.get(id).Status)
	assert.Zero(t, h.inbox.count())
}

func TestDispatcher_RunOnceInFlight(t *testing.T) {
	h := newHarness()
	d := h.dispatcher("w1", time.Now())

	d.inFlight.Store(true)

	_, err := d.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrTickInFlight)
}

func TestDispatcher_StartStop(t *testing.T) {
	h := newHarness()

	now := time.Now()
	o := h.order(now.Add(time.Hour))
	id := h.due(o, model.KindSameDay, now.Add(-time.Minute))

	d := h.dispatcher("w1", now)
	d.Start(context.Background())
	d.Start(context.Background())

	require.Eventually(t, func() bool {
		return h.store.get(id).Status == model.StatusSent
	}, time.Second, 5*time.Millisecond)

	d.Stop()
	d.Stop()
}

// clock is a settable time source shared by a test and a dispatcher.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func TestDispatcher_StopsBatchWhenLeaseRunsOut(t *testing.T) {
	h := newHarness()

	start := time.Now()
	o1, o2 := h.order(start.Add(time.Hour)), h.order(start.Add(time.Hour))
	h.recipients[o1.CreatedBy] = "ExponentPushToken[one]"
	h.recipients[o2.CreatedBy] = "ExponentPushToken[two]"
	r1 := h.due(o1, model.KindSameDay, start.Add(-2*time.Minute))
	r2 := h.due(o2, model.KindSameDay, start.Add(-time.Minute))

	// The first push of A outlives the five minute lease.
	clk := &clock{now: start}
	h.push.onSend = func(push.Message) { clk.Advance(6 * time.Minute) }

	a := h.dispatcher("A", start)
	a.now = clk.Now

	res, err := a.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 2, Sent: 1}, res)
	assert.Equal(t, model.StatusSent, h.store.get(r1).Status)
	assert.Equal(t, model.StatusProcessing, h.store.get(r2).Status)

	h.push.onSend = nil
	res, err = h.dispatcher("B", start.Add(6*time.Minute)).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 1, Sent: 1}, res)

	rec := h.store.get(r2)
	assert.Equal(t, model.StatusSent, rec.Status)
	assert.Equal(t, 2, rec.AttemptCount)
	require.NotNil(t, rec.ClaimedBy)
	assert.Equal(t, "B", *rec.ClaimedBy)

	require.Equal(t, 2, h.push.count())
	assert.NotEqual(t, h.push.calls[0].To, h.push.calls[1].To)
}

func TestDispatcher_StaleClaimCannotOverwriteTakeover(t *testing.T) {
	h := newHarness()

	start := time.Now()
	o := h.order(start.Add(time.Hour))
	h.recipients[o.CreatedBy] = "ExponentPushToken[abc]"
	id := h.due(o, model.KindSameDay, start.Add(-time.Minute))

	a := h.dispatcher("A", start)
	b := h.dispatcher("B", start.Add(6*time.Minute))

	// While A is stuck in its push, B takes the expired claim over.
	var takeover Result
	h.push.onSend = func(push.Message) {
		h.push.onSend = nil
		var err error
		takeover, err = b.RunOnce(context.Background())
		assert.NoError(t, err)
	}

	res, err := a.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 1}, res)
	assert.Equal(t, Result{Claimed: 1, Sent: 1}, takeover)

	rec := h.store.get(id)
	assert.Equal(t, model.StatusSent, rec.Status)
	assert.Nil(t, rec.Error)
	require.NotNil(t, rec.ClaimedBy)
	assert.Equal(t, "B", *rec.ClaimedBy)
	assert.Empty(t, h.alerter.failed)
	assert.Equal(t, 1, h.inbox.count())
}

func TestSchedule_PickupMovedBackRestoresSameDay(t *testing.T) {
	h := newHarness()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	pickupDay := today.Add(48 * time.Hour)
	o := h.order(pickupDay.Add(15 * time.Hour))

	svc := reminder.NewService(h.orders, h.store, schedule.NewPlanner(time.UTC, 9, 0), retry.Strategy{Attempts: 1})
	ctx := context.Background()

	reschedule := func(pickup time.Time) map[model.Kind]model.NotificationRecord {
		o.PickupAt = pickup
		h.orders[o.ID] = o

		_, err := svc.Schedule(ctx, o.ID)
		require.NoError(t, err)

		records, err := svc.Records(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, records, 2)

		byKind := make(map[model.Kind]model.NotificationRecord, len(records))
		for _, r := range records {
			byKind[r.Kind] = r
		}

		return byKind
	}

	records := reschedule(pickupDay.Add(15 * time.Hour))
	assert.Equal(t, model.StatusScheduled, records[model.KindSameDay].Status)
	assert.Equal(t, model.StatusScheduled, records[model.KindDayBefore].Status)

	// 08:00 is before the same-day slot, so that reminder is dropped.
	records = reschedule(pickupDay.Add(8 * time.Hour))
	sameDay := records[model.KindSameDay]
	assert.Equal(t, model.StatusSkipped, sameDay.Status)
	require.NotNil(t, sameDay.Error)
	assert.Equal(t, notification.SupersededReason, *sameDay.Error)
	assert.Equal(t, model.StatusScheduled, records[model.KindDayBefore].Status)
	assert.True(t, records[model.KindDayBefore].ScheduledFor.Equal(pickupDay.Add(-16*time.Hour)))

	// Back to 15:00: the same-day reminder is planned again.
	records = reschedule(pickupDay.Add(15 * time.Hour))
	for kind, r := range records {
		assert.Equal(t, model.StatusScheduled, r.Status, kind)
		assert.Nil(t, r.Error, kind)
	}
	assert.True(t, records[model.KindSameDay].ScheduledFor.Equal(pickupDay.Add(9*time.Hour)))
	assert.True(t, records[model.KindDayBefore].ScheduledFor.Equal(pickupDay.Add(-9*time.Hour)))

	res, err := h.dispatcher("w1", pickupDay.Add(9*time.Hour)).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Claimed: 2, Sent: 2}, res)
}

func TestSchedule_CancelledRemindersStayCancelled(t *testing.T) {
	h := newHarness()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	o := h.order(today.Add(48*time.Hour + 15*time.Hour))

	svc := reminder.NewService(h.orders, h.store, schedule.NewPlanner(time.UTC, 9, 0), retry.Strategy{Attempts: 1})
	ctx := context.Background()

	_, err := svc.Schedule(ctx, o.ID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, o.ID)
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, o.ID)
	require.NoError(t, err)

	records, err := svc.Records(ctx, o.ID)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, model.StatusSkipped, r.Status, r.Kind)
	}
}
