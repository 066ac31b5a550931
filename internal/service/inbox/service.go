package inbox

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/model"
	"github.com/aliskhannn/pickup-notifier/pkg/push"
)

var ErrForbidden = errors.New("notification belongs to another user")

const (
	DefaultLimit = 50
	MaxLimit     = 100

	KindTest = "test"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/inbox/mock.go -package=mocks
type inboxRepository interface {
	Create(ctx context.Context, n model.UserNotification) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (model.UserNotification, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.UserNotification, error)
	Count(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

type tokenLister interface {
	Tokens(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type pusher interface {
	SendBulk(ctx context.Context, msgs []push.Message) ([]push.Ticket, error)
}

// Query selects a page of a user's inbox.
type Query struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// Page is one page of a user's inbox.
type Page struct {
	Notifications []model.UserNotification `json:"notifications"`
	Total         int                      `json:"total"`
	Unread        int                      `json:"unread"`
	Limit         int                      `json:"limit"`
	Offset        int                      `json:"offset"`
}

// Service manages the in-app inbox. Unread counts are cached in Redis and
// refreshed after every change.
type Service struct {
	repo     inboxRepository
	cache    cache
	tokens   tokenLister
	push     pusher
	strategy retry.Strategy
}

// NewService creates an inbox service.
func NewService(repo inboxRepository, cache cache, tokens tokenLister, push pusher, strategy retry.Strategy) *Service {
	return &Service{repo: repo, cache: cache, tokens: tokens, push: push, strategy: strategy}
}

// Create stores an inbox entry. An entry for a record that already has one is
// not duplicated and uuid.Nil is returned.
func (s *Service) Create(ctx context.Context, n model.UserNotification) (uuid.UUID, error) {
	id, err := s.repo.Create(ctx, n)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create inbox entry: %w", err)
	}

	s.refreshUnread(ctx, n.UserID)

	return id, nil
}

// List returns a page of the user's inbox, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, q Query) (Page, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	list, err := s.repo.List(ctx, userID, q.UnreadOnly, q.Limit, q.Offset)
	if err != nil {
		return Page{}, fmt.Errorf("list inbox: %w", err)
	}

	total, err := s.repo.Count(ctx, userID, q.UnreadOnly)
	if err != nil {
		return Page{}, fmt.Errorf("count inbox: %w", err)
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return Page{}, err
	}

	if list == nil {
		list = []model.UserNotification{}
	}

	return Page{Notifications: list, Total: total, Unread: unread, Limit: q.Limit, Offset: q.Offset}, nil
}

// UnreadCount returns the number of unread entries, served from cache when possible.
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	key := unreadKey(userID)

	cached, err := s.cache.GetWithRetry(ctx, s.strategy, key)
	switch {
	case err == nil:
		if n, convErr := strconv.Atoi(cached); convErr == nil {
			return n, nil
		}
		zlog.Logger.Warn().Str("key", key).Str("value", cached).Msg("malformed unread count in cache")
	case !errors.Is(err, redis.Nil):
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get unread count from cache")
	}

	n, err := s.repo.Count(ctx, userID, true)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	s.setUnread(ctx, userID, n)

	return n, nil
}

// MarkRead marks one of the user's entries as read.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	s.refreshUnread(ctx, userID)

	return nil
}

// MarkAllRead marks every entry of the user as read and returns how many changed.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	s.setUnread(ctx, userID, 0)

	return n, nil
}

// Delete removes one of the user's entries.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inbox entry: %w", err)
	}

	s.refreshUnread(ctx, userID)

	return nil
}

// SendTest puts a test entry in the user's inbox and pushes it to every valid
// device token of the user. It returns the entry and the number of devices the
// gateway accepted. Push failures are logged, not returned.
func (s *Service) SendTest(ctx context.Context, userID uuid.UUID) (model.UserNotification, int, error) {
	n := model.UserNotification{
		UserID:  userID,
		Kind:    KindTest,
		Title:   "🧪 Test Notification",
		Message: "Push notifications are working for your bakery account",
	}

	id, err := s.Create(ctx, n)
	if err != nil {
		return model.UserNotification{}, 0, err
	}
	n.ID = id

	tokens, err := s.tokens.Tokens(ctx, userID)
	if err != nil {
		return n, 0, fmt.Errorf("list device tokens: %w", err)
	}

	msgs := make([]push.Message, 0, len(tokens))
	for _, token := range tokens {
		if !push.ValidToken(token) {
			zlog.Logger.Warn().Str("user_id", userID.String()).Msg("skipping malformed device token")
			continue
		}

		msgs = append(msgs, push.Message{
			To:    token,
			Title: n.Title,
			Body:  n.Message,
			Data:  map[string]any{"type": KindTest, "notification_id": id.String()},
		})
	}

	if len(msgs) == 0 {
		return n, 0, nil
	}

	tickets, err := s.push.SendBulk(ctx, msgs)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("user_id", userID.String()).Msg("test push failed")
	}

	delivered := 0
	for _, t := range tickets {
		if t.Status == "ok" {
			delivered++
		}
	}

	return n, delivered, nil
}

func (s *Service) authorize(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get inbox entry: %w", err)
	}

	if n.UserID != userID {
		return ErrForbidden
	}

	return nil
}

func (s *Service) refreshUnread(ctx context.Context, userID uuid.UUID) {
	n, err := s.repo.Count(ctx, userID, true)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to recount unread notifications")
		return
	}

	s.setUnread(ctx, userID, n)
}

func (s *Service) setUnread(ctx context.Context, userID uuid.UUID, n int) {
	if err := s.cache.SetWithRetry(ctx, s.strategy, unreadKey(userID), n); err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to cache unread count")
	}
}

func unreadKey(userID uuid.UUID) string {
	return "inbox:unread:" + userID.String()
}
