package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

const getRecipientQuery = `
		SELECT u.id, u.name, COALESCE(t.token, '')
		FROM users u
		LEFT JOIN LATERAL (
		    SELECT token
		    FROM device_tokens
		    WHERE user_id = u.id
		    ORDER BY last_seen_at DESC
		    LIMIT 1
		) t ON TRUE
		WHERE u.id = $1;
`

const registerTokenQuery = `
		INSERT INTO device_tokens (user_id, platform, token, last_seen_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    platform = EXCLUDED.platform,
		    last_seen_at = NOW()
		RETURNING id, user_id, platform, token, last_seen_at;
`

const listTokensQuery = `
		SELECT token
		FROM device_tokens
		WHERE user_id = $1
		ORDER BY last_seen_at DESC;
`

// Repository provides access to users and their device tokens.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new device repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetRecipient returns the user with the token of the most recently seen device.
func (r *Repository) GetRecipient(ctx context.Context, userID uuid.UUID) (model.Recipient, error) {
	var rec model.Recipient

	err := r.db.QueryRowContext(ctx, getRecipientQuery, userID).Scan(&rec.ID, &rec.Name, &rec.DeviceToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Recipient{}, ErrUserNotFound
		}

		return model.Recipient{}, fmt.Errorf("get recipient: %w", err)
	}

	return rec, nil
}

// RegisterToken stores a device token for the user.
//
// A token already known is moved to userID and its last_seen_at refreshed.
func (r *Repository) RegisterToken(ctx context.Context, userID uuid.UUID, platform, token string) (model.DeviceToken, error) {
	var d model.DeviceToken

	err := r.db.Master.QueryRowContext(ctx, registerTokenQuery, userID, platform, token).Scan(
		&d.ID, &d.UserID, &d.Platform, &d.Token, &d.LastSeenAt,
	)
	if err != nil {
		return model.DeviceToken{}, fmt.Errorf("register device token: %w", err)
	}

	return d, nil
}

// Tokens returns all device tokens of a user, most recently seen first.
func (r *Repository) Tokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listTokensQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}

		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate device tokens: %w", err)
	}

	return tokens, nil
}
