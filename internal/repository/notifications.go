package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	domain "promobook/internal/domain/notifications"
)

type notificationRow struct {
	ID        uuid.UUID  `db:"id"`
	UserID    string     `db:"user_id"`
	Type      string     `db:"type"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	LinkURL   string     `db:"link_url"`
	ImageURL  string     `db:"image_url"`
	Metadata  []byte     `db:"metadata"`
	IsRead    bool       `db:"is_read"`
	CreatedAt time.Time  `db:"created_at"`
	ReadAt    *time.Time `db:"read_at"`
}

type NotificationsRepo struct {
	db *sqlx.DB
}

func NewNotificationsRepo(db *sqlx.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n domain.Notification) error {
	var metadata []byte
	if n.Metadata != nil {
		var err error
		metadata, err = json.Marshal(n.Metadata)
		if err != nil {
			return fmt.Errorf("marshal notification metadata: %w", err)
		}
	}

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO notifications (
			id, user_id, type, title, message, link_url, image_url,
			metadata, is_read, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9
		)`

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.LinkURL,
		n.ImageURL,
		metadata,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *NotificationsRepo) ListByUser(ctx context.Context, userID string, opts domain.ListOptions) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, link_url, image_url,
			metadata, is_read, created_at, read_at
		FROM notifications
		WHERE user_id = $1`
	args := []any{userID}

	if opts.UnreadOnly {
		query += ` AND is_read = FALSE`
	}

	if len(opts.Types) > 0 {
		placeholders := make([]string, 0, len(opts.Types))
		for _, t := range opts.Types {
			args = append(args, string(t))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		query += ` AND type IN (` + strings.Join(placeholders, ", ") + `)`
	}

	query += ` ORDER BY created_at DESC`

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := rowToNotification(row)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}

	return result, nil
}

func (r *NotificationsRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	return nil
}

func rowToNotification(row notificationRow) (domain.Notification, error) {
	n := domain.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      domain.Type(row.Type),
		Title:     row.Title,
		Message:   row.Message,
		LinkURL:   row.LinkURL,
		ImageURL:  row.ImageURL,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
		ReadAt:    row.ReadAt,
	}

	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &n.Metadata); err != nil {
			return domain.Notification{}, fmt.Errorf("unmarshal notification metadata: %w", err)
		}
	}

	return n, nil
}
