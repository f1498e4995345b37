package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"propmatch/internal/common"
	"propmatch/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, proposal_id, message, category, sent_at, read`

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	n.ID = common.NewUUID()
	n.SentAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO notifications (id, user_id, proposal_id, message, category, sent_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.ProposalID, n.Message, n.Category, n.SentAt, n.Read)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID common.UUID) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY sent_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var proposalID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &proposalID, &n.Message, &n.Category, &n.SentAt, &n.Read); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		if proposalID.Valid {
			id := common.UUID(proposalID.String)
			n.ProposalID = &id
		}
		items = append(items, n)
	}
	return items, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id common.UUID) (*notification.Notification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	var n notification.Notification
	var proposalID sql.NullString
	if err := row.Scan(&n.ID, &n.UserID, &proposalID, &n.Message, &n.Category, &n.SentAt, &n.Read); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "notification not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load notification", err)
	}
	if proposalID.Valid {
		pid := common.UUID(proposalID.String)
		n.ProposalID = &pid
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notification read", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", sql.ErrNoRows)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notification", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", sql.ErrNoRows)
	}
	return nil
}
