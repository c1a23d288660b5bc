package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// HistoryRepository reads the spin history mirror. The portal's replication
// job is the only writer, this service never inserts into it.
type HistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new PostgreSQL history repository
func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// UserHistory is the history feed of a single user
type UserHistory struct {
	repo   *HistoryRepository
	userID string
}

// ForUser scopes the repository to one user's feed
func (r *HistoryRepository) ForUser(userID string) *UserHistory {
	return &UserHistory{repo: r, userID: userID}
}

// GetHistory returns one page of the user's history, newest first. page is 1-based.
func (h *UserHistory) GetHistory(ctx context.Context, page, pageSize int) (*domain.HistoryPage, error) {
	return h.repo.GetHistory(ctx, h.userID, page, pageSize)
}

// GetHistory returns one page of userID's history, newest first
func (r *HistoryRepository) GetHistory(ctx context.Context, userID string, page, pageSize int) (*domain.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	query := `
		SELECT id, prize_id, prize_type, prize_value, prize_label, emoji,
		       payment_type, payment_amount::text, redeem_code, created_at
		FROM wheel_spin_history
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToQueryHistory, err)
	}
	defer rows.Close()

	items := []domain.HistoryRecord{}
	for rows.Next() {
		rec, err := scanHistoryRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToQueryHistory, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM wheel_spin_history WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToCountHistory, err)
	}

	return &domain.HistoryPage{Items: items, Total: total}, nil
}

// LatestID returns the newest history id of userID, or 0 when the user has no history
func (r *HistoryRepository) LatestID(ctx context.Context, userID string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM wheel_spin_history WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToQueryHistory, err)
	}
	return id, nil
}

func scanHistoryRecord(row pgx.Row) (domain.HistoryRecord, error) {
	var (
		rec    domain.HistoryRecord
		amount string
	)
	err := row.Scan(
		&rec.ID, &rec.PrizeID, &rec.PrizeType, &rec.PrizeValue, &rec.PrizeLabel, &rec.Emoji,
		&rec.PaymentType, &amount, &rec.RedeemCode, &rec.CreatedAt,
	)
	if err != nil {
		return rec, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToScanHistory, err)
	}

	rec.PaymentAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return rec, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToParseAmount, err)
	}
	return rec, nil
}

// LatestHistoryID returns the newest history id of the user
func (h *UserHistory) LatestHistoryID(ctx context.Context) (int64, error) {
	return h.repo.LatestID(ctx, h.userID)
}
