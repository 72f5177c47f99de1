package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// PostgresCreditPurchaseStore implements store.CreditPurchaseStore.
// Purchases are only ever inserted; the balance is always derived by summing them.
type PostgresCreditPurchaseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCreditPurchaseStore creates a new PostgreSQL implementation of the CreditPurchaseStore interface.
func NewPostgresCreditPurchaseStore(db store.DBTX, logger *slog.Logger) *PostgresCreditPurchaseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCreditPurchaseStore{
		db:     db,
		logger: logger.With(slog.String("component", "credit_purchase_store")),
	}
}

var _ store.CreditPurchaseStore = (*PostgresCreditPurchaseStore)(nil)

// WithTx implements store.CreditPurchaseStore.WithTx
func (s *PostgresCreditPurchaseStore) WithTx(tx *sql.Tx) store.CreditPurchaseStore {
	return &PostgresCreditPurchaseStore{db: tx, logger: s.logger}
}

// Create implements store.CreditPurchaseStore.Create
func (s *PostgresCreditPurchaseStore) Create(ctx context.Context, p *domain.CreditPurchase) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_purchases
			(id, user_id, credit_package_id, purchased_credits, price_paid, created_at, purchase_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.UserID, p.CreditPackageID, p.PurchasedCredits, p.PricePaid, p.CreatedAt, p.PurchaseAt)
	if err != nil {
		log.Error("failed to record credit purchase",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return MapError(err)
	}

	log.Info("credit purchase recorded",
		slog.String("user_id", p.UserID.String()),
		slog.Int("credits", p.PurchasedCredits))
	return nil
}

// ListByUser implements store.CreditPurchaseStore.ListByUser
func (s *PostgresCreditPurchaseStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PurchaseRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT cp.purchased_credits, cp.price_paid, pkg.name, cp.purchase_at
		FROM credit_purchases cp
		JOIN credit_packages pkg ON pkg.id = cp.credit_package_id
		WHERE cp.user_id = $1
		ORDER BY cp.purchase_at DESC
	`, userID)
	if err != nil {
		log.Error("failed to list credit purchases",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]domain.PurchaseRecord, 0)
	for rows.Next() {
		var r domain.PurchaseRecord
		if err := rows.Scan(&r.PurchasedCredits, &r.PricePaid, &r.Name, &r.PurchaseAt); err != nil {
			return nil, MapError(err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return records, nil
}

// SumCreditsByUser implements store.CreditPurchaseStore.SumCreditsByUser
func (s *PostgresCreditPurchaseStore) SumCreditsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(purchased_credits), 0) FROM credit_purchases WHERE user_id = $1`,
		userID).Scan(&total)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to sum purchased credits",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	return total, nil
}
