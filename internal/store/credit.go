package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// CreditPurchaseStore defines persistence for the append-only purchase ledger.
type CreditPurchaseStore interface {
	// Create appends a purchase.
	Create(ctx context.Context, purchase *domain.CreditPurchase) error

	// ListByUser returns a user's purchases joined with package names,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PurchaseRecord, error)

	// SumCreditsByUser returns the total credits a user has ever purchased.
	SumCreditsByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// WithTx returns a new CreditPurchaseStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CreditPurchaseStore
}
