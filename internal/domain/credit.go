package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxPackageNameLength is the longest credit package name the store accepts.
const MaxPackageNameLength = 50

var (
	ErrEmptyPackageID        = errors.New("credit package ID cannot be empty")
	ErrEmptyPackageName      = errors.New("credit package name cannot be empty")
	ErrPackageNameTooLong    = errors.New("credit package name must be at most 50 characters long")
	ErrInvalidCreditAmount   = errors.New("credit amount must be positive")
	ErrInvalidPrice          = errors.New("price cannot be negative")
	ErrEmptyPurchaseUserID   = errors.New("purchase user ID cannot be empty")
	ErrInvalidPurchasedCount = errors.New("purchased credits must be positive")
)

// CreditPackage is a purchasable bundle of course credits. It is never
// updated once created.
type CreditPackage struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CreditAmount int       `json:"credit_amount"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCreditPackage creates a new CreditPackage.
func NewCreditPackage(name string, creditAmount int, price float64) (*CreditPackage, error) {
	p := &CreditPackage{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		CreditAmount: creditAmount,
		Price:        price,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the CreditPackage has valid data.
func (p *CreditPackage) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPackageID
	}
	if p.Name == "" {
		return ErrEmptyPackageName
	}
	if utf8.RuneCountInString(p.Name) > MaxPackageNameLength {
		return ErrPackageNameTooLong
	}
	if p.CreditAmount <= 0 {
		return ErrInvalidCreditAmount
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// CreditPurchase records a user buying a package. Purchases are append-only;
// the credits and price are copied from the package at purchase time.
type CreditPurchase struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	CreditPackageID  uuid.UUID `json:"credit_package_id"`
	PurchasedCredits int       `json:"purchased_credits"`
	PricePaid        float64   `json:"price_paid"`
	CreatedAt        time.Time `json:"created_at"`
	PurchaseAt       time.Time `json:"purchase_at"`
}

// NewCreditPurchase creates a purchase of pkg by userID at the given time.
func NewCreditPurchase(userID uuid.UUID, pkg *CreditPackage, at time.Time) (*CreditPurchase, error) {
	if pkg == nil {
		return nil, ErrEmptyPackageID
	}
	p := &CreditPurchase{
		ID:               uuid.New(),
		UserID:           userID,
		CreditPackageID:  pkg.ID,
		PurchasedCredits: pkg.CreditAmount,
		PricePaid:        pkg.Price,
		CreatedAt:        at.UTC(),
		PurchaseAt:       at.UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the CreditPurchase has valid data.
func (p *CreditPurchase) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPurchaseUserID
	}
	if p.CreditPackageID == uuid.Nil {
		return ErrEmptyPackageID
	}
	if p.PurchasedCredits <= 0 {
		return ErrInvalidPurchasedCount
	}
	if p.PricePaid < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// PurchaseRecord is a purchase joined with its package name, as shown in a
// user's purchase history.
type PurchaseRecord struct {
	PurchasedCredits int       `json:"purchased_credits"`
	PricePaid        float64   `json:"price_paid"`
	Name             string    `json:"name"`
	PurchaseAt       time.Time `json:"purchase_at"`
}
