package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// SkillService manages the skill catalogue.
type SkillService interface {
	ListSkills(ctx context.Context) ([]*domain.Skill, error)

	// CreateSkill returns store.ErrSkillExists for a duplicate name.
	CreateSkill(ctx context.Context, name string) (*domain.Skill, error)

	// DeleteSkill returns store.ErrSkillNotFound or store.ErrReferenced.
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

// CreditService manages credit packages and their purchase.
type CreditService interface {
	ListPackages(ctx context.Context) ([]*domain.CreditPackage, error)

	// CreatePackage returns store.ErrCreditPackageExists for a duplicate name.
	CreatePackage(ctx context.Context, name string, creditAmount int, price float64) (*domain.CreditPackage, error)

	// Purchase records userID buying the package. The purchase copies the
	// package's credit amount and price.
	Purchase(ctx context.Context, userID, packageID uuid.UUID) (*domain.CreditPurchase, error)

	// DeletePackage returns store.ErrCreditPackageNotFound or store.ErrReferenced.
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

type skillServiceImpl struct {
	skills store.SkillStore
	logger *slog.Logger
}

// NewSkillService creates a SkillService backed by skills.
func NewSkillService(skills store.SkillStore, logger *slog.Logger) SkillService {
	if skills == nil {
		panic("skill store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &skillServiceImpl{
		skills: skills,
		logger: logger.With(slog.String("component", "skill_service")),
	}
}

func (s *skillServiceImpl) ListSkills(ctx context.Context) ([]*domain.Skill, error) {
	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

func (s *skillServiceImpl) CreateSkill(ctx context.Context, name string) (*domain.Skill, error) {
	skill, err := domain.NewSkill(name)
	if err != nil {
		return nil, invalid("name", err)
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		if errors.Is(err, store.ErrSkillExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("skill created",
		slog.String("skill_id", skill.ID.String()))
	return skill, nil
}

func (s *skillServiceImpl) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("skill deleted",
		slog.String("skill_id", id.String()))
	return nil
}

type creditServiceImpl struct {
	packages  store.CreditPackageStore
	purchases store.CreditPurchaseStore
	now       func() time.Time
	logger    *slog.Logger
}

// NewCreditService creates a CreditService.
func NewCreditService(
	packages store.CreditPackageStore,
	purchases store.CreditPurchaseStore,
	logger *slog.Logger,
) CreditService {
	if packages == nil || purchases == nil {
		panic("credit stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &creditServiceImpl{
		packages:  packages,
		purchases: purchases,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "credit_service")),
	}
}

func (s *creditServiceImpl) ListPackages(ctx context.Context) ([]*domain.CreditPackage, error) {
	pkgs, err := s.packages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit packages: %w", err)
	}
	return pkgs, nil
}

func (s *creditServiceImpl) CreatePackage(
	ctx context.Context,
	name string,
	creditAmount int,
	price float64,
) (*domain.CreditPackage, error) {
	pkg, err := domain.NewCreditPackage(name, creditAmount, price)
	if err != nil {
		return nil, invalid("credit_package", err)
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		if errors.Is(err, store.ErrCreditPackageExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create credit package: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("credit package created",
		slog.String("credit_package_id", pkg.ID.String()))
	return pkg, nil
}

func (s *creditServiceImpl) Purchase(ctx context.Context, userID, packageID uuid.UUID) (*domain.CreditPurchase, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit package: %w", err)
	}

	purchase, err := domain.NewCreditPurchase(userID, pkg, s.now())
	if err != nil {
		return nil, invalid("credit_purchase", err)
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		log.Error("failed to record purchase",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	log.Info("credit package purchased",
		slog.String("user_id", userID.String()),
		slog.String("credit_package_id", pkg.ID.String()),
		slog.Int("credits", purchase.PurchasedCredits))
	return purchase, nil
}

func (s *creditServiceImpl) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete credit package: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("credit package deleted",
		slog.String("credit_package_id", id.String()))
	return nil
}
