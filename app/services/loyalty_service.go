package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/calc"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentTransactionLimit = 20

type LoyaltyOverview struct {
	Account          *models.LoyaltyAccount      `json:"account"`
	Tier             string                      `json:"tier"`
	NextTier         string                      `json:"next_tier,omitempty"`
	TierProgress     int                         `json:"tier_progress"`
	PointsToNextTier int64                       `json:"points_to_next_tier"`
	Tiers            []calc.Tier                 `json:"tiers"`
	Transactions     []models.LoyaltyTransaction `json:"transactions"`
}

type LoyaltyService struct {
	db          *gorm.DB
	loyaltyRepo repositories.LoyaltyRepository
}

func NewLoyaltyService(db *gorm.DB, loyaltyRepo repositories.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{db: db, loyaltyRepo: loyaltyRepo}
}

func (s *LoyaltyService) accountFor(ctx context.Context, tx *gorm.DB, userID string, forUpdate bool) (*models.LoyaltyAccount, error) {
	account, err := s.loyaltyRepo.FindAccount(ctx, tx, userID, forUpdate)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	if err := s.loyaltyRepo.CreateAccount(ctx, tx, &models.LoyaltyAccount{UserID: userID, Tier: calc.Tiers[0].Name}); err != nil {
		return nil, fmt.Errorf("failed to create loyalty account: %w", err)
	}

	// A concurrent first request may have won the insert; read back whichever row exists.
	account, err = s.loyaltyRepo.FindAccount(ctx, tx, userID, forUpdate)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("loyalty account for user %s missing after create", userID)
	}
	return account, nil
}

func (s *LoyaltyService) Overview(ctx context.Context, userID string) (*LoyaltyOverview, error) {
	account, err := s.accountFor(ctx, nil, userID, false)
	if err != nil {
		return nil, err
	}

	txns, err := s.loyaltyRepo.RecentTransactions(ctx, account.ID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load loyalty transactions: %w", err)
	}

	progress, missing := calc.TierProgress(account.LifetimePoints)
	overview := &LoyaltyOverview{
		Account:          account,
		Tier:             calc.TierFor(account.LifetimePoints).Name,
		TierProgress:     progress,
		PointsToNextTier: missing,
		Tiers:            calc.Tiers,
		Transactions:     txns,
	}
	if next, ok := calc.NextTier(account.LifetimePoints); ok {
		overview.NextTier = next.Name
	}
	return overview, nil
}

func (s *LoyaltyService) Redeem(ctx context.Context, userID string, points int64, description string) (*models.LoyaltyAccount, error) {
	if points <= 0 {
		return nil, ErrInsufficientPoints
	}

	var account *models.LoyaltyAccount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = s.loyaltyRepo.FindAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		if account == nil || account.PointsBalance < points {
			return ErrInsufficientPoints
		}

		account.PointsBalance -= points
		if err := s.loyaltyRepo.SaveAccount(ctx, tx, account); err != nil {
			return fmt.Errorf("failed to update loyalty account: %w", err)
		}
		return s.loyaltyRepo.AddTransaction(ctx, tx, &models.LoyaltyTransaction{
			AccountID:   account.ID,
			Type:        models.LoyaltyTransactionRedeemed,
			Points:      points,
			Description: description,
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreditOrder awards points for a delivered order inside the caller's
// transaction and returns the points credited.
func (s *LoyaltyService) CreditOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (int64, error) {
	points := calc.PointsForSubtotal(order.Subtotal)
	if points == 0 {
		return 0, nil
	}

	account, err := s.accountFor(ctx, tx, order.UserID, true)
	if err != nil {
		return 0, err
	}

	account.PointsBalance += points
	account.LifetimePoints += points
	account.Tier = calc.TierFor(account.LifetimePoints).Name
	if err := s.loyaltyRepo.SaveAccount(ctx, tx, account); err != nil {
		return 0, fmt.Errorf("failed to update loyalty account: %w", err)
	}

	orderID := order.ID
	if err := s.loyaltyRepo.AddTransaction(ctx, tx, &models.LoyaltyTransaction{
		AccountID:   account.ID,
		OrderID:     &orderID,
		Type:        models.LoyaltyTransactionEarned,
		Points:      points,
		Description: fmt.Sprintf("Order %s delivered", order.OrderNumber),
	}); err != nil {
		return 0, err
	}

	log.Printf("LoyaltyService.CreditOrder: %d points to user %s for order %s", points, order.UserID, order.OrderNumber)
	return points, nil
}
