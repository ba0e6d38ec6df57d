package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoyaltyRepository interface {
	FindAccount(ctx context.Context, tx *gorm.DB, userID string, forUpdate bool) (*models.LoyaltyAccount, error)
	CreateAccount(ctx context.Context, tx *gorm.DB, account *models.LoyaltyAccount) error
	SaveAccount(ctx context.Context, tx *gorm.DB, account *models.LoyaltyAccount) error
	AddTransaction(ctx context.Context, tx *gorm.DB, txn *models.LoyaltyTransaction) error
	RecentTransactions(ctx context.Context, accountID string, limit int) ([]models.LoyaltyTransaction, error)
}

type loyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) FindAccount(ctx context.Context, tx *gorm.DB, userID string, forUpdate bool) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount

	q := conn(r.db, tx).WithContext(ctx)
	if forUpdate && q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	err := q.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// CreateAccount is a no-op when the user already has an account.
func (r *loyaltyRepository) CreateAccount(ctx context.Context, tx *gorm.DB, account *models.LoyaltyAccount) error {
	return conn(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(account).Error
}

func (r *loyaltyRepository) SaveAccount(ctx context.Context, tx *gorm.DB, account *models.LoyaltyAccount) error {
	return conn(r.db, tx).WithContext(ctx).Save(account).Error
}

func (r *loyaltyRepository) AddTransaction(ctx context.Context, tx *gorm.DB, txn *models.LoyaltyTransaction) error {
	return conn(r.db, tx).WithContext(ctx).Create(txn).Error
}

func (r *loyaltyRepository) RecentTransactions(ctx context.Context, accountID string, limit int) ([]models.LoyaltyTransaction, error) {
	var txns []models.LoyaltyTransaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}
