package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type ITransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.Transaction) error
	GetById(ctx context.Context, id string) (*db_models.Transaction, error)
	GetByOrderId(ctx context.Context, orderID string) (*db_models.Transaction, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.Transaction, error)
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) ITransactionRepository {
	return &TransactionRepository{db: db}
}

func (t *TransactionRepository) Insert(ctx context.Context, txn *db_models.Transaction) error {
	return t.db.WithContext(ctx).Create(txn).Error
}

func (t *TransactionRepository) GetById(ctx context.Context, id string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := t.db.WithContext(ctx).First(&txn, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

func (t *TransactionRepository) GetByOrderId(ctx context.Context, orderID string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := t.db.WithContext(ctx).First(&txn, "razorpay_order_id = ?", orderID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

func (t *TransactionRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.Transaction, error) {
	var txns []db_models.Transaction
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txns).Error

	if err != nil {
		return nil, err
	}

	return txns, nil
}
