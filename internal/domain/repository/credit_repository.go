package repository

import (
	"context"

	"agromarket/internal/domain/entity"
)

type CreditRepository interface {
	GetBalance(ctx context.Context, userID string) (*entity.CreditBalance, error)

	// AddBalance credits the user's balance by amount (creating the
	// balance record if needed) and returns the updated balance.
	AddBalance(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error)

	// DeductBalance debits up to amount, flooring at zero.
	DeductBalance(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error)

	// DeductIfSufficient atomically checks the balance and debits amount
	// in a single transaction. Returns INSUFFICIENT_CREDITS without
	// mutating when the balance is short.
	DeductIfSufficient(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error)
}

type CreditTransactionRepository interface {
	Create(ctx context.Context, txn *entity.CreditTransaction) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CreditTransaction, int64, error)
}
