package usecase

import (
	"context"
	"log"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

type CreditUseCase struct {
	creditRepo repository.CreditRepository
	txnRepo    repository.CreditTransactionRepository
}

func NewCreditUseCase(
	creditRepo repository.CreditRepository,
	txnRepo repository.CreditTransactionRepository,
) *CreditUseCase {
	return &CreditUseCase{
		creditRepo: creditRepo,
		txnRepo:    txnRepo,
	}
}

func (uc *CreditUseCase) GetBalance(ctx context.Context, userID string) (*entity.CreditBalance, error) {
	return uc.creditRepo.GetBalance(ctx, userID)
}

// AddCredits tops up a user's balance and records the ledger entry.
func (uc *CreditUseCase) AddCredits(ctx context.Context, userID string, amount int, description string) (*entity.CreditBalance, error) {
	if amount <= 0 {
		return nil, errors.InvalidInput("Credit amount must be positive", nil)
	}

	balance, err := uc.creditRepo.AddBalance(ctx, userID, amount)
	if err != nil {
		log.Printf("AddCredits Error: Failed to add %d credits to user %s: %v", amount, userID, err)
		return nil, err
	}

	txn := &entity.CreditTransaction{
		UserID:          userID,
		Type:            "add",
		Amount:          amount,
		PreviousBalance: balance.Balance - amount,
		NewBalance:      balance.Balance,
		Description:     description,
	}
	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		log.Printf("AddCredits Warning: Failed to record credit transaction for user %s: %v", userID, err)
	}

	return balance, nil
}

func (uc *CreditUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]entity.CreditTransaction, int64, error) {
	return uc.txnRepo.ListByUserID(ctx, userID, limit, offset)
}
