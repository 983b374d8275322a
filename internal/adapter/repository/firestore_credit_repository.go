package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

type firestoreCreditRepository struct {
	client *firestore.Client
}

func NewFirestoreCreditRepository(client *firestore.Client) repository.CreditRepository {
	return &firestoreCreditRepository{
		client: client,
	}
}

func (r *firestoreCreditRepository) GetBalance(ctx context.Context, userID string) (*entity.CreditBalance, error) {
	doc, err := r.client.Collection("creditBalances").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// A user with no balance record has zero credits.
			return &entity.CreditBalance{UserID: userID, Balance: 0}, nil
		}
		return nil, errors.Internal("Failed to get credit balance", err)
	}

	var balance entity.CreditBalance
	if err := doc.DataTo(&balance); err != nil {
		return nil, errors.Internal("Failed to parse credit balance data", err)
	}

	return &balance, nil
}

func (r *firestoreCreditRepository) AddBalance(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error) {
	var updated entity.CreditBalance

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("creditBalances").Doc(userID)

		balance := entity.CreditBalance{UserID: userID}
		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			if err := doc.DataTo(&balance); err != nil {
				return err
			}
		}

		balance.Balance += amount
		balance.UpdatedAt = time.Now()
		updated = balance

		return tx.Set(docRef, balance)
	})
	if err != nil {
		return nil, errors.Internal("Failed to add credit balance", err)
	}

	return &updated, nil
}

func (r *firestoreCreditRepository) DeductBalance(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error) {
	var updated entity.CreditBalance

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("creditBalances").Doc(userID)

		balance := entity.CreditBalance{UserID: userID}
		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			if err := doc.DataTo(&balance); err != nil {
				return err
			}
		}

		balance.Balance -= amount
		if balance.Balance < 0 {
			balance.Balance = 0
		}
		balance.UpdatedAt = time.Now()
		updated = balance

		return tx.Set(docRef, balance)
	})
	if err != nil {
		return nil, errors.Internal("Failed to deduct credit balance", err)
	}

	return &updated, nil
}

func (r *firestoreCreditRepository) DeductIfSufficient(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error) {
	var updated entity.CreditBalance
	var insufficient *errors.AppError

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("creditBalances").Doc(userID)

		balance := entity.CreditBalance{UserID: userID}
		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			if err := doc.DataTo(&balance); err != nil {
				return err
			}
		}

		if balance.Balance < amount {
			insufficient = errors.InsufficientCredits(amount, balance.Balance)
			return insufficient
		}

		balance.Balance -= amount
		balance.UpdatedAt = time.Now()
		updated = balance

		return tx.Set(docRef, balance)
	})
	if insufficient != nil {
		return nil, insufficient
	}
	if err != nil {
		return nil, errors.Internal("Failed to deduct credit balance", err)
	}

	return &updated, nil
}

type firestoreCreditTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreCreditTransactionRepository(client *firestore.Client) repository.CreditTransactionRepository {
	return &firestoreCreditTransactionRepository{
		client: client,
	}
}

func (r *firestoreCreditTransactionRepository) Create(ctx context.Context, txn *entity.CreditTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()

	_, err := r.client.Collection("creditTransactions").Doc(txn.ID).Set(ctx, txn)
	if err != nil {
		return errors.Internal("Failed to create credit transaction", err)
	}
	return nil
}

func (r *firestoreCreditTransactionRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CreditTransaction, int64, error) {
	query := r.client.Collection("creditTransactions").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching credit transactions for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to fetch credit transactions", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	txns := make([]entity.CreditTransaction, 0, end-start)
	for _, doc := range allDocs[start:end] {
		var txn entity.CreditTransaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, 0, errors.Internal("Failed to parse credit transaction data", err)
		}
		txns = append(txns, txn)
	}

	return txns, total, nil
}
