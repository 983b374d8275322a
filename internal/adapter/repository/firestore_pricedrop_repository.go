package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

const (
	maxPriceDropHistoryPerUser = 100
	maxOpportunitiesPerUser    = 20
)

type firestorePriceDropHistoryRepository struct {
	client *firestore.Client
}

func NewFirestorePriceDropHistoryRepository(client *firestore.Client) repository.PriceDropHistoryRepository {
	return &firestorePriceDropHistoryRepository{
		client: client,
	}
}

func (r *firestorePriceDropHistoryRepository) Create(ctx context.Context, record *entity.PriceDropNotification) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	_, err := r.client.Collection("priceDropHistory").Doc(record.ID).Set(ctx, record)
	if err != nil {
		return errors.Internal("Failed to create price drop record", err)
	}

	if err := pruneOldest(ctx, r.client, "priceDropHistory", record.UserID, "notifiedAt", maxPriceDropHistoryPerUser); err != nil {
		log.Printf("Failed to prune price drop history for user %s: %v", record.UserID, err)
	}
	return nil
}

func (r *firestorePriceDropHistoryRepository) GetLatest(ctx context.Context, userID, adID string) (*entity.PriceDropNotification, error) {
	query := r.client.Collection("priceDropHistory").
		Where("userId", "==", userID).
		Where("adId", "==", adID).
		OrderBy("notifiedAt", firestore.Desc).
		Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Price drop record", nil)
		}
		return nil, errors.Internal("Failed to query price drop history", err)
	}

	var record entity.PriceDropNotification
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse price drop record", err)
	}

	return &record, nil
}

func (r *firestorePriceDropHistoryRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.PriceDropNotification, error) {
	query := r.client.Collection("priceDropHistory").
		Where("userId", "==", userID).
		OrderBy("notifiedAt", firestore.Desc)
	iter := query.Documents(ctx)

	var records []*entity.PriceDropNotification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating price drop history for user %s: %v", userID, err)
			return nil, errors.Internal("Failed to iterate price drop history", err)
		}

		var record entity.PriceDropNotification
		if err := doc.DataTo(&record); err != nil {
			return nil, errors.Internal("Failed to parse price drop record", err)
		}
		records = append(records, &record)
	}

	return records, nil
}

// Opportunities are keyed by (user, ad) so marking again overwrites the
// previous window instead of stacking.
type firestoreOpportunityRepository struct {
	client *firestore.Client
}

func NewFirestoreOpportunityRepository(client *firestore.Client) repository.OpportunityRepository {
	return &firestoreOpportunityRepository{
		client: client,
	}
}

func opportunityDocID(userID, adID string) string {
	return fmt.Sprintf("%s_%s", userID, adID)
}

func (r *firestoreOpportunityRepository) Mark(ctx context.Context, userID, adID string, markedAt time.Time) error {
	opportunity := entity.Opportunity{
		UserID:   userID,
		AdID:     adID,
		MarkedAt: markedAt,
	}

	_, err := r.client.Collection("opportunities").Doc(opportunityDocID(userID, adID)).Set(ctx, opportunity)
	if err != nil {
		return errors.Internal("Failed to mark opportunity", err)
	}

	if err := pruneOldest(ctx, r.client, "opportunities", userID, "markedAt", maxOpportunitiesPerUser); err != nil {
		log.Printf("Failed to prune opportunities for user %s: %v", userID, err)
	}
	return nil
}

func (r *firestoreOpportunityRepository) Get(ctx context.Context, userID, adID string) (*entity.Opportunity, error) {
	doc, err := r.client.Collection("opportunities").Doc(opportunityDocID(userID, adID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Opportunity", err)
		}
		return nil, errors.Internal("Failed to get opportunity", err)
	}

	var opportunity entity.Opportunity
	if err := doc.DataTo(&opportunity); err != nil {
		return nil, errors.Internal("Failed to parse opportunity data", err)
	}

	return &opportunity, nil
}

func (r *firestoreOpportunityRepository) Remove(ctx context.Context, userID, adID string) error {
	_, err := r.client.Collection("opportunities").Doc(opportunityDocID(userID, adID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove opportunity", err)
	}
	return nil
}
