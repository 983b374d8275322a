package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

type firestoreAdRepository struct {
	client *firestore.Client
}

func NewFirestoreAdRepository(client *firestore.Client) repository.AdRepository {
	return &firestoreAdRepository{
		client: client,
	}
}

func (r *firestoreAdRepository) Create(ctx context.Context, ad *entity.Ad) error {
	if ad.ID == "" {
		ad.ID = uuid.New().String()
	}
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = time.Now()

	_, err := r.client.Collection("ads").Doc(ad.ID).Set(ctx, ad)
	if err != nil {
		return errors.Internal("Failed to create ad", err)
	}
	return nil
}

func (r *firestoreAdRepository) GetByID(ctx context.Context, id string) (*entity.Ad, error) {
	doc, err := r.client.Collection("ads").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Ad", err)
		}
		return nil, errors.Internal("Failed to get ad", err)
	}

	var ad entity.Ad
	if err := doc.DataTo(&ad); err != nil {
		return nil, errors.Internal("Failed to parse ad data", err)
	}

	return &ad, nil
}

func (r *firestoreAdRepository) Update(ctx context.Context, ad *entity.Ad) error {
	ad.UpdatedAt = time.Now()

	_, err := r.client.Collection("ads").Doc(ad.ID).Set(ctx, ad)
	if err != nil {
		return errors.Internal("Failed to update ad", err)
	}
	return nil
}

func (r *firestoreAdRepository) UpdatePrice(ctx context.Context, id string, price float64) (*entity.Ad, error) {
	var updated entity.Ad

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("ads").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var ad entity.Ad
		if err := doc.DataTo(&ad); err != nil {
			return err
		}

		ad.Price = price
		ad.UpdatedAt = time.Now()
		updated = ad

		return tx.Set(docRef, ad)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Ad", err)
		}
		return nil, errors.Internal("Failed to update ad price", err)
	}

	return &updated, nil
}
