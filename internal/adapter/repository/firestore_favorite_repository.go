package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func (r *firestoreFavoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	favorite.FavoritedAt = time.Now()

	_, err := r.client.Collection("favorites").Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return errors.Internal("Failed to create favorite", err)
	}
	return nil
}

func (r *firestoreFavoriteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("favorites").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete favorite", err)
	}
	return nil
}

func (r *firestoreFavoriteRepository) GetByUserAndAd(ctx context.Context, userID, adID string) (*entity.Favorite, error) {
	query := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Where("adId", "==", adID).
		Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Favorite", nil)
		}
		return nil, errors.Internal("Failed to query favorite", err)
	}

	var favorite entity.Favorite
	if err := doc.DataTo(&favorite); err != nil {
		return nil, errors.Internal("Failed to parse favorite data", err)
	}

	return &favorite, nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	query := r.client.Collection("favorites").
		Where("userId", "==", userID).
		OrderBy("favoritedAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreFavoriteRepository) ListAll(ctx context.Context) ([]*entity.Favorite, error) {
	return r.collect(ctx, r.client.Collection("favorites").Query)
}

func (r *firestoreFavoriteRepository) ListByAdID(ctx context.Context, adID string) ([]*entity.Favorite, error) {
	query := r.client.Collection("favorites").Where("adId", "==", adID)
	return r.collect(ctx, query)
}

func (r *firestoreFavoriteRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Favorite, error) {
	iter := query.Documents(ctx)

	var favorites []*entity.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating favorites: %v", err)
			return nil, errors.Internal("Failed to iterate favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, errors.Internal("Failed to parse favorite data", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}
