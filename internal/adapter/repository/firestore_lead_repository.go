package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

// Leads are keyed by their chat ID, so the monetized state of a
// conversation is one document lookup away from the chat itself.
type firestoreLeadRepository struct {
	client *firestore.Client
}

func NewFirestoreLeadRepository(client *firestore.Client) repository.LeadRepository {
	return &firestoreLeadRepository{
		client: client,
	}
}

func (r *firestoreLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	lead.CreatedAt = time.Now()

	_, err := r.client.Collection("leads").Doc(lead.ChatID).Set(ctx, lead)
	if err != nil {
		return errors.Internal("Failed to create lead", err)
	}
	return nil
}

func (r *firestoreLeadRepository) GetByChatID(ctx context.Context, chatID string) (*entity.Lead, error) {
	doc, err := r.client.Collection("leads").Doc(chatID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Lead", err)
		}
		return nil, errors.Internal("Failed to get lead", err)
	}

	var lead entity.Lead
	if err := doc.DataTo(&lead); err != nil {
		return nil, errors.Internal("Failed to parse lead data", err)
	}

	return &lead, nil
}

func (r *firestoreLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	_, err := r.client.Collection("leads").Doc(lead.ChatID).Set(ctx, lead)
	if err != nil {
		return errors.Internal("Failed to update lead", err)
	}
	return nil
}
