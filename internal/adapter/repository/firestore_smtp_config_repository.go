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

// The SMTP configuration is a singleton document under "settings".
const smtpConfigDocID = "smtp"

type firestoreSMTPConfigRepository struct {
	client *firestore.Client
}

func NewFirestoreSMTPConfigRepository(client *firestore.Client) repository.SMTPConfigRepository {
	return &firestoreSMTPConfigRepository{
		client: client,
	}
}

func (r *firestoreSMTPConfigRepository) Get(ctx context.Context) (*entity.SMTPConfig, error) {
	doc, err := r.client.Collection("settings").Doc(smtpConfigDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("SMTP configuration", err)
		}
		return nil, errors.Internal("Failed to get SMTP configuration", err)
	}

	var config entity.SMTPConfig
	if err := doc.DataTo(&config); err != nil {
		return nil, errors.Internal("Failed to parse SMTP configuration", err)
	}

	return &config, nil
}

func (r *firestoreSMTPConfigRepository) Save(ctx context.Context, config *entity.SMTPConfig) error {
	config.ID = smtpConfigDocID
	config.UpdatedAt = time.Now()

	_, err := r.client.Collection("settings").Doc(smtpConfigDocID).Set(ctx, config)
	if err != nil {
		return errors.Internal("Failed to save SMTP configuration", err)
	}
	return nil
}
