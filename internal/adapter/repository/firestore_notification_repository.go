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

// Per-user retention caps. Oldest entries beyond the cap are pruned on
// every insert.
const (
	maxNotificationsPerUser = 50
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	if err := pruneOldest(ctx, r.client, "notifications", notification.UserID, "createdAt", maxNotificationsPerUser); err != nil {
		// Pruning failures only delay retention, the insert already
		// succeeded.
		log.Printf("Failed to prune notifications for user %s: %v", notification.UserID, err)
	}
	return nil
}

func (r *firestoreNotificationRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection("notifications").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching notifications for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to fetch notifications", err)
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

	notifications := make([]*entity.Notification, 0, end-start)
	for _, doc := range allDocs[start:end] {
		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, 0, errors.Internal("Failed to parse notification data", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, total, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	docRef := r.client.Collection("notifications").Doc(notificationID)
	doc, err := docRef.Get(ctx)
	if err != nil {
		return errors.NotFound("Notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return errors.Internal("Failed to parse notification data", err)
	}
	if notification.UserID != userID {
		return errors.Forbidden("Notification belongs to another user", nil)
	}
	if notification.IsRead {
		return nil
	}

	_, err = docRef.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}})
	if err != nil {
		return errors.Internal("Failed to mark notification as read", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("isRead", "==", false)
	iter := query.Documents(ctx)

	batch := r.client.Batch()
	updated := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate notifications", err)
		}

		batch.Update(doc.Ref, []firestore.Update{{Path: "isRead", Value: true}})
		updated++
	}

	if updated == 0 {
		return nil
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark notifications as read", err)
	}
	return nil
}

// pruneOldest deletes a user's documents beyond keep, oldest first.
// Shared by the notification and price-drop history repositories.
func pruneOldest(ctx context.Context, client *firestore.Client, collection, userID, orderField string, keep int) error {
	query := client.Collection(collection).
		Where("userId", "==", userID).
		OrderBy(orderField, firestore.Desc).
		Offset(keep)
	iter := query.Documents(ctx)

	batch := client.Batch()
	pruned := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}

		batch.Delete(doc.Ref)
		pruned++
	}

	if pruned == 0 {
		return nil
	}

	_, err := batch.Commit(ctx)
	return err
}
