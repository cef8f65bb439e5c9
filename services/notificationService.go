package services

import (
	"CareLink/models"
	"CareLink/repositories"
	"context"
)

type NotificationService struct {
	store repositories.Store
}

func NewNotificationService(store repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns the actor's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, actor Actor, unreadOnly bool, page, perPage int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.store.Notifications().List(ctx, actor.UserID, unreadOnly, page, perPage)
}

// MarkRead marks one of the actor's notifications as read. Marking an
// already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	notification, err := s.store.Notifications().GetForUser(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !notification.IsRead {
		if _, err := s.store.Notifications().MarkReadIfUnread(ctx, id, actor.UserID); err != nil {
			return nil, err
		}
		notification.IsRead = true
	}
	return notification, nil
}

// MarkAllRead marks every unread notification of the actor as read and
// returns how many were affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	return s.store.Notifications().MarkAllRead(ctx, actor.UserID)
}

// UnreadCount returns the actor's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	return s.store.Notifications().UnreadCount(ctx, actor.UserID)
}

// Delete removes one of the actor's notifications.
func (s *NotificationService) Delete(ctx context.Context, actor Actor, id uint) error {
	return s.store.Notifications().Delete(ctx, id, actor.UserID)
}
