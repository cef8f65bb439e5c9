package repositories

import (
	"CareLink/cache"
	"CareLink/models"
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	UnreadCountCacheExpiry = 5 * time.Minute
	unreadCountKeyTemplate = "unread_count_cache:%d"
)

type notificationRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return wrapDBErr(err, "", "")
	}
	r.invalidateCount(ctx, notification.UserID)
	return nil
}

func (r *notificationRepository) GetForUser(ctx context.Context, id, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).
		First(&notification, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, wrapDBErr(err, "notification not found", "")
	}
	return &notification, nil
}

func (r *notificationRepository) List(ctx context.Context, userID uint, unreadOnly bool, page, perPage int) ([]models.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErr(err, "", "")
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, wrapDBErr(err, "", "")
	}
	return notifications, total, nil
}

func (r *notificationRepository) ListUnreadByType(ctx context.Context, userID uint, notificationType string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_type = ? AND is_read = ?", userID, notificationType, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, wrapDBErr(err, "", "")
	}
	return notifications, nil
}

// MarkReadIfUnread flips is_read in a single UPDATE guarded on the previous
// value. Exactly one of two concurrent responders sees true.
func (r *notificationRepository) MarkReadIfUnread(ctx context.Context, id, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return false, wrapDBErr(result.Error, "", "")
	}
	r.invalidateCount(ctx, userID)
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, wrapDBErr(result.Error, "", "")
	}
	r.invalidateCount(ctx, userID)
	return result.RowsAffected, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	cacheKey := fmt.Sprintf(unreadCountKeyTemplate, userID)
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErr(err, "", "")
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, strconv.FormatInt(count, 10), UnreadCountCacheExpiry); err != nil {
			log.Printf("Failed to set unread count in cache: %v", err)
		}
	}
	return count, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Notification{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return wrapDBErr(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return wrapDBErr(gorm.ErrRecordNotFound, "notification not found", "")
	}
	r.invalidateCount(ctx, userID)
	return nil
}

func (r *notificationRepository) invalidateCount(ctx context.Context, userID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, fmt.Sprintf(unreadCountKeyTemplate, userID)); err != nil {
		log.Printf("Failed to invalidate unread count cache: %v", err)
	}
}
