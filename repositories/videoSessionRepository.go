package repositories

import (
	"CareLink/apperrors"
	"CareLink/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type videoSessionRepository struct {
	db *gorm.DB
}

func (r *videoSessionRepository) Create(ctx context.Context, session *models.VideoSession) error {
	return wrapDBErr(r.db.WithContext(ctx).Create(session).Error,
		"", "an active session already exists for this consultation")
}

func (r *videoSessionRepository) GetByID(ctx context.Context, id uint) (*models.VideoSession, error) {
	var session models.VideoSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, wrapDBErr(err, "session not found", "")
	}
	return &session, nil
}

func (r *videoSessionRepository) GetByToken(ctx context.Context, token string) (*models.VideoSession, error) {
	var session models.VideoSession
	err := r.db.WithContext(ctx).First(&session, "session_token = ?", token).Error
	if err != nil {
		return nil, wrapDBErr(err, "session not found", "")
	}
	return &session, nil
}

// ActiveByConsultation returns nil without error when no active session
// exists; callers use it for the idempotent start lookup.
func (r *videoSessionRepository) ActiveByConsultation(ctx context.Context, consultationID uint) (*models.VideoSession, error) {
	var session models.VideoSession
	err := r.db.WithContext(ctx).
		First(&session, "consultation_id = ? AND status = ?", consultationID, models.SessionActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(err, "storage request failed")
	}
	return &session, nil
}

func (r *videoSessionRepository) Update(ctx context.Context, session *models.VideoSession) error {
	return wrapDBErr(r.db.WithContext(ctx).Save(session).Error,
		"", "an active session already exists for this consultation")
}

func (r *videoSessionRepository) ListByConsultations(ctx context.Context, consultationIDs []uint) ([]models.VideoSession, error) {
	if len(consultationIDs) == 0 {
		return nil, nil
	}
	var sessions []models.VideoSession
	err := r.db.WithContext(ctx).
		Where("consultation_id IN ?", consultationIDs).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, wrapDBErr(err, "", "")
	}
	return sessions, nil
}
