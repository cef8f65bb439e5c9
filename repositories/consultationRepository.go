package repositories

import (
	"CareLink/models"
	"context"

	"gorm.io/gorm"
)

type consultationRepository struct {
	db *gorm.DB
}

func (r *consultationRepository) Create(ctx context.Context, consultation *models.Consultation) error {
	return wrapDBErr(r.db.WithContext(ctx).Create(consultation).Error, "", "")
}

func (r *consultationRepository) GetByID(ctx context.Context, id uint) (*models.Consultation, error) {
	var consultation models.Consultation
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization")
		}).
		First(&consultation, "id = ?", id).Error
	if err != nil {
		return nil, wrapDBErr(err, "consultation not found", "")
	}
	return &consultation, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *models.Consultation) error {
	return wrapDBErr(r.db.WithContext(ctx).Save(consultation).Error, "", "")
}

func (r *consultationRepository) ListByPatient(ctx context.Context, patientID uint, onlyActive bool) ([]models.Consultation, error) {
	return r.list(ctx, "patient_id = ?", patientID, onlyActive)
}

func (r *consultationRepository) ListByDoctor(ctx context.Context, doctorID uint, onlyActive bool) ([]models.Consultation, error) {
	return r.list(ctx, "doctor_id = ?", doctorID, onlyActive)
}

func (r *consultationRepository) list(ctx context.Context, cond string, id uint, onlyActive bool) ([]models.Consultation, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization")
		}).
		Where(cond, id)
	if onlyActive {
		query = query.Where("status = ?", models.ConsultationActive)
	}

	var consultations []models.Consultation
	if err := query.Order("start_time DESC").Find(&consultations).Error; err != nil {
		return nil, wrapDBErr(err, "", "")
	}
	return consultations, nil
}

type messageRepository struct {
	db *gorm.DB
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return wrapDBErr(r.db.WithContext(ctx).Create(message).Error, "", "")
}

// ListByConsultation orders by timestamp with id as the tie-breaker so
// same-instant messages keep insertion order.
func (r *messageRepository) ListByConsultation(ctx context.Context, consultationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErr(err, "", "")
	}
	return messages, nil
}
