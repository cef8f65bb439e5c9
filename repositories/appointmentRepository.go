package repositories

import (
	"CareLink/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return wrapDBErr(r.db.WithContext(ctx).Create(appointment).Error,
		"", "time slot not available")
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, wrapDBErr(err, "appointment not found", "")
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return wrapDBErr(r.db.WithContext(ctx).Save(appointment).Error,
		"", "time slot not available")
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization")
		}).
		Where("patient_id = ?", patientID).
		Order("appointment_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, wrapDBErr(err, "", "")
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name")
		}).
		Where("doctor_id = ?", doctorID).
		Order("appointment_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, wrapDBErr(err, "", "")
	}
	return appointments, nil
}

// FirstByPair returns the oldest appointment between the pair regardless of
// status; the call-request flow reuses it instead of booking a new slot.
func (r *appointmentRepository) FirstByPair(ctx context.Context, doctorID, patientID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Order("created_at ASC").
		First(&appointment).Error
	if err != nil {
		return nil, wrapDBErr(err, "appointment not found", "")
	}
	return &appointment, nil
}

func (r *appointmentRepository) SlotTaken(ctx context.Context, doctorID uint, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_at = ? AND status <> ?", doctorID, at, models.AppointmentCancelled).
		Count(&count).Error
	if err != nil {
		return false, wrapDBErr(err, "", "")
	}
	return count > 0, nil
}
