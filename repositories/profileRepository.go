package repositories

import (
	"CareLink/cache"
	"CareLink/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	DoctorCacheExpiry      = 1 * time.Hour
	availableDoctorsKey    = "doctors_available_cache"
	doctorCacheKeyTemplate = "doctor_cache:%d"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, wrapDBErr(err, "user not found", "")
	}
	return &user, nil
}

type doctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.DoctorProfile) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return wrapDBErr(err, "", "doctor profile already exists for user")
	}
	r.invalidate(ctx, doctor.ID)
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.DoctorProfile, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, fmt.Sprintf(doctorCacheKeyTemplate, id))
		if err == nil && cached != "" {
			var doctor models.DoctorProfile
			if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
				return &doctor, nil
			}
		}
	}

	var doctor models.DoctorProfile
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		return nil, wrapDBErr(err, "doctor not found", "")
	}

	if r.cache != nil {
		if data, err := json.Marshal(doctor); err == nil {
			if err := r.cache.Set(ctx, fmt.Sprintf(doctorCacheKeyTemplate, id), data, DoctorCacheExpiry); err != nil {
				log.Printf("Failed to set doctor in cache: %v", err)
			}
		}
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uint) (*models.DoctorProfile, error) {
	var doctor models.DoctorProfile
	err := r.db.WithContext(ctx).First(&doctor, "user_id = ?", userID).Error
	if err != nil {
		return nil, wrapDBErr(err, "doctor profile not found", "")
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *models.DoctorProfile) error {
	if err := r.db.WithContext(ctx).Save(doctor).Error; err != nil {
		return wrapDBErr(err, "", "doctor profile already exists for user")
	}
	r.invalidate(ctx, doctor.ID)
	return nil
}

func (r *doctorRepository) ListAvailable(ctx context.Context) ([]models.DoctorProfile, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, availableDoctorsKey)
		if err == nil && cached != "" {
			var doctors []models.DoctorProfile
			if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
				return doctors, nil
			}
		}
	}

	var doctors []models.DoctorProfile
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, wrapDBErr(err, "", "")
	}

	if r.cache != nil {
		if data, err := json.Marshal(doctors); err == nil {
			if err := r.cache.Set(ctx, availableDoctorsKey, data, DoctorCacheExpiry); err != nil {
				log.Printf("Failed to set available doctors in cache: %v", err)
			}
		}
	}
	return doctors, nil
}

func (r *doctorRepository) invalidate(ctx context.Context, id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeleteBatch(ctx, fmt.Sprintf(doctorCacheKeyTemplate, id), availableDoctorsKey); err != nil {
		log.Printf("Failed to invalidate doctor cache: %v", err)
	}
}

type patientRepository struct {
	db *gorm.DB
}

func (r *patientRepository) Create(ctx context.Context, patient *models.PatientProfile) error {
	return wrapDBErr(r.db.WithContext(ctx).Create(patient).Error, "", "patient profile already exists for user")
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		return nil, wrapDBErr(err, "patient not found", "")
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uint) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	err := r.db.WithContext(ctx).First(&patient, "user_id = ?", userID).Error
	if err != nil {
		return nil, wrapDBErr(err, "patient profile not found", "")
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *models.PatientProfile) error {
	return wrapDBErr(r.db.WithContext(ctx).Save(patient).Error, "", "patient profile already exists for user")
}

type diagnosisRepository struct {
	db *gorm.DB
}

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *models.Diagnosis) error {
	return wrapDBErr(r.db.WithContext(ctx).Create(diagnosis).Error, "", "")
}
