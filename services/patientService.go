package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PatientService struct {
	store repositories.Store
}

func NewPatientService(store repositories.Store) *PatientService {
	return &PatientService{store: store}
}

// CreatePatientProfileInput registers the acting patient's profile.
type CreatePatientProfileInput struct {
	Name           string
	DateOfBirth    string
	Phone          string
	Address        string
	MedicalHistory string
}

func (in CreatePatientProfileInput) validate() error {
	err := validation.Errors{
		"name": validation.Validate(in.Name, validation.Required, validation.Length(1, 120)),
	}.Filter()
	if err != nil {
		return apperrors.Wrap(err, apperrors.Validation, err.Error())
	}
	return nil
}

// UpdatePatientProfileInput is a partial update; nil fields are untouched.
type UpdatePatientProfileInput struct {
	Name           *string
	DateOfBirth    *string
	Phone          *string
	Address        *string
	MedicalHistory *string
	Symptoms       *string
}

// CreateProfile creates the 1:1 patient profile for the acting user.
func (s *PatientService) CreateProfile(ctx context.Context, actor Actor, input CreatePatientProfileInput) (*models.PatientProfile, error) {
	if actor.Role != models.RolePatient {
		return nil, apperrors.New(apperrors.AccessDenied, "patient access required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	patient := &models.PatientProfile{
		UserID:         actor.UserID,
		Name:           input.Name,
		DateOfBirth:    input.DateOfBirth,
		Phone:          input.Phone,
		Address:        input.Address,
		MedicalHistory: input.MedicalHistory,
	}
	if err := s.store.Patients().Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// GetOwnProfile returns the acting patient's profile.
func (s *PatientService) GetOwnProfile(ctx context.Context, actor Actor) (*models.PatientProfile, error) {
	return actingPatient(ctx, s.store, actor)
}

// UpdateOwnProfile applies a partial update to the acting patient's profile.
func (s *PatientService) UpdateOwnProfile(ctx context.Context, actor Actor, input UpdatePatientProfileInput) (*models.PatientProfile, error) {
	patient, err := actingPatient(ctx, s.store, actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = *input.DateOfBirth
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}
	if input.MedicalHistory != nil {
		patient.MedicalHistory = *input.MedicalHistory
	}
	if input.Symptoms != nil {
		patient.Symptoms = *input.Symptoms
	}

	if err := s.store.Patients().Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// MedicalHistoryEntry is one completed consultation in the patient's record.
type MedicalHistoryEntry struct {
	Date           string `json:"date"`
	Doctor         string `json:"doctor"`
	Specialization string `json:"specialization"`
	Diagnosis      string `json:"diagnosis"`
	Prescription   string `json:"prescription"`
	Notes          string `json:"notes"`
}

// MedicalHistory returns the free-text history plus completed consultations.
func (s *PatientService) MedicalHistory(ctx context.Context, actor Actor) (string, []MedicalHistoryEntry, error) {
	patient, err := actingPatient(ctx, s.store, actor)
	if err != nil {
		return "", nil, err
	}

	consultations, err := s.store.Consultations().ListByPatient(ctx, patient.ID, false)
	if err != nil {
		return "", nil, err
	}

	var history []MedicalHistoryEntry
	for _, consultation := range consultations {
		if consultation.Status != models.ConsultationCompleted {
			continue
		}
		history = append(history, MedicalHistoryEntry{
			Date:           consultation.StartTime.Format("2006-01-02T15:04:05Z07:00"),
			Doctor:         consultation.Doctor.Name,
			Specialization: consultation.Doctor.Specialization,
			Diagnosis:      consultation.Diagnosis,
			Prescription:   consultation.Prescription,
			Notes:          consultation.Notes,
		})
	}
	return patient.MedicalHistory, history, nil
}
