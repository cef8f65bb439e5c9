package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ConsultationService struct {
	store repositories.Store
}

func NewConsultationService(store repositories.Store) *ConsultationService {
	return &ConsultationService{store: store}
}

// StartConsultationInput opens a consultation directly, without a prior call
// request. Patients start with their own profile; doctors must name the
// patient.
type StartConsultationInput struct {
	DoctorID         uint
	PatientID        uint
	ConsultationType string
	AppointmentID    *uint
}

func (in StartConsultationInput) validate() error {
	err := validation.Errors{
		"doctor_id": validation.Validate(in.DoctorID, validation.Required),
		"consultation_type": validation.Validate(in.ConsultationType, validation.Required,
			validation.In(models.ConsultationChat, models.ConsultationVideo, models.ConsultationAudio)),
	}.Filter()
	if err != nil {
		return apperrors.Wrap(err, apperrors.Validation, err.Error())
	}
	return nil
}

// EndConsultationInput captures the doctor's findings on completion. All
// fields optional; ending without a diagnosis is still a completion.
type EndConsultationInput struct {
	Diagnosis    string
	Prescription string
	Notes        string
}

func (s *ConsultationService) Start(ctx context.Context, actor Actor, input StartConsultationInput) (*models.Consultation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	doctor, err := s.store.Doctors().GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsAvailable {
		return nil, apperrors.New(apperrors.Conflict, "doctor is not available")
	}

	var patientID uint
	switch actor.Role {
	case models.RolePatient:
		patient, err := actingPatient(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		patientID = patient.ID
	case models.RoleDoctor:
		acting, err := actingDoctor(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		if acting.ID != doctor.ID {
			return nil, apperrors.New(apperrors.AccessDenied, "doctors can only start their own consultations")
		}
		if input.PatientID == 0 {
			return nil, apperrors.New(apperrors.Validation, "patient_id is required")
		}
		patient, err := s.store.Patients().GetByID(ctx, input.PatientID)
		if err != nil {
			return nil, err
		}
		patientID = patient.ID
	default:
		return nil, apperrors.New(apperrors.AccessDenied, "invalid user role")
	}

	if input.AppointmentID != nil {
		appointment, err := s.store.Appointments().GetByID(ctx, *input.AppointmentID)
		if err != nil || appointment.PatientID != patientID || appointment.DoctorID != doctor.ID {
			return nil, apperrors.New(apperrors.Validation, "invalid appointment")
		}
	}

	consultation := &models.Consultation{
		PatientID:        patientID,
		DoctorID:         doctor.ID,
		AppointmentID:    input.AppointmentID,
		StartTime:        time.Now().UTC(),
		Status:           models.ConsultationActive,
		ConsultationType: input.ConsultationType,
	}
	if err := s.store.Consultations().Create(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

// End completes an active consultation. Completed is terminal; a second end
// reports Conflict.
func (s *ConsultationService) End(ctx context.Context, actor Actor, id uint, input EndConsultationInput) (*models.Consultation, error) {
	consultation, err := s.store.Consultations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := consultationParty(ctx, s.store, actor, consultation); err != nil {
		return nil, err
	}
	if consultation.Status != models.ConsultationActive {
		return nil, apperrors.New(apperrors.Conflict, "consultation is not active")
	}

	now := time.Now().UTC()
	consultation.Status = models.ConsultationCompleted
	consultation.EndTime = &now
	consultation.Diagnosis = input.Diagnosis
	consultation.Prescription = input.Prescription
	consultation.Notes = input.Notes
	if err := s.store.Consultations().Update(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

// SendMessage appends a message to an active consultation.
func (s *ConsultationService) SendMessage(ctx context.Context, actor Actor, consultationID uint, body, messageType string) (*models.Message, error) {
	consultation, err := s.store.Consultations().GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if err := consultationParty(ctx, s.store, actor, consultation); err != nil {
		return nil, err
	}
	if consultation.Status != models.ConsultationActive {
		return nil, apperrors.New(apperrors.Conflict, "consultation is not active")
	}
	if body == "" {
		return nil, apperrors.New(apperrors.Validation, "message is required")
	}
	if messageType == "" {
		messageType = "text"
	}

	message := &models.Message{
		ConsultationID: consultation.ID,
		SenderID:       actor.UserID,
		Body:           body,
		MessageType:    messageType,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.store.Messages().Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages returns the consultation transcript, oldest first.
func (s *ConsultationService) ListMessages(ctx context.Context, actor Actor, consultationID uint) ([]models.Message, error) {
	consultation, err := s.store.Consultations().GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if err := consultationParty(ctx, s.store, actor, consultation); err != nil {
		return nil, err
	}
	return s.store.Messages().ListByConsultation(ctx, consultation.ID)
}

// ListMine returns the actor's consultations, optionally only active ones.
func (s *ConsultationService) ListMine(ctx context.Context, actor Actor, onlyActive bool) ([]models.Consultation, error) {
	switch actor.Role {
	case models.RolePatient:
		patient, err := actingPatient(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		return s.store.Consultations().ListByPatient(ctx, patient.ID, onlyActive)
	case models.RoleDoctor:
		doctor, err := actingDoctor(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		return s.store.Consultations().ListByDoctor(ctx, doctor.ID, onlyActive)
	default:
		return nil, apperrors.New(apperrors.AccessDenied, "invalid user role")
	}
}
