package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AppointmentService struct {
	store repositories.Store
}

func NewAppointmentService(store repositories.Store) *AppointmentService {
	return &AppointmentService{store: store}
}

// BookAppointmentInput carries the patient's booking request.
type BookAppointmentInput struct {
	DoctorID      uint
	AppointmentAt time.Time
	Reason        string
	Notes         string
}

func (in BookAppointmentInput) validate() error {
	err := validation.Errors{
		"doctor_id":      validation.Validate(in.DoctorID, validation.Required),
		"appointment_at": validation.Validate(in.AppointmentAt, validation.Required),
		"reason":         validation.Validate(in.Reason, validation.Required),
	}.Filter()
	if err != nil {
		return apperrors.Wrap(err, apperrors.Validation, err.Error())
	}
	return nil
}

// Book schedules an appointment for the acting patient. The slot pre-check
// gives a friendly error; the partial unique index is the real guard under
// concurrency.
func (s *AppointmentService) Book(ctx context.Context, actor Actor, input BookAppointmentInput) (*models.Appointment, error) {
	patient, err := actingPatient(ctx, s.store, actor)
	if err != nil {
		return nil, err
	}
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

	taken, err := s.store.Appointments().SlotTaken(ctx, doctor.ID, input.AppointmentAt)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.New(apperrors.Conflict, "time slot not available")
	}

	appointment := &models.Appointment{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		AppointmentAt: input.AppointmentAt,
		Status:        models.AppointmentScheduled,
		Reason:        input.Reason,
		Notes:         input.Notes,
	}
	if err := s.store.Appointments().Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Get returns the appointment if the actor is a party to it.
func (s *AppointmentService) Get(ctx context.Context, actor Actor, id uint) (*models.Appointment, error) {
	appointment, err := s.store.Appointments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appointmentParty(ctx, s.store, actor, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListMine returns the actor's appointments, newest first.
func (s *AppointmentService) ListMine(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	switch actor.Role {
	case models.RolePatient:
		patient, err := actingPatient(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		return s.store.Appointments().ListByPatient(ctx, patient.ID)
	case models.RoleDoctor:
		doctor, err := actingDoctor(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		return s.store.Appointments().ListByDoctor(ctx, doctor.ID)
	default:
		return nil, apperrors.New(apperrors.AccessDenied, "invalid user role")
	}
}

// UpdateStatus applies the scheduled -> completed | cancelled state machine.
// Patients may only cancel; doctors may complete (with notes) or cancel.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor Actor, id uint, status, notes string) (*models.Appointment, error) {
	if status != models.AppointmentScheduled &&
		status != models.AppointmentCompleted &&
		status != models.AppointmentCancelled {
		return nil, apperrors.New(apperrors.Validation, "invalid status")
	}

	appointment, err := s.store.Appointments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appointmentParty(ctx, s.store, actor, appointment); err != nil {
		return nil, err
	}

	if actor.Role == models.RolePatient && status != models.AppointmentCancelled {
		return nil, apperrors.New(apperrors.AccessDenied, "patients can only cancel appointments")
	}
	if status == models.AppointmentScheduled {
		return nil, apperrors.New(apperrors.Validation, "cannot transition back to scheduled")
	}
	if appointment.Status != models.AppointmentScheduled {
		return nil, apperrors.New(apperrors.Conflict, "appointment is no longer scheduled")
	}

	appointment.Status = status
	if status == models.AppointmentCompleted && notes != "" {
		appointment.Notes = notes
	}
	if err := s.store.Appointments().Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateNotes overwrites the notes for either party.
func (s *AppointmentService) UpdateNotes(ctx context.Context, actor Actor, id uint, notes string) (*models.Appointment, error) {
	if notes == "" {
		return nil, apperrors.New(apperrors.Validation, "notes are required")
	}
	appointment, err := s.store.Appointments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appointmentParty(ctx, s.store, actor, appointment); err != nil {
		return nil, err
	}

	appointment.Notes = notes
	if err := s.store.Appointments().Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}
