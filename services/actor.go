package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"
)

// Actor is the authenticated identity attached to every request by the token
// middleware. Acting profiles are always re-derived from the user id; client
// supplied profile ids are only trusted for target parties.
type Actor struct {
	UserID uint
	Role   string
}

// actingPatient resolves the actor's own patient profile.
func actingPatient(ctx context.Context, store repositories.Store, actor Actor) (*models.PatientProfile, error) {
	if actor.Role != models.RolePatient {
		return nil, apperrors.New(apperrors.AccessDenied, "patient access required")
	}
	return store.Patients().GetByUserID(ctx, actor.UserID)
}

// actingDoctor resolves the actor's own doctor profile.
func actingDoctor(ctx context.Context, store repositories.Store, actor Actor) (*models.DoctorProfile, error) {
	if actor.Role != models.RoleDoctor {
		return nil, apperrors.New(apperrors.AccessDenied, "doctor access required")
	}
	return store.Doctors().GetByUserID(ctx, actor.UserID)
}

// consultationParty checks that the actor is the doctor or patient on the
// consultation. Non-parties get AccessDenied, never NotFound, so resource
// existence does not leak.
func consultationParty(ctx context.Context, store repositories.Store, actor Actor, consultation *models.Consultation) error {
	switch actor.Role {
	case models.RolePatient:
		patient, err := store.Patients().GetByUserID(ctx, actor.UserID)
		if err == nil && patient.ID == consultation.PatientID {
			return nil
		}
	case models.RoleDoctor:
		doctor, err := store.Doctors().GetByUserID(ctx, actor.UserID)
		if err == nil && doctor.ID == consultation.DoctorID {
			return nil
		}
	}
	return apperrors.New(apperrors.AccessDenied, "access denied")
}

// appointmentParty mirrors consultationParty for appointments.
func appointmentParty(ctx context.Context, store repositories.Store, actor Actor, appointment *models.Appointment) error {
	switch actor.Role {
	case models.RolePatient:
		patient, err := store.Patients().GetByUserID(ctx, actor.UserID)
		if err == nil && patient.ID == appointment.PatientID {
			return nil
		}
	case models.RoleDoctor:
		doctor, err := store.Doctors().GetByUserID(ctx, actor.UserID)
		if err == nil && doctor.ID == appointment.DoctorID {
			return nil
		}
	}
	return apperrors.New(apperrors.AccessDenied, "access denied")
}
