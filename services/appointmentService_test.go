package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointment(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)
	at := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	appointment, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID:      f.doctor.ID,
		AppointmentAt: at,
		Reason:        "Persistent migraines",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)
	assert.Equal(t, f.patient.ID, appointment.PatientID)
	assert.True(t, appointment.AppointmentAt.Equal(at))
}

func TestBookAppointmentSlotConflict(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)
	at := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	_, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID: f.doctor.ID, AppointmentAt: at, Reason: "checkup",
	})
	require.NoError(t, err)

	otherActor, _ := f.addPatient(t, "jsmith")
	_, err = svc.Book(context.Background(), otherActor, BookAppointmentInput{
		DoctorID: f.doctor.ID, AppointmentAt: at, Reason: "checkup",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
	assert.Equal(t, 1, f.store.CountAppointments())
}

func TestBookAppointmentCancelledSlotReusable(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)
	at := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	first, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID: f.doctor.ID, AppointmentAt: at, Reason: "checkup",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), f.patientActor, first.ID, models.AppointmentCancelled, "")
	require.NoError(t, err)

	otherActor, _ := f.addPatient(t, "jsmith")
	_, err = svc.Book(context.Background(), otherActor, BookAppointmentInput{
		DoctorID: f.doctor.ID, AppointmentAt: at, Reason: "checkup",
	})
	require.NoError(t, err)
}

func TestBookAppointmentDoctorUnavailable(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)
	_, offDuty := f.addDoctor(t, "droffline", false)

	_, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID:      offDuty.ID,
		AppointmentAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		Reason:        "checkup",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
	assert.Equal(t, 0, f.store.CountAppointments())
}

func TestBookAppointmentDoctorRoleDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	_, err := svc.Book(context.Background(), f.doctorActor, BookAppointmentInput{
		DoctorID:      f.doctor.ID,
		AppointmentAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		Reason:        "checkup",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.AccessDenied))
}

func TestListMineSeesBothParties(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	_, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID:      f.doctor.ID,
		AppointmentAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		Reason:        "checkup",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), f.patientActor)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := svc.ListMine(context.Background(), f.doctorActor)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, mine[0].ID, theirs[0].ID)
}

func TestUpdateStatusRules(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	appointment, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID:      f.doctor.ID,
		AppointmentAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		Reason:        "checkup",
	})
	require.NoError(t, err)

	// Patients cannot complete.
	_, err = svc.UpdateStatus(context.Background(), f.patientActor, appointment.ID, models.AppointmentCompleted, "")
	assert.True(t, apperrors.Is(err, apperrors.AccessDenied))

	// Nobody moves back to scheduled.
	_, err = svc.UpdateStatus(context.Background(), f.doctorActor, appointment.ID, models.AppointmentScheduled, "")
	assert.True(t, apperrors.Is(err, apperrors.Validation))

	// Doctor completes with notes.
	updated, err := svc.UpdateStatus(context.Background(), f.doctorActor, appointment.ID, models.AppointmentCompleted, "prescribed rest")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, updated.Status)
	assert.Equal(t, "prescribed rest", updated.Notes)

	// Terminal states reject further transitions.
	_, err = svc.UpdateStatus(context.Background(), f.patientActor, appointment.ID, models.AppointmentCancelled, "")
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
}

func TestGetAppointmentNonPartyDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	appointment, err := svc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID:      f.doctor.ID,
		AppointmentAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		Reason:        "checkup",
	})
	require.NoError(t, err)

	stranger, _ := f.addPatient(t, "stranger")
	_, err = svc.Get(context.Background(), stranger, appointment.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.AccessDenied))
}
