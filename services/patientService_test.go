package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePatientProfile(t *testing.T) {
	f := newFixture(t)
	svc := NewPatientService(f.store)
	user := f.store.AddUser("newpatient", "np@example.com", models.RolePatient)
	actor := Actor{UserID: user.ID, Role: models.RolePatient}

	_, err := svc.CreateProfile(context.Background(), actor, CreatePatientProfileInput{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Validation))

	patient, err := svc.CreateProfile(context.Background(), actor, CreatePatientProfileInput{
		Name:  "Noah Park",
		Phone: "555-0134",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, patient.UserID)

	// One profile per user.
	_, err = svc.CreateProfile(context.Background(), actor, CreatePatientProfileInput{Name: "Noah Park"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
}

func TestUpdatePatientProfilePartial(t *testing.T) {
	f := newFixture(t)
	svc := NewPatientService(f.store)

	phone := "555-0199"
	updated, err := svc.UpdateOwnProfile(context.Background(), f.patientActor, UpdatePatientProfileInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, f.patient.Name, updated.Name)
}

func TestMedicalHistoryListsCompletedConsultations(t *testing.T) {
	f := newFixture(t)
	consultationSvc := NewConsultationService(f.store)
	svc := NewPatientService(f.store)

	completed := f.activeConsultation(t)
	_, err := consultationSvc.End(context.Background(), f.doctorActor, completed.ID, EndConsultationInput{
		Diagnosis: "Seasonal allergy", Prescription: "Antihistamine",
	})
	require.NoError(t, err)
	f.activeConsultation(t) // still active, must not appear

	_, entries, err := svc.MedicalHistory(context.Background(), f.patientActor)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Seasonal allergy", entries[0].Diagnosis)
	assert.Equal(t, f.doctor.Name, entries[0].Doctor)
}
