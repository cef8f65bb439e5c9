package services

import (
	"CareLink/models"
	"CareLink/repositories"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// fixture wires a memory store with one doctor and one patient, each with a
// profile, plus their actors.
type fixture struct {
	store *repositories.MemoryStore

	patientActor Actor
	doctorActor  Actor
	adminActor   Actor

	patient *models.PatientProfile
	doctor  *models.DoctorProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore()

	patientUser := store.AddUser("ppatel", "ppatel@example.com", models.RolePatient)
	doctorUser := store.AddUser("drchen", "drchen@example.com", models.RoleDoctor)
	adminUser := store.AddUser("admin", "admin@example.com", models.RoleAdmin)

	patient := &models.PatientProfile{UserID: patientUser.ID, Name: "Priya Patel"}
	require.NoError(t, store.Patients().Create(context.Background(), patient))

	doctor := &models.DoctorProfile{
		UserID:         doctorUser.ID,
		Name:           "Wei Chen",
		Specialization: "General Medicine",
		LicenseNumber:  "LIC-1001",
		IsAvailable:    true,
	}
	require.NoError(t, store.Doctors().Create(context.Background(), doctor))

	return &fixture{
		store:        store,
		patientActor: Actor{UserID: patientUser.ID, Role: models.RolePatient},
		doctorActor:  Actor{UserID: doctorUser.ID, Role: models.RoleDoctor},
		adminActor:   Actor{UserID: adminUser.ID, Role: models.RoleAdmin},
		patient:      patient,
		doctor:       doctor,
	}
}

// addPatient seeds a second patient with their own profile.
func (f *fixture) addPatient(t *testing.T, username string) (Actor, *models.PatientProfile) {
	t.Helper()
	user := f.store.AddUser(username, username+"@example.com", models.RolePatient)
	patient := &models.PatientProfile{UserID: user.ID, Name: username}
	require.NoError(t, f.store.Patients().Create(context.Background(), patient))
	return Actor{UserID: user.ID, Role: models.RolePatient}, patient
}

// addDoctor seeds a second doctor with their own profile.
func (f *fixture) addDoctor(t *testing.T, username string, available bool) (Actor, *models.DoctorProfile) {
	t.Helper()
	user := f.store.AddUser(username, username+"@example.com", models.RoleDoctor)
	doctor := &models.DoctorProfile{
		UserID:         user.ID,
		Name:           username,
		Specialization: "Dermatology",
		LicenseNumber:  "LIC-" + username,
		IsAvailable:    available,
	}
	require.NoError(t, f.store.Doctors().Create(context.Background(), doctor))
	return Actor{UserID: user.ID, Role: models.RoleDoctor}, doctor
}

// activeConsultation starts a chat consultation between the fixture's patient
// and doctor.
func (f *fixture) activeConsultation(t *testing.T) *models.Consultation {
	t.Helper()
	svc := NewConsultationService(f.store)
	consultation, err := svc.Start(context.Background(), f.patientActor, StartConsultationInput{
		DoctorID:         f.doctor.ID,
		ConsultationType: models.ConsultationChat,
	})
	require.NoError(t, err)
	return consultation
}
