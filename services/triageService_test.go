package services

import (
	"CareLink/apperrors"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := KeywordClassifier{}

	cases := []struct {
		name     string
		symptoms string
		severity string
		urgent   bool
	}{
		{"emergency", "sudden CHEST PAIN and sweating", "High", true},
		{"high priority", "high fever since yesterday", "Medium-High", false},
		{"headache", "mild headache after work", "Low-Medium", false},
		{"respiratory", "dry cough and sneezing", "Low", false},
		{"stomach", "stomach cramps and nausea", "Low-Medium", false},
		{"default", "feeling a bit tired lately", "Low", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := classifier.Classify(tc.symptoms)
			assert.Equal(t, tc.severity, result.Severity)
			assert.Equal(t, tc.urgent, result.Urgent)
			assert.NotEmpty(t, result.Diagnosis)
			assert.NotEmpty(t, result.Recommendations)
		})
	}
}

func TestDiagnosePersistsAuditRow(t *testing.T) {
	f := newFixture(t)
	svc := NewTriageService(f.store, nil)

	diagnosis, result, err := svc.Diagnose(context.Background(), f.patientActor, "severe bleeding from cut")
	require.NoError(t, err)
	assert.True(t, result.Urgent)
	assert.Equal(t, f.patient.ID, diagnosis.PatientID)
	assert.Equal(t, result.Diagnosis, diagnosis.AIDiagnosis)
	assert.True(t, diagnosis.Urgent)

	// Symptoms land on the patient profile too.
	patient, err := f.store.Patients().GetByID(context.Background(), f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "severe bleeding from cut", patient.Symptoms)
}

func TestDiagnoseRequiresSymptoms(t *testing.T) {
	f := newFixture(t)
	svc := NewTriageService(f.store, nil)

	_, _, err := svc.Diagnose(context.Background(), f.patientActor, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Validation))
}

func TestDiagnoseDoctorDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewTriageService(f.store, nil)

	_, _, err := svc.Diagnose(context.Background(), f.doctorActor, "headache")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.AccessDenied))
}
