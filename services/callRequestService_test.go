package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCallRequestService(f *fixture) *CallRequestService {
	return NewCallRequestService(f.store, utils.NoopSender{})
}

func createCallRequest(t *testing.T, f *fixture, svc *CallRequestService, callType string) *models.Notification {
	t.Helper()
	notification, err := svc.Create(context.Background(), f.patientActor, CreateCallRequestInput{
		DoctorID: f.doctor.ID,
		CallType: callType,
	})
	require.NoError(t, err)
	return notification
}

func TestCallRequestCreateRoutesToDoctor(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)

	notification := createCallRequest(t, f, svc, models.CallVideo)
	assert.Equal(t, f.doctor.UserID, notification.UserID)
	assert.Equal(t, models.NotificationCallRequest, notification.NotificationType)
	assert.Equal(t, models.CallVideo, notification.CallType)
	assert.Equal(t, f.patientActor.UserID, notification.RelatedID)
	assert.False(t, notification.IsRead)

	pending, err := svc.ListPending(context.Background(), f.doctorActor)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, notification.ID, pending[0].ID)
}

func TestCallRequestAcceptProvisionsEverythingOnce(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallVideo)

	result, err := svc.Respond(context.Background(), f.doctorActor, notification.ID, DecisionAccepted)
	require.NoError(t, err)
	assert.Equal(t, DecisionAccepted, result.Decision)
	assert.Equal(t, models.CallVideo, result.CallType)
	require.NotZero(t, result.ConsultationID)
	require.NotNil(t, result.Session)
	assert.Equal(t, models.SessionActive, result.Session.Status)
	assert.NotEmpty(t, result.Session.SessionToken)
	assert.True(t, result.Session.Participants.Contains(f.doctorActor.UserID))

	assert.Equal(t, 1, f.store.CountAppointments())
	assert.Equal(t, 1, f.store.CountConsultations())
	assert.Equal(t, 1, f.store.CountSessions())

	consultation, err := f.store.Consultations().GetByID(context.Background(), result.ConsultationID)
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationActive, consultation.Status)
	assert.Equal(t, models.ConsultationVideo, consultation.ConsultationType)
	require.NotNil(t, consultation.AppointmentID)

	// Patient received the call_response notification.
	responses, _, err := f.store.Notifications().List(context.Background(), f.patientActor.UserID, true, 1, 10)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.NotificationCallResponse, responses[0].NotificationType)
}

func TestCallRequestRejectProvisionsNothing(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallVideo)

	result, err := svc.Respond(context.Background(), f.doctorActor, notification.ID, DecisionRejected)
	require.NoError(t, err)
	assert.Equal(t, DecisionRejected, result.Decision)
	assert.Zero(t, result.ConsultationID)
	assert.Nil(t, result.Session)

	assert.Equal(t, 0, f.store.CountAppointments())
	assert.Equal(t, 0, f.store.CountConsultations())
	assert.Equal(t, 0, f.store.CountSessions())

	responses, _, err := f.store.Notifications().List(context.Background(), f.patientActor.UserID, true, 1, 10)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.NotificationCallResponse, responses[0].NotificationType)
}

func TestCallRequestDoubleRespondConflicts(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallVideo)

	_, err := svc.Respond(context.Background(), f.doctorActor, notification.ID, DecisionAccepted)
	require.NoError(t, err)

	_, err = svc.Respond(context.Background(), f.doctorActor, notification.ID, DecisionAccepted)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))

	// Nothing was provisioned twice.
	assert.Equal(t, 1, f.store.CountConsultations())
	assert.Equal(t, 1, f.store.CountSessions())
}

func TestCallRequestTextCallBecomesChatWithoutSession(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallText)

	result, err := svc.Respond(context.Background(), f.doctorActor, notification.ID, DecisionAccepted)
	require.NoError(t, err)
	assert.Nil(t, result.Session)
	assert.Equal(t, 0, f.store.CountSessions())

	consultation, err := f.store.Consultations().GetByID(context.Background(), result.ConsultationID)
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationChat, consultation.ConsultationType)
}

func TestCallRequestRespondWrongDoctorNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallVideo)

	otherDoctor, _ := f.addDoctor(t, "drother", true)
	_, err := svc.Respond(context.Background(), otherDoctor, notification.ID, DecisionAccepted)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestCallRequestRespondRejectsBadDecision(t *testing.T) {
	f := newFixture(t)
	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallVideo)

	_, err := svc.Respond(context.Background(), f.doctorActor, notification.ID, "maybe")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Validation))
}

func TestCallRequestReusesExistingAppointment(t *testing.T) {
	f := newFixture(t)
	appointmentSvc := NewAppointmentService(f.store)
	_, err := appointmentSvc.Book(context.Background(), f.patientActor, BookAppointmentInput{
		DoctorID:      f.doctor.ID,
		AppointmentAt: mustTime(t, "2026-09-14T10:00:00Z"),
		Reason:        "checkup",
	})
	require.NoError(t, err)

	svc := newCallRequestService(f)
	notification := createCallRequest(t, f, svc, models.CallVideo)
	_, err = svc.Respond(context.Background(), f.doctorActor, notification.ID, DecisionAccepted)
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.CountAppointments())
}
