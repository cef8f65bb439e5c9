package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSessionIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)
	consultation := f.activeConsultation(t)

	session, created, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.SessionActive, session.Status)
	assert.NotEmpty(t, session.SessionToken)

	again, created, err := svc.Start(context.Background(), f.patientActor, consultation.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, session.ID, again.ID)
	assert.Equal(t, session.SessionToken, again.SessionToken)
	assert.Equal(t, 1, f.store.CountSessions())
}

func TestJoinSessionIsSetLike(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)
	consultation := f.activeConsultation(t)

	session, _, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)

	result, err := svc.Join(context.Background(), f.patientActor, session.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, result.ConsultationID)
	assert.Len(t, result.Session.Participants.IDs(), 2)

	// Joining again leaves the set unchanged.
	result, err = svc.Join(context.Background(), f.patientActor, session.SessionToken)
	require.NoError(t, err)
	assert.Len(t, result.Session.Participants.IDs(), 2)
}

func TestJoinSessionNonPartyDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)
	consultation := f.activeConsultation(t)

	session, _, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)

	stranger, _ := f.addPatient(t, "stranger")
	_, err = svc.Join(context.Background(), stranger, session.SessionToken)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.AccessDenied))
}

func TestEndSessionTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)
	consultation := f.activeConsultation(t)

	session, _, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)

	ended, err := svc.End(context.Background(), f.doctorActor, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionEnded, ended.Status)
	require.NotNil(t, ended.EndTime)

	_, err = svc.End(context.Background(), f.doctorActor, session.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
}

func TestJoinEndedSessionConflicts(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)
	consultation := f.activeConsultation(t)

	session, _, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)
	_, err = svc.End(context.Background(), f.doctorActor, session.ID)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), f.patientActor, session.SessionToken)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
}

func TestStartAfterEndCreatesNewSession(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)
	consultation := f.activeConsultation(t)

	first, _, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)
	_, err = svc.End(context.Background(), f.doctorActor, first.ID)
	require.NoError(t, err)

	second, created, err := svc.Start(context.Background(), f.doctorActor, consultation.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.SessionToken, second.SessionToken)
}

func TestListMineReturnsSessionsAcrossConsultations(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.store)

	first := f.activeConsultation(t)
	_, _, err := svc.Start(context.Background(), f.doctorActor, first.ID)
	require.NoError(t, err)

	sessions, err := svc.ListMine(context.Background(), f.patientActor)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	stranger, _ := f.addPatient(t, "stranger")
	none, err := svc.ListMine(context.Background(), stranger)
	require.NoError(t, err)
	assert.Empty(t, none)
}
