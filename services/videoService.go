package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"
	"time"

	"github.com/google/uuid"
)

type VideoService struct {
	store repositories.Store
}

func NewVideoService(store repositories.Store) *VideoService {
	return &VideoService{store: store}
}

// JoinResult ties the joined session back to its consultation.
type JoinResult struct {
	Session        *models.VideoSession `json:"session"`
	ConsultationID uint                 `json:"consultation_id"`
}

// Start returns the consultation's active session, creating one if needed.
// Losing the create race to a concurrent starter is fine: the winner's
// session is re-read and returned, keeping start idempotent.
func (s *VideoService) Start(ctx context.Context, actor Actor, consultationID uint) (*models.VideoSession, bool, error) {
	consultation, err := s.store.Consultations().GetByID(ctx, consultationID)
	if err != nil {
		return nil, false, err
	}
	if err := consultationParty(ctx, s.store, actor, consultation); err != nil {
		return nil, false, err
	}

	existing, err := s.store.VideoSessions().ActiveByConsultation(ctx, consultation.ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	now := time.Now().UTC()
	session := &models.VideoSession{
		ConsultationID: consultation.ID,
		SessionToken:   uuid.New().String(),
		Status:         models.SessionActive,
		StartTime:      &now,
		Participants:   models.NewParticipantSet(actor.UserID),
	}
	err = s.store.VideoSessions().Create(ctx, session)
	if apperrors.Is(err, apperrors.Conflict) {
		existing, lookupErr := s.store.VideoSessions().ActiveByConsultation(ctx, consultation.ID)
		if lookupErr == nil && existing != nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return session, true, nil
}

// Join adds the actor to an active session's participant set. Joining twice
// is a no-op thanks to set semantics.
func (s *VideoService) Join(ctx context.Context, actor Actor, sessionToken string) (*JoinResult, error) {
	session, err := s.store.VideoSessions().GetByToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionActive {
		return nil, apperrors.New(apperrors.Conflict, "session is not active")
	}

	consultation, err := s.store.Consultations().GetByID(ctx, session.ConsultationID)
	if err != nil {
		return nil, err
	}
	if err := consultationParty(ctx, s.store, actor, consultation); err != nil {
		return nil, err
	}

	if session.Participants == nil {
		session.Participants = models.ParticipantSet{}
	}
	if session.Participants.Add(actor.UserID) {
		if err := s.store.VideoSessions().Update(ctx, session); err != nil {
			return nil, err
		}
	}
	return &JoinResult{Session: session, ConsultationID: consultation.ID}, nil
}

// End closes an active session. Re-ending reports Conflict.
func (s *VideoService) End(ctx context.Context, actor Actor, sessionID uint) (*models.VideoSession, error) {
	session, err := s.store.VideoSessions().GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	consultation, err := s.store.Consultations().GetByID(ctx, session.ConsultationID)
	if err != nil {
		return nil, err
	}
	if err := consultationParty(ctx, s.store, actor, consultation); err != nil {
		return nil, err
	}
	if session.Status != models.SessionActive {
		return nil, apperrors.New(apperrors.Conflict, "session is not active")
	}

	now := time.Now().UTC()
	session.Status = models.SessionEnded
	session.EndTime = &now
	if err := s.store.VideoSessions().Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListMine returns the sessions attached to any of the actor's
// consultations, newest first.
func (s *VideoService) ListMine(ctx context.Context, actor Actor) ([]models.VideoSession, error) {
	var consultations []models.Consultation
	switch actor.Role {
	case models.RolePatient:
		patient, err := actingPatient(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		consultations, err = s.store.Consultations().ListByPatient(ctx, patient.ID, false)
		if err != nil {
			return nil, err
		}
	case models.RoleDoctor:
		doctor, err := actingDoctor(ctx, s.store, actor)
		if err != nil {
			return nil, err
		}
		consultations, err = s.store.Consultations().ListByDoctor(ctx, doctor.ID, false)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.New(apperrors.AccessDenied, "invalid user role")
	}

	ids := make([]uint, 0, len(consultations))
	for _, consultation := range consultations {
		ids = append(ids, consultation.ID)
	}
	return s.store.VideoSessions().ListByConsultations(ctx, ids)
}
