package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"CareLink/utils"
	"context"
	"fmt"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Call request decisions.
const (
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

// CallRequestService drives the call-request handshake: a patient asks a
// doctor for a live consultation, the doctor accepts or rejects, and
// acceptance provisions appointment, consultation and (for video/audio) a
// video session in one transaction.
type CallRequestService struct {
	store repositories.Store
	email utils.EmailSender
}

func NewCallRequestService(store repositories.Store, email utils.EmailSender) *CallRequestService {
	return &CallRequestService{store: store, email: email}
}

// CreateCallRequestInput is the patient's ask.
type CreateCallRequestInput struct {
	DoctorID uint
	CallType string
	Message  string
}

func (in CreateCallRequestInput) validate() error {
	err := validation.Errors{
		"doctor_id": validation.Validate(in.DoctorID, validation.Required),
		"call_type": validation.Validate(in.CallType, validation.Required,
			validation.In(models.CallVideo, models.CallAudio, models.CallText)),
	}.Filter()
	if err != nil {
		return apperrors.Wrap(err, apperrors.Validation, err.Error())
	}
	return nil
}

// RespondResult is what an accepted call request provisions.
type RespondResult struct {
	Decision       string               `json:"decision"`
	CallType       string               `json:"call_type"`
	ConsultationID uint                 `json:"consultation_id,omitempty"`
	Session        *models.VideoSession `json:"session,omitempty"`
}

// Create routes a call request to the doctor's user as an unread
// call_request notification carrying the structured call type.
func (s *CallRequestService) Create(ctx context.Context, actor Actor, input CreateCallRequestInput) (*models.Notification, error) {
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
	doctorUser, err := s.store.Users().GetByID(ctx, doctor.UserID)
	if err != nil {
		return nil, err
	}

	message := input.Message
	if message == "" {
		message = fmt.Sprintf("%s has requested a %s consultation.", patient.Name, input.CallType)
	}
	notification := &models.Notification{
		UserID:           doctorUser.ID,
		Title:            "New Call Request",
		Message:          message,
		NotificationType: models.NotificationCallRequest,
		CallType:         input.CallType,
		RelatedID:        actor.UserID,
	}
	if err := s.store.Notifications().Create(ctx, notification); err != nil {
		return nil, err
	}

	s.sendEmail(doctorUser.Email, "New call request", message)
	return notification, nil
}

// ListPending returns the doctor's unread call requests, newest first.
func (s *CallRequestService) ListPending(ctx context.Context, actor Actor) ([]models.Notification, error) {
	if actor.Role != models.RoleDoctor {
		return nil, apperrors.New(apperrors.AccessDenied, "doctor access required")
	}
	return s.store.Notifications().ListUnreadByType(ctx, actor.UserID, models.NotificationCallRequest)
}

// Respond settles a call request. Every read and write runs inside one
// transaction; the atomic mark-read is the double-accept guard, so a second
// respond on the same request gets a Conflict and provisions nothing.
func (s *CallRequestService) Respond(ctx context.Context, actor Actor, notificationID uint, decision string) (*RespondResult, error) {
	if actor.Role != models.RoleDoctor {
		return nil, apperrors.New(apperrors.AccessDenied, "doctor access required")
	}
	if decision != DecisionAccepted && decision != DecisionRejected {
		return nil, apperrors.New(apperrors.Validation, "decision must be accepted or rejected")
	}

	var (
		result       *RespondResult
		patientEmail string
	)
	err := s.store.InTx(ctx, func(tx repositories.Store) error {
		notification, err := tx.Notifications().GetForUser(ctx, notificationID, actor.UserID)
		if err != nil {
			return err
		}
		if notification.NotificationType != models.NotificationCallRequest {
			return apperrors.New(apperrors.NotFound, "call request not found")
		}

		won, err := tx.Notifications().MarkReadIfUnread(ctx, notification.ID, actor.UserID)
		if err != nil {
			return err
		}
		if !won {
			return apperrors.New(apperrors.Conflict, "call request already responded to")
		}

		doctor, err := tx.Doctors().GetByUserID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		patient, err := tx.Patients().GetByUserID(ctx, notification.RelatedID)
		if err != nil {
			return err
		}
		patientUser, err := tx.Users().GetByID(ctx, patient.UserID)
		if err != nil {
			return err
		}
		patientEmail = patientUser.Email

		callType := notification.CallType
		if callType == "" {
			callType = models.CallVideo
		}
		result = &RespondResult{Decision: decision, CallType: callType}

		if decision == DecisionRejected {
			return tx.Notifications().Create(ctx, &models.Notification{
				UserID:           patient.UserID,
				Title:            "Call Request Declined",
				Message:          fmt.Sprintf("Dr. %s is unable to take your %s call right now.", doctor.Name, callType),
				NotificationType: models.NotificationCallResponse,
				RelatedID:        actor.UserID,
			})
		}

		appointment, err := autoCreateAppointment(ctx, tx, doctor.ID, patient.ID)
		if err != nil {
			return err
		}

		consultation := &models.Consultation{
			PatientID:        patient.ID,
			DoctorID:         doctor.ID,
			AppointmentID:    &appointment.ID,
			StartTime:        time.Now().UTC(),
			Status:           models.ConsultationActive,
			ConsultationType: consultationTypeFor(callType),
		}
		if err := tx.Consultations().Create(ctx, consultation); err != nil {
			return err
		}
		result.ConsultationID = consultation.ID

		if callType == models.CallVideo || callType == models.CallAudio {
			now := time.Now().UTC()
			session := &models.VideoSession{
				ConsultationID: consultation.ID,
				SessionToken:   uuid.New().String(),
				Status:         models.SessionActive,
				StartTime:      &now,
				Participants:   models.NewParticipantSet(actor.UserID),
			}
			if err := tx.VideoSessions().Create(ctx, session); err != nil {
				return err
			}
			result.Session = session
		}

		return tx.Notifications().Create(ctx, &models.Notification{
			UserID:           patient.UserID,
			Title:            "Call Request Accepted",
			Message:          fmt.Sprintf("Dr. %s accepted your %s call. Your consultation is ready.", doctor.Name, callType),
			NotificationType: models.NotificationCallResponse,
			RelatedID:        actor.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	subject := "Call request " + decision
	s.sendEmail(patientEmail, subject, "Your call request was "+decision+".")
	return result, nil
}

// autoCreateAppointment reuses any existing appointment between the pair,
// else books one dated now. The slot checker is bypassed on purpose: the
// doctor is accepting this call right now.
func autoCreateAppointment(ctx context.Context, tx repositories.Store, doctorID, patientID uint) (*models.Appointment, error) {
	appointment, err := tx.Appointments().FirstByPair(ctx, doctorID, patientID)
	if err == nil {
		return appointment, nil
	}
	if !apperrors.Is(err, apperrors.NotFound) {
		return nil, err
	}

	appointment = &models.Appointment{
		PatientID:     patientID,
		DoctorID:      doctorID,
		AppointmentAt: time.Now().UTC(),
		Status:        models.AppointmentScheduled,
		Reason:        "Accepted call request consultation",
	}
	if err := tx.Appointments().Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// consultationTypeFor maps a call type onto the consultation type enum;
// text calls become chat consultations.
func consultationTypeFor(callType string) string {
	switch callType {
	case models.CallAudio:
		return models.ConsultationAudio
	case models.CallText:
		return models.ConsultationChat
	default:
		return models.ConsultationVideo
	}
}

// sendEmail is fire-and-forget relative to the main transaction.
func (s *CallRequestService) sendEmail(to, subject, body string) {
	if s.email == nil || to == "" {
		return
	}
	if err := s.email.Send(to, subject, body); err != nil {
		log.Printf("Failed to send notification email to %s: %v", to, err)
	}
}
