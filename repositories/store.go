package repositories

import (
	"CareLink/models"
	"context"
	"time"
)

// Store aggregates the entity repositories behind one transactional surface.
// InTx runs fn against a Store bound to a single database transaction; the
// call-request flow relies on this to provision appointment, consultation,
// video session and response notification as one atomic unit.
type Store interface {
	Users() UserRepository
	Doctors() DoctorRepository
	Patients() PatientRepository
	Appointments() AppointmentRepository
	Consultations() ConsultationRepository
	Messages() MessageRepository
	VideoSessions() VideoSessionRepository
	Notifications() NotificationRepository
	Diagnoses() DiagnosisRepository

	InTx(ctx context.Context, fn func(Store) error) error
}

// UserRepository reads identity records.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// DoctorRepository owns doctor profiles.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.DoctorProfile) error
	GetByID(ctx context.Context, id uint) (*models.DoctorProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.DoctorProfile, error)
	Update(ctx context.Context, doctor *models.DoctorProfile) error
	ListAvailable(ctx context.Context) ([]models.DoctorProfile, error)
}

// PatientRepository owns patient profiles.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.PatientProfile) error
	GetByID(ctx context.Context, id uint) (*models.PatientProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.PatientProfile, error)
	Update(ctx context.Context, patient *models.PatientProfile) error
}

// AppointmentRepository owns appointments. Create surfaces a slot collision
// as a Conflict error via the partial unique index on (doctor_id,
// appointment_at) over non-cancelled rows.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	ListByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error)
	FirstByPair(ctx context.Context, doctorID, patientID uint) (*models.Appointment, error)
	SlotTaken(ctx context.Context, doctorID uint, at time.Time) (bool, error)
}

// ConsultationRepository owns consultations.
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *models.Consultation) error
	GetByID(ctx context.Context, id uint) (*models.Consultation, error)
	Update(ctx context.Context, consultation *models.Consultation) error
	ListByPatient(ctx context.Context, patientID uint, onlyActive bool) ([]models.Consultation, error)
	ListByDoctor(ctx context.Context, doctorID uint, onlyActive bool) ([]models.Consultation, error)
}

// MessageRepository owns consultation messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByConsultation(ctx context.Context, consultationID uint) ([]models.Message, error)
}

// VideoSessionRepository owns video session metadata. Create surfaces a
// second active session for the same consultation as a Conflict error.
type VideoSessionRepository interface {
	Create(ctx context.Context, session *models.VideoSession) error
	GetByID(ctx context.Context, id uint) (*models.VideoSession, error)
	GetByToken(ctx context.Context, token string) (*models.VideoSession, error)
	ActiveByConsultation(ctx context.Context, consultationID uint) (*models.VideoSession, error)
	Update(ctx context.Context, session *models.VideoSession) error
	ListByConsultations(ctx context.Context, consultationIDs []uint) ([]models.VideoSession, error)
}

// NotificationRepository owns notifications. MarkReadIfUnread is the
// double-respond guard: it flips is_read atomically and reports whether this
// caller won the flip.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetForUser(ctx context.Context, id, userID uint) (*models.Notification, error)
	List(ctx context.Context, userID uint, unreadOnly bool, page, perPage int) ([]models.Notification, int64, error)
	ListUnreadByType(ctx context.Context, userID uint, notificationType string) ([]models.Notification, error)
	MarkReadIfUnread(ctx context.Context, id, userID uint) (bool, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id, userID uint) error
}

// DiagnosisRepository appends AI triage audit rows.
type DiagnosisRepository interface {
	Create(ctx context.Context, diagnosis *models.Diagnosis) error
}
