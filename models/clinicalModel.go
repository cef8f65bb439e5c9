package models

import (
	"database/sql/driver"
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Consultation statuses and types.
const (
	ConsultationActive    = "active"
	ConsultationCompleted = "completed"

	ConsultationChat  = "chat"
	ConsultationVideo = "video"
	ConsultationAudio = "audio"
)

// Video session statuses.
const (
	SessionScheduled = "scheduled"
	SessionActive    = "active"
	SessionEnded     = "ended"
)

// Notification types.
const (
	NotificationGeneral      = "general"
	NotificationCallRequest  = "call_request"
	NotificationCallResponse = "call_response"
)

// Call types carried on a call-request notification.
const (
	CallVideo = "video"
	CallAudio = "audio"
	CallText  = "text"
)

// Appointment model. The partial unique index keeps a (doctor, timestamp)
// slot exclusive among non-cancelled rows, so a concurrent double-book loses
// at the storage layer rather than in a read-then-write check.
type Appointment struct {
	ID            uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID     uint           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      uint           `gorm:"column:doctor_id;not null;index;uniqueIndex:uidx_doctor_slot,where:status <> 'cancelled'" json:"doctor_id"`
	AppointmentAt time.Time      `gorm:"column:appointment_at;not null;uniqueIndex:uidx_doctor_slot,where:status <> 'cancelled'" json:"appointment_at"`
	Status        string         `gorm:"size:20;check:status IN ('scheduled', 'completed', 'cancelled');not null;column:status" json:"status"`
	Reason        string         `gorm:"type:text;column:reason" json:"reason"`
	Notes         string         `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Patient       PatientProfile `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor        DoctorProfile  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Consultation model. AppointmentID is set when the consultation was spawned
// from an appointment (directly booked or auto-created by a call request).
type Consultation struct {
	ID               uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID        uint           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID         uint           `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID    *uint          `gorm:"column:appointment_id" json:"appointment_id"`
	StartTime        time.Time      `gorm:"column:start_time;not null" json:"start_time"`
	EndTime          *time.Time     `gorm:"column:end_time" json:"end_time"`
	Status           string         `gorm:"size:20;check:status IN ('active', 'completed');not null;column:status" json:"status"`
	ConsultationType string         `gorm:"size:20;check:consultation_type IN ('chat', 'video', 'audio');not null;column:consultation_type" json:"consultation_type"`
	Diagnosis        string         `gorm:"type:text;column:diagnosis" json:"diagnosis"`
	Prescription     string         `gorm:"type:text;column:prescription" json:"prescription"`
	Notes            string         `gorm:"type:text;column:notes" json:"notes"`
	Patient          PatientProfile `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor           DoctorProfile  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Consultation) TableName() string {
	return "consultation"
}

// Message model, append-only within its consultation.
type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ConsultationID uint      `gorm:"column:consultation_id;not null;index" json:"consultation_id"`
	SenderID       uint      `gorm:"column:sender_id;not null" json:"sender_id"`
	Body           string    `gorm:"type:text;not null;column:body" json:"body"`
	MessageType    string    `gorm:"size:20;not null;column:message_type" json:"message_type"`
	Timestamp      time.Time `gorm:"column:timestamp;not null;index" json:"timestamp"`
}

func (Message) TableName() string {
	return "message"
}

// ParticipantSet is the membership of a video session keyed by user id.
// Stored as a JSON array of ids; set semantics make join idempotent.
type ParticipantSet map[uint]struct{}

// NewParticipantSet builds a set from the given user ids.
func NewParticipantSet(userIDs ...uint) ParticipantSet {
	s := make(ParticipantSet, len(userIDs))
	for _, id := range userIDs {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts a user id, reporting whether the set changed.
func (s ParticipantSet) Add(userID uint) bool {
	if _, ok := s[userID]; ok {
		return false
	}
	s[userID] = struct{}{}
	return true
}

// Contains reports membership of a user id.
func (s ParticipantSet) Contains(userID uint) bool {
	_, ok := s[userID]
	return ok
}

// IDs returns the member ids in ascending order.
func (s ParticipantSet) IDs() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Value implements driver.Valuer.
func (s ParticipantSet) Value() (driver.Value, error) {
	data, err := json.Marshal(s.IDs())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal participant set")
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (s *ParticipantSet) Scan(value interface{}) error {
	if value == nil {
		*s = ParticipantSet{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported participant set type %T", value)
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return errors.Wrap(err, "failed to unmarshal participant set")
	}
	*s = NewParticipantSet(ids...)
	return nil
}

// MarshalJSON renders the set as a sorted id array.
func (s ParticipantSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON accepts an id array.
func (s *ParticipantSet) UnmarshalJSON(data []byte) error {
	var ids []uint
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewParticipantSet(ids...)
	return nil
}

// VideoSession model. The partial unique index allows at most one active
// session per consultation; historical ended sessions accumulate freely.
type VideoSession struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ConsultationID uint           `gorm:"column:consultation_id;not null;index;uniqueIndex:uidx_active_session,where:status = 'active'" json:"consultation_id"`
	SessionToken   string         `gorm:"size:255;not null;unique;column:session_token" json:"session_token"`
	Status         string         `gorm:"size:20;check:status IN ('scheduled', 'active', 'ended');not null;column:status" json:"status"`
	StartTime      *time.Time     `gorm:"column:start_time" json:"start_time"`
	EndTime        *time.Time     `gorm:"column:end_time" json:"end_time"`
	Participants   ParticipantSet `gorm:"type:text;column:participants" json:"participants"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Consultation   Consultation   `gorm:"foreignKey:ConsultationID;references:ID" json:"-"`
}

func (VideoSession) TableName() string {
	return "video_session"
}

// Notification model. CallType is only meaningful for call_request rows;
// RelatedID carries the requesting patient's user id on call_request and the
// responding doctor's user id on call_response.
type Notification struct {
	ID               uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID           uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Title            string    `gorm:"size:255;not null;column:title" json:"title"`
	Message          string    `gorm:"type:text;column:message" json:"message"`
	NotificationType string    `gorm:"size:30;not null;column:notification_type" json:"notification_type"`
	CallType         string    `gorm:"size:20;column:call_type" json:"call_type,omitempty"`
	IsRead           bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	RelatedID        uint      `gorm:"column:related_id" json:"related_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notification"
}

// Diagnosis is the append-only audit row for an AI triage interaction.
type Diagnosis struct {
	ID              uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID       uint           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	ConsultationID  *uint          `gorm:"column:consultation_id" json:"consultation_id"`
	Symptoms        string         `gorm:"type:text;not null;column:symptoms" json:"symptoms"`
	AIDiagnosis     string         `gorm:"type:text;column:ai_diagnosis" json:"ai_diagnosis"`
	Severity        string         `gorm:"size:20;column:severity" json:"severity"`
	Urgent          bool           `gorm:"column:urgent" json:"urgent"`
	ConfidenceScore float64        `gorm:"column:confidence_score" json:"confidence_score"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Patient         PatientProfile `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Diagnosis) TableName() string {
	return "diagnosis"
}
