package repositories

import (
	"CareLink/apperrors"
	"CareLink/models"
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with the same conflict semantics as the
// Postgres implementation (slot exclusivity, one active session per
// consultation, one profile per user). It backs the test suites so services
// and handlers can be exercised without Postgres or Redis.
type MemoryStore struct {
	mu sync.Mutex

	users         map[uint]*models.User
	doctors       map[uint]*models.DoctorProfile
	patients      map[uint]*models.PatientProfile
	appointments  map[uint]*models.Appointment
	consultations map[uint]*models.Consultation
	messages      map[uint]*models.Message
	sessions      map[uint]*models.VideoSession
	notifications map[uint]*models.Notification
	diagnoses     map[uint]*models.Diagnosis

	nextID map[string]uint
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uint]*models.User),
		doctors:       make(map[uint]*models.DoctorProfile),
		patients:      make(map[uint]*models.PatientProfile),
		appointments:  make(map[uint]*models.Appointment),
		consultations: make(map[uint]*models.Consultation),
		messages:      make(map[uint]*models.Message),
		sessions:      make(map[uint]*models.VideoSession),
		notifications: make(map[uint]*models.Notification),
		diagnoses:     make(map[uint]*models.Diagnosis),
		nextID:        make(map[string]uint),
	}
}

func (m *MemoryStore) id(table string) uint {
	m.nextID[table]++
	return m.nextID[table]
}

// AddUser seeds an identity record and returns it.
func (m *MemoryStore) AddUser(username, email, role string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := &models.User{ID: m.id("users"), Username: username, Email: email, Role: role, CreatedAt: time.Now()}
	m.users[user.ID] = user
	return user
}

func (m *MemoryStore) Users() UserRepository                 { return (*memUsers)(m) }
func (m *MemoryStore) Doctors() DoctorRepository             { return (*memDoctors)(m) }
func (m *MemoryStore) Patients() PatientRepository           { return (*memPatients)(m) }
func (m *MemoryStore) Appointments() AppointmentRepository   { return (*memAppointments)(m) }
func (m *MemoryStore) Consultations() ConsultationRepository { return (*memConsultations)(m) }
func (m *MemoryStore) Messages() MessageRepository           { return (*memMessages)(m) }
func (m *MemoryStore) VideoSessions() VideoSessionRepository { return (*memSessions)(m) }
func (m *MemoryStore) Notifications() NotificationRepository { return (*memNotifications)(m) }
func (m *MemoryStore) Diagnoses() DiagnosisRepository        { return (*memDiagnoses)(m) }

// InTx runs fn against the same store. Per-operation locking keeps the data
// consistent; rollback fidelity is not modeled.
func (m *MemoryStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(m)
}

// CountAppointments reports the number of stored appointments.
func (m *MemoryStore) CountAppointments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

// CountConsultations reports the number of stored consultations.
func (m *MemoryStore) CountConsultations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.consultations)
}

// CountSessions reports the number of stored video sessions.
func (m *MemoryStore) CountSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type memUsers MemoryStore

func (m *memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "user not found")
	}
	u := *user
	return &u, nil
}

type memDoctors MemoryStore

func (m *memDoctors) Create(_ context.Context, doctor *models.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.doctors {
		if d.UserID == doctor.UserID {
			return apperrors.New(apperrors.Conflict, "doctor profile already exists for user")
		}
	}
	doctor.ID = (*MemoryStore)(m).id("doctors")
	doctor.CreatedAt = time.Now()
	cp := *doctor
	m.doctors[doctor.ID] = &cp
	return nil
}

func (m *memDoctors) GetByID(_ context.Context, id uint) (*models.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor, ok := m.doctors[id]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "doctor not found")
	}
	d := *doctor
	return &d, nil
}

func (m *memDoctors) GetByUserID(_ context.Context, userID uint) (*models.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doctor := range m.doctors {
		if doctor.UserID == userID {
			d := *doctor
			return &d, nil
		}
	}
	return nil, apperrors.New(apperrors.NotFound, "doctor profile not found")
}

func (m *memDoctors) Update(_ context.Context, doctor *models.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[doctor.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "doctor not found")
	}
	cp := *doctor
	m.doctors[doctor.ID] = &cp
	return nil
}

func (m *memDoctors) ListAvailable(_ context.Context) ([]models.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var doctors []models.DoctorProfile
	for _, doctor := range m.doctors {
		if doctor.IsAvailable {
			doctors = append(doctors, *doctor)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

type memPatients MemoryStore

func (m *memPatients) Create(_ context.Context, patient *models.PatientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.UserID == patient.UserID {
			return apperrors.New(apperrors.Conflict, "patient profile already exists for user")
		}
	}
	patient.ID = (*MemoryStore)(m).id("patients")
	patient.CreatedAt = time.Now()
	cp := *patient
	m.patients[patient.ID] = &cp
	return nil
}

func (m *memPatients) GetByID(_ context.Context, id uint) (*models.PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	patient, ok := m.patients[id]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "patient not found")
	}
	p := *patient
	return &p, nil
}

func (m *memPatients) GetByUserID(_ context.Context, userID uint) (*models.PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, patient := range m.patients {
		if patient.UserID == userID {
			p := *patient
			return &p, nil
		}
	}
	return nil, apperrors.New(apperrors.NotFound, "patient profile not found")
}

func (m *memPatients) Update(_ context.Context, patient *models.PatientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[patient.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "patient not found")
	}
	cp := *patient
	m.patients[patient.ID] = &cp
	return nil
}

type memAppointments MemoryStore

func (m *memAppointments) Create(_ context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appointments {
		if a.DoctorID == appointment.DoctorID &&
			a.AppointmentAt.Equal(appointment.AppointmentAt) &&
			a.Status != models.AppointmentCancelled {
			return apperrors.New(apperrors.Conflict, "time slot not available")
		}
	}
	appointment.ID = (*MemoryStore)(m).id("appointments")
	appointment.CreatedAt = time.Now()
	cp := *appointment
	m.appointments[appointment.ID] = &cp
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "appointment not found")
	}
	a := *appointment
	if patient, ok := m.patients[a.PatientID]; ok {
		a.Patient = *patient
	}
	if doctor, ok := m.doctors[a.DoctorID]; ok {
		a.Doctor = *doctor
	}
	return &a, nil
}

func (m *memAppointments) Update(_ context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[appointment.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "appointment not found")
	}
	cp := *appointment
	m.appointments[appointment.ID] = &cp
	return nil
}

func (m *memAppointments) ListByPatient(_ context.Context, patientID uint) ([]models.Appointment, error) {
	return m.list(func(a *models.Appointment) bool { return a.PatientID == patientID })
}

func (m *memAppointments) ListByDoctor(_ context.Context, doctorID uint) ([]models.Appointment, error) {
	return m.list(func(a *models.Appointment) bool { return a.DoctorID == doctorID })
}

func (m *memAppointments) list(match func(*models.Appointment) bool) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var appointments []models.Appointment
	for _, appointment := range m.appointments {
		if match(appointment) {
			a := *appointment
			if doctor, ok := m.doctors[a.DoctorID]; ok {
				a.Doctor = *doctor
			}
			if patient, ok := m.patients[a.PatientID]; ok {
				a.Patient = *patient
			}
			appointments = append(appointments, a)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].AppointmentAt.After(appointments[j].AppointmentAt)
	})
	return appointments, nil
}

func (m *memAppointments) FirstByPair(_ context.Context, doctorID, patientID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldest *models.Appointment
	for _, appointment := range m.appointments {
		if appointment.DoctorID != doctorID || appointment.PatientID != patientID {
			continue
		}
		if oldest == nil || appointment.ID < oldest.ID {
			oldest = appointment
		}
	}
	if oldest == nil {
		return nil, apperrors.New(apperrors.NotFound, "appointment not found")
	}
	a := *oldest
	return &a, nil
}

func (m *memAppointments) SlotTaken(_ context.Context, doctorID uint, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.AppointmentAt.Equal(at) && a.Status != models.AppointmentCancelled {
			return true, nil
		}
	}
	return false, nil
}

type memConsultations MemoryStore

func (m *memConsultations) Create(_ context.Context, consultation *models.Consultation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	consultation.ID = (*MemoryStore)(m).id("consultations")
	cp := *consultation
	m.consultations[consultation.ID] = &cp
	return nil
}

func (m *memConsultations) GetByID(_ context.Context, id uint) (*models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	consultation, ok := m.consultations[id]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "consultation not found")
	}
	c := *consultation
	if patient, ok := m.patients[c.PatientID]; ok {
		c.Patient = *patient
	}
	if doctor, ok := m.doctors[c.DoctorID]; ok {
		c.Doctor = *doctor
	}
	return &c, nil
}

func (m *memConsultations) Update(_ context.Context, consultation *models.Consultation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.consultations[consultation.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "consultation not found")
	}
	cp := *consultation
	m.consultations[consultation.ID] = &cp
	return nil
}

func (m *memConsultations) ListByPatient(_ context.Context, patientID uint, onlyActive bool) ([]models.Consultation, error) {
	return m.list(func(c *models.Consultation) bool { return c.PatientID == patientID }, onlyActive)
}

func (m *memConsultations) ListByDoctor(_ context.Context, doctorID uint, onlyActive bool) ([]models.Consultation, error) {
	return m.list(func(c *models.Consultation) bool { return c.DoctorID == doctorID }, onlyActive)
}

func (m *memConsultations) list(match func(*models.Consultation) bool, onlyActive bool) ([]models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var consultations []models.Consultation
	for _, consultation := range m.consultations {
		if !match(consultation) {
			continue
		}
		if onlyActive && consultation.Status != models.ConsultationActive {
			continue
		}
		c := *consultation
		if patient, ok := m.patients[c.PatientID]; ok {
			c.Patient = *patient
		}
		if doctor, ok := m.doctors[c.DoctorID]; ok {
			c.Doctor = *doctor
		}
		consultations = append(consultations, c)
	}
	sort.Slice(consultations, func(i, j int) bool {
		return consultations[i].StartTime.After(consultations[j].StartTime)
	})
	return consultations, nil
}

type memMessages MemoryStore

func (m *memMessages) Create(_ context.Context, message *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	message.ID = (*MemoryStore)(m).id("messages")
	cp := *message
	m.messages[message.ID] = &cp
	return nil
}

func (m *memMessages) ListByConsultation(_ context.Context, consultationID uint) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var messages []models.Message
	for _, message := range m.messages {
		if message.ConsultationID == consultationID {
			messages = append(messages, *message)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

type memSessions MemoryStore

func (m *memSessions) Create(_ context.Context, session *models.VideoSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session.Status == models.SessionActive {
		for _, s := range m.sessions {
			if s.ConsultationID == session.ConsultationID && s.Status == models.SessionActive {
				return apperrors.New(apperrors.Conflict, "an active session already exists for this consultation")
			}
		}
	}
	session.ID = (*MemoryStore)(m).id("sessions")
	session.CreatedAt = time.Now()
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memSessions) GetByID(_ context.Context, id uint) (*models.VideoSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "session not found")
	}
	s := *session
	return &s, nil
}

func (m *memSessions) GetByToken(_ context.Context, token string) (*models.VideoSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.SessionToken == token {
			s := *session
			return &s, nil
		}
	}
	return nil, apperrors.New(apperrors.NotFound, "session not found")
}

func (m *memSessions) ActiveByConsultation(_ context.Context, consultationID uint) (*models.VideoSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.ConsultationID == consultationID && session.Status == models.SessionActive {
			s := *session
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memSessions) Update(_ context.Context, session *models.VideoSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "session not found")
	}
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memSessions) ListByConsultations(_ context.Context, consultationIDs []uint) ([]models.VideoSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[uint]struct{}, len(consultationIDs))
	for _, id := range consultationIDs {
		wanted[id] = struct{}{}
	}
	var sessions []models.VideoSession
	for _, session := range m.sessions {
		if _, ok := wanted[session.ConsultationID]; ok {
			sessions = append(sessions, *session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID > sessions[j].ID })
	return sessions, nil
}

type memNotifications MemoryStore

func (m *memNotifications) Create(_ context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification.ID = (*MemoryStore)(m).id("notifications")
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	cp := *notification
	m.notifications[notification.ID] = &cp
	return nil
}

func (m *memNotifications) GetForUser(_ context.Context, id, userID uint) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[id]
	if !ok || notification.UserID != userID {
		return nil, apperrors.New(apperrors.NotFound, "notification not found")
	}
	n := *notification
	return &n, nil
}

func (m *memNotifications) List(_ context.Context, userID uint, unreadOnly bool, page, perPage int) ([]models.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Notification
	for _, notification := range m.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		all = append(all, *notification)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	start := (page - 1) * perPage
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memNotifications) ListUnreadByType(_ context.Context, userID uint, notificationType string) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var notifications []models.Notification
	for _, notification := range m.notifications {
		if notification.UserID == userID && notification.NotificationType == notificationType && !notification.IsRead {
			notifications = append(notifications, *notification)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID > notifications[j].ID
		}
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (m *memNotifications) MarkReadIfUnread(_ context.Context, id, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[id]
	if !ok || notification.UserID != userID || notification.IsRead {
		return false, nil
	}
	notification.IsRead = true
	return true, nil
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, notification := range m.notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) UnreadCount(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, notification := range m.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) Delete(_ context.Context, id, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[id]
	if !ok || notification.UserID != userID {
		return apperrors.New(apperrors.NotFound, "notification not found")
	}
	delete(m.notifications, id)
	return nil
}

type memDiagnoses MemoryStore

func (m *memDiagnoses) Create(_ context.Context, diagnosis *models.Diagnosis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	diagnosis.ID = (*MemoryStore)(m).id("diagnoses")
	diagnosis.CreatedAt = time.Now()
	cp := *diagnosis
	m.diagnoses[diagnosis.ID] = &cp
	return nil
}
