package repositories

import (
	"CareLink/apperrors"
	"CareLink/cache"
	"context"
	"errors"

	"gorm.io/gorm"
)

// gormStore is the Postgres-backed Store. The cache is optional; repositories
// skip cache-aside reads when it is nil (tests, transactional sub-stores).
type gormStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewStore builds the Postgres-backed Store.
func NewStore(db *gorm.DB, c *cache.Cache) Store {
	return &gormStore{db: db, cache: c}
}

func (s *gormStore) Users() UserRepository { return &userRepository{db: s.db} }
func (s *gormStore) Doctors() DoctorRepository {
	return &doctorRepository{db: s.db, cache: s.cache}
}
func (s *gormStore) Patients() PatientRepository { return &patientRepository{db: s.db} }
func (s *gormStore) Appointments() AppointmentRepository {
	return &appointmentRepository{db: s.db}
}
func (s *gormStore) Consultations() ConsultationRepository {
	return &consultationRepository{db: s.db}
}
func (s *gormStore) Messages() MessageRepository { return &messageRepository{db: s.db} }
func (s *gormStore) VideoSessions() VideoSessionRepository {
	return &videoSessionRepository{db: s.db}
}
func (s *gormStore) Notifications() NotificationRepository {
	return &notificationRepository{db: s.db, cache: s.cache}
}
func (s *gormStore) Diagnoses() DiagnosisRepository { return &diagnosisRepository{db: s.db} }

// InTx binds a sub-store to one transaction. Typed errors returned by fn
// roll the transaction back and propagate unchanged.
func (s *gormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, cache: s.cache})
	})
}

// wrapDBErr maps gorm failures onto the error taxonomy. Requires
// TranslateError on the gorm config so unique violations arrive as
// gorm.ErrDuplicatedKey.
func wrapDBErr(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.New(apperrors.NotFound, notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.New(apperrors.Conflict, conflictMsg)
	default:
		return apperrors.Storage(err, "storage request failed")
	}
}
