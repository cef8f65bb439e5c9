package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type DoctorService struct {
	store repositories.Store
}

func NewDoctorService(store repositories.Store) *DoctorService {
	return &DoctorService{store: store}
}

// CreateDoctorProfileInput registers a doctor profile for an existing user.
// Admin only; the user account itself comes from the external auth system.
type CreateDoctorProfileInput struct {
	UserID          uint
	Name            string
	Specialization  string
	LicenseNumber   string
	ExperienceYears int
	Phone           string
	Bio             string
}

func (in CreateDoctorProfileInput) validate() error {
	err := validation.Errors{
		"user_id":        validation.Validate(in.UserID, validation.Required),
		"name":           validation.Validate(in.Name, validation.Required, validation.Length(1, 120)),
		"specialization": validation.Validate(in.Specialization, validation.Required, validation.Length(1, 100)),
		"license_number": validation.Validate(in.LicenseNumber, validation.Required, validation.Length(1, 50)),
	}.Filter()
	if err != nil {
		return apperrors.Wrap(err, apperrors.Validation, err.Error())
	}
	return nil
}

// UpdateDoctorProfileInput is a partial update; nil fields are untouched.
type UpdateDoctorProfileInput struct {
	Name            *string
	Specialization  *string
	ExperienceYears *int
	Phone           *string
	Bio             *string
	IsAvailable     *bool
}

// CreateProfile creates the 1:1 doctor profile for a doctor user.
func (s *DoctorService) CreateProfile(ctx context.Context, actor Actor, input CreateDoctorProfileInput) (*models.DoctorProfile, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.New(apperrors.AccessDenied, "admin access required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleDoctor {
		return nil, apperrors.New(apperrors.Validation, "user is not a doctor")
	}

	doctor := &models.DoctorProfile{
		UserID:          user.ID,
		Name:            input.Name,
		Specialization:  input.Specialization,
		LicenseNumber:   input.LicenseNumber,
		ExperienceYears: input.ExperienceYears,
		Phone:           input.Phone,
		Bio:             input.Bio,
		IsAvailable:     true,
	}
	if err := s.store.Doctors().Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// GetOwnProfile returns the acting doctor's profile.
func (s *DoctorService) GetOwnProfile(ctx context.Context, actor Actor) (*models.DoctorProfile, error) {
	return actingDoctor(ctx, s.store, actor)
}

// UpdateOwnProfile applies a partial update to the acting doctor's profile.
// Toggling is_available gates new bookings but never touches in-flight
// consultations.
func (s *DoctorService) UpdateOwnProfile(ctx context.Context, actor Actor, input UpdateDoctorProfileInput) (*models.DoctorProfile, error) {
	doctor, err := actingDoctor(ctx, s.store, actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}
	if input.ExperienceYears != nil {
		doctor.ExperienceYears = *input.ExperienceYears
	}
	if input.Phone != nil {
		doctor.Phone = *input.Phone
	}
	if input.Bio != nil {
		doctor.Bio = *input.Bio
	}
	if input.IsAvailable != nil {
		doctor.IsAvailable = *input.IsAvailable
	}

	if err := s.store.Doctors().Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// GetByID returns a doctor's public card.
func (s *DoctorService) GetByID(ctx context.Context, id uint) (*models.DoctorProfile, error) {
	return s.store.Doctors().GetByID(ctx, id)
}

// ListAvailable returns the bookable doctor directory.
func (s *DoctorService) ListAvailable(ctx context.Context) ([]models.DoctorProfile, error) {
	return s.store.Doctors().ListAvailable(ctx)
}

// ListPatients returns the distinct patients the acting doctor has
// appointments with.
func (s *DoctorService) ListPatients(ctx context.Context, actor Actor) ([]models.PatientProfile, error) {
	doctor, err := actingDoctor(ctx, s.store, actor)
	if err != nil {
		return nil, err
	}
	appointments, err := s.store.Appointments().ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{})
	var patients []models.PatientProfile
	for _, appointment := range appointments {
		if _, ok := seen[appointment.PatientID]; ok {
			continue
		}
		seen[appointment.PatientID] = struct{}{}
		patients = append(patients, appointment.Patient)
	}
	return patients, nil
}
