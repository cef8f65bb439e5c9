package models

import (
	"time"
)

// User roles. Role is fixed at account creation; credential storage and
// token issuance live outside this service.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is the identity record every profile hangs off.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username  string    `gorm:"size:80;not null;unique;index;column:username" json:"username"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Role      string    `gorm:"size:20;check:role IN ('patient', 'doctor', 'admin');not null;column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// DoctorProfile model. The unique index on user_id enforces at most one
// doctor profile per user.
type DoctorProfile struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;uniqueIndex:uidx_doctor_user" json:"user_id"`
	Name            string    `gorm:"size:120;not null;column:name" json:"name"`
	Specialization  string    `gorm:"size:100;not null;column:specialization" json:"specialization"`
	LicenseNumber   string    `gorm:"size:50;unique;column:license_number" json:"license_number"`
	ExperienceYears int       `gorm:"column:experience_years" json:"experience_years"`
	Phone           string    `gorm:"size:20;column:phone" json:"phone"`
	Bio             string    `gorm:"type:text;column:bio" json:"bio"`
	IsAvailable     bool      `gorm:"column:is_available;default:true" json:"is_available"`
	CreatedAt       time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	User            User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profile"
}

// PatientProfile model, 1:1 with its User.
type PatientProfile struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID         uint      `gorm:"column:user_id;not null;uniqueIndex:uidx_patient_user" json:"user_id"`
	Name           string    `gorm:"size:120;not null;column:name" json:"name"`
	DateOfBirth    string    `gorm:"size:10;column:date_of_birth" json:"date_of_birth"`
	Phone          string    `gorm:"size:20;column:phone" json:"phone"`
	Address        string    `gorm:"type:text;column:address" json:"address"`
	MedicalHistory string    `gorm:"type:text;column:medical_history" json:"medical_history"`
	Symptoms       string    `gorm:"type:text;column:symptoms" json:"symptoms"`
	CreatedAt      time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	User           User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (PatientProfile) TableName() string {
	return "patient_profile"
}
