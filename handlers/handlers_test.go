package handlers_test

import (
	"CareLink/controllers"
	"CareLink/handlers"
	"CareLink/models"
	"CareLink/repositories"
	"CareLink/services"
	"CareLink/utils"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "fedcba9876543210fedcba9876543210"

type testAPI struct {
	router *gin.Engine
	store  *repositories.MemoryStore

	patientToken string
	doctorToken  string

	doctor  *models.DoctorProfile
	patient *models.PatientProfile
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)
	gin.SetMode(gin.TestMode)

	store := repositories.NewMemoryStore()
	patientUser := store.AddUser("ppatel", "ppatel@example.com", models.RolePatient)
	doctorUser := store.AddUser("drchen", "drchen@example.com", models.RoleDoctor)

	patient := &models.PatientProfile{UserID: patientUser.ID, Name: "Priya Patel"}
	require.NoError(t, store.Patients().Create(context.Background(), patient))
	doctor := &models.DoctorProfile{
		UserID:         doctorUser.ID,
		Name:           "Wei Chen",
		Specialization: "General Medicine",
		LicenseNumber:  "LIC-1001",
		IsAvailable:    true,
	}
	require.NoError(t, store.Doctors().Create(context.Background(), doctor))

	router := gin.New()
	controllers.SetupTelehealthRoutes(
		router,
		handlers.NewDoctorHandler(services.NewDoctorService(store)),
		handlers.NewPatientHandler(services.NewPatientService(store), services.NewTriageService(store, nil)),
		handlers.NewAppointmentHandler(services.NewAppointmentService(store)),
		handlers.NewConsultationHandler(services.NewConsultationService(store)),
		handlers.NewVideoHandler(services.NewVideoService(store)),
		handlers.NewNotificationHandler(
			services.NewNotificationService(store),
			services.NewCallRequestService(store, utils.NoopSender{}),
		),
	)

	patientToken, err := utils.GenerateAccessToken(patientUser.ID, models.RolePatient)
	require.NoError(t, err)
	doctorToken, err := utils.GenerateAccessToken(doctorUser.ID, models.RoleDoctor)
	require.NoError(t, err)

	return &testAPI{
		router:       router,
		store:        store,
		patientToken: patientToken,
		doctorToken:  doctorToken,
		doctor:       doctor,
		patient:      patient,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestBookAppointmentEndpoint(t *testing.T) {
	api := newTestAPI(t)
	body := gin.H{
		"doctor_id":      api.doctor.ID,
		"appointment_at": "2026-09-14T10:00:00Z",
		"reason":         "Persistent migraines",
	}

	// Missing token.
	rec := api.do(t, http.MethodPost, "/appointment/book", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPost, "/appointment/book", api.patientToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Same slot again surfaces the conflict.
	rec = api.do(t, http.MethodPost, "/appointment/book", api.patientToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "time slot not available")

	// Malformed timestamp.
	rec = api.do(t, http.MethodPost, "/appointment/book", api.patientToken, gin.H{
		"doctor_id":      api.doctor.ID,
		"appointment_at": "tomorrow-ish",
		"reason":         "checkup",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "RFC3339")
}

func TestDoctorDirectoryEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/doctor/available", api.patientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wei Chen")

	rec = api.do(t, http.MethodGet, "/doctor/999", api.patientToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCallRequestEndpointFlow(t *testing.T) {
	api := newTestAPI(t)

	// Doctors cannot create call requests.
	rec := api.do(t, http.MethodPost, "/notification/call-request", api.doctorToken, gin.H{
		"doctor_id": api.doctor.ID, "call_type": "video",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/notification/call-request", api.patientToken, gin.H{
		"doctor_id": api.doctor.ID, "call_type": "video",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = api.do(t, http.MethodGet, "/notification/call-requests", api.doctorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "call_request")

	respondPath := "/notification/call-request/" + itoa(created.ID) + "/respond"
	rec = api.do(t, http.MethodPost, respondPath, api.doctorToken, gin.H{"decision": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "consultation_id")
	assert.Contains(t, rec.Body.String(), "session_token")

	// Second respond conflicts and provisions nothing more.
	rec = api.do(t, http.MethodPost, respondPath, api.doctorToken, gin.H{"decision": "accepted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, api.store.CountConsultations())
	assert.Equal(t, 1, api.store.CountSessions())
}

func TestConsultationMessagesEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/consultation/start", api.patientToken, gin.H{
		"doctor_id": api.doctor.ID, "consultation_type": "chat",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var consultation models.Consultation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &consultation))

	messagesPath := "/consultation/" + itoa(consultation.ID) + "/messages"
	rec = api.do(t, http.MethodPost, messagesPath, api.patientToken, gin.H{"message": "Hello doctor"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, messagesPath, api.doctorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello doctor")
}

func TestNotificationUnreadCountEndpoint(t *testing.T) {
	api := newTestAPI(t)

	_, err := services.NewCallRequestService(api.store, utils.NoopSender{}).
		Create(context.Background(), services.Actor{UserID: api.patient.UserID, Role: models.RolePatient}, services.CreateCallRequestInput{
			DoctorID: api.doctor.ID,
			CallType: models.CallAudio,
		})
	require.NoError(t, err)

	rec := api.do(t, http.MethodGet, "/notification/unread-count", api.doctorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unread_count":1`)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
