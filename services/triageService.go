package services

import (
	"CareLink/apperrors"
	"CareLink/models"
	"CareLink/repositories"
	"context"
	"strings"
)

// TriageResult is the classifier's verdict on a symptom description.
type TriageResult struct {
	Diagnosis       string `json:"diagnosis"`
	Severity        string `json:"severity"`
	Recommendations string `json:"recommendations"`
	Urgent          bool   `json:"urgent"`
}

// Classifier turns free-text symptoms into a triage verdict. Pluggable so a
// real model can replace the keyword matcher without touching the service.
type Classifier interface {
	Classify(symptoms string) TriageResult
}

// KeywordClassifier is the built-in rule-based classifier.
type KeywordClassifier struct{}

var (
	emergencyKeywords = []string{
		"chest pain", "difficulty breathing", "severe headache", "unconscious",
		"severe bleeding", "heart attack", "stroke", "poisoning",
	}
	highPriorityKeywords = []string{
		"fever", "high fever", "persistent cough", "abdominal pain",
		"severe pain", "vomiting blood", "blood in stool",
	}
)

func (KeywordClassifier) Classify(symptoms string) TriageResult {
	lower := strings.ToLower(symptoms)

	for _, keyword := range emergencyKeywords {
		if strings.Contains(lower, keyword) {
			return TriageResult{
				Diagnosis:       "Potential emergency condition detected",
				Severity:        "High",
				Recommendations: "Seek immediate medical attention at the nearest emergency room",
				Urgent:          true,
			}
		}
	}
	for _, keyword := range highPriorityKeywords {
		if strings.Contains(lower, keyword) {
			return TriageResult{
				Diagnosis:       "Condition requires medical attention",
				Severity:        "Medium-High",
				Recommendations: "Consult a doctor as soon as possible. Consider a telemedicine consultation.",
			}
		}
	}

	switch {
	case strings.Contains(lower, "headache"):
		return TriageResult{
			Diagnosis:       "Headache - could be tension, migraine, or other causes",
			Severity:        "Low-Medium",
			Recommendations: "Rest, hydrate, consider over-the-counter pain relief. If persistent, consult a doctor.",
		}
	case strings.Contains(lower, "cough"), strings.Contains(lower, "cold"):
		return TriageResult{
			Diagnosis:       "Respiratory symptoms - possible cold or allergy",
			Severity:        "Low",
			Recommendations: "Rest, stay hydrated, consider cough syrup. Monitor symptoms.",
		}
	case strings.Contains(lower, "stomach"), strings.Contains(lower, "nausea"):
		return TriageResult{
			Diagnosis:       "Gastrointestinal discomfort",
			Severity:        "Low-Medium",
			Recommendations: "Avoid heavy foods, stay hydrated. If persistent, consult a doctor.",
		}
	}

	return TriageResult{
		Diagnosis:       "General symptoms detected - monitoring recommended",
		Severity:        "Low",
		Recommendations: "Monitor your symptoms. If they worsen or persist, consult a healthcare professional.",
	}
}

// TriageService runs the classifier for a patient and appends the exchange
// to the diagnosis audit log.
type TriageService struct {
	store      repositories.Store
	classifier Classifier
}

func NewTriageService(store repositories.Store, classifier Classifier) *TriageService {
	if classifier == nil {
		classifier = KeywordClassifier{}
	}
	return &TriageService{store: store, classifier: classifier}
}

// Diagnose classifies the symptoms, records them on the patient profile and
// stores the audit row.
func (s *TriageService) Diagnose(ctx context.Context, actor Actor, symptoms string) (*models.Diagnosis, TriageResult, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, TriageResult{}, apperrors.New(apperrors.Validation, "symptoms are required")
	}

	patient, err := actingPatient(ctx, s.store, actor)
	if err != nil {
		return nil, TriageResult{}, err
	}

	result := s.classifier.Classify(symptoms)

	patient.Symptoms = symptoms
	if err := s.store.Patients().Update(ctx, patient); err != nil {
		return nil, TriageResult{}, err
	}

	diagnosis := &models.Diagnosis{
		PatientID:   patient.ID,
		Symptoms:    symptoms,
		AIDiagnosis: result.Diagnosis,
		Severity:    result.Severity,
		Urgent:      result.Urgent,
	}
	if err := s.store.Diagnoses().Create(ctx, diagnosis); err != nil {
		return nil, TriageResult{}, err
	}
	return diagnosis, result, nil
}
