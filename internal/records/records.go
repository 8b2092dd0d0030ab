package records

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bhai/internal/auth"
	"bhai/internal/models"
	"bhai/internal/storage"
)

// PatientDetail is the doctor-facing view of one patient.
type PatientDetail struct {
	Profile       models.User           `json:"profile"`
	Assessments   []models.Assessment   `json:"assessments"`
	Diagnoses     []models.Diagnosis    `json:"diagnoses"`
	Prescriptions []models.Prescription `json:"prescriptions"`
}

// Service exposes the patient registry to doctors.
type Service struct {
	store *storage.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store *storage.Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Patients lists all registered patient-role users.
func (s *Service) Patients(ctx context.Context) []models.User {
	var out []models.User
	for _, a := range s.store.Accounts(ctx) {
		if a.Role == models.RolePatient {
			out = append(out, a.User)
		}
	}
	return out
}

// PatientDetail assembles a patient's profile with their assessments,
// diagnoses and prescriptions.
func (s *Service) PatientDetail(ctx context.Context, patientID string) (PatientDetail, error) {
	var profile models.User
	found := false
	for _, a := range s.store.Accounts(ctx) {
		if a.ID == patientID && a.Role == models.RolePatient {
			profile = a.User
			found = true
			break
		}
	}
	if !found {
		return PatientDetail{}, &auth.ValidationError{Field: "patient_id", Reason: "unknown patient"}
	}
	return PatientDetail{
		Profile:       profile,
		Assessments:   s.store.AssessmentsForUser(ctx, patientID),
		Diagnoses:     s.store.DiagnosesForPatient(ctx, patientID),
		Prescriptions: s.store.PrescriptionsForPatient(ctx, patientID),
	}, nil
}

func (s *Service) AddDiagnosis(ctx context.Context, doctorID, patientID, condition, notes string) (models.Diagnosis, error) {
	if strings.TrimSpace(condition) == "" {
		return models.Diagnosis{}, &auth.ValidationError{Field: "condition", Reason: "must not be empty"}
	}
	d := models.Diagnosis{
		ID:        uuid.NewString(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Condition: condition,
		Notes:     notes,
		CreatedAt: s.now(),
	}
	s.store.SaveDiagnosis(ctx, d)
	s.log.Info("diagnosis recorded", zap.String("patient_id", patientID), zap.String("doctor_id", doctorID))
	return d, nil
}

func (s *Service) AddPrescription(ctx context.Context, doctorID, patientID, medication, dosage, instructions string) (models.Prescription, error) {
	if strings.TrimSpace(medication) == "" {
		return models.Prescription{}, &auth.ValidationError{Field: "medication", Reason: "must not be empty"}
	}
	p := models.Prescription{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		DoctorID:     doctorID,
		Medication:   medication,
		Dosage:       dosage,
		Instructions: instructions,
		CreatedAt:    s.now(),
	}
	s.store.SavePrescription(ctx, p)
	s.log.Info("prescription recorded", zap.String("patient_id", patientID), zap.String("doctor_id", doctorID))
	return p, nil
}
