package models

import "time"

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
)

type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	IsAnonymous bool     `json:"is_anonymous"`
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AssessmentType string

const (
	AssessmentMental     AssessmentType = "mental"
	AssessmentBehavioral AssessmentType = "behavioral"
)

type Assessment struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      AssessmentType `json:"type"`
	Answers   map[string]int `json:"answers"`
	Result    string         `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

type Diagnosis struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Condition string    `json:"condition"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type Prescription struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	DoctorID     string    `json:"doctor_id"`
	Medication   string    `json:"medication"`
	Dosage       string    `json:"dosage"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
}
