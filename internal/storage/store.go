package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"bhai/internal/models"
)

// Collection keys. One JSON document per collection, matching the
// single-slot / list-of-records split of the client storage this replaces.
const (
	keyCurrentUser   = "bhai:user"
	keyAccounts      = "bhai:accounts"
	keyConversations = "bhai:conversations"
	keyAssessments   = "bhai:assessments"
	keyDiagnoses     = "bhai:diagnoses"
	keyPrescriptions = "bhai:prescriptions"
)

// Account is a registered user plus its credential hash. The hash never
// leaves this package embedded in a models.User.
type Account struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// Store is the collection layer over a KV backend. It upserts by record
// identifier and lists in insertion order. The store is a best-effort cache:
// read failures degrade to empty data and write failures are dropped, both
// logged, never surfaced to callers.
type Store struct {
	kv  KV
	log *zap.Logger
	mu  sync.Mutex
}

func NewStore(kv KV, log *zap.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Current user slot.

func (s *Store) SaveCurrentUser(ctx context.Context, u models.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		s.log.Error("marshal current user", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, keyCurrentUser, string(raw)); err != nil {
		s.log.Warn("save current user", zap.Error(err))
	}
}

func (s *Store) CurrentUser(ctx context.Context) (models.User, bool) {
	raw, err := s.kv.Get(ctx, keyCurrentUser)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("read current user", zap.Error(err))
		}
		return models.User{}, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("malformed current user record", zap.Error(err))
		return models.User{}, false
	}
	return u, true
}

func (s *Store) ClearCurrentUser(ctx context.Context) {
	if err := s.kv.Delete(ctx, keyCurrentUser); err != nil {
		s.log.Warn("clear current user", zap.Error(err))
	}
}

// Accounts.

func (s *Store) SaveAccount(ctx context.Context, a Account) {
	upsert(s, ctx, keyAccounts, a, func(x Account) string { return x.ID })
}

func (s *Store) Accounts(ctx context.Context) []Account {
	return loadList[Account](s, ctx, keyAccounts)
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (Account, bool) {
	for _, a := range s.Accounts(ctx) {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return Account{}, false
}

// Conversations.

func (s *Store) SaveConversation(ctx context.Context, c models.Conversation) {
	upsert(s, ctx, keyConversations, c, func(x models.Conversation) string { return x.ID })
}

func (s *Store) Conversations(ctx context.Context) []models.Conversation {
	return loadList[models.Conversation](s, ctx, keyConversations)
}

// ConversationsForUser lists one user's conversations, most recently
// updated first.
func (s *Store) ConversationsForUser(ctx context.Context, userID string) []models.Conversation {
	var out []models.Conversation
	for _, c := range s.Conversations(ctx) {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (s *Store) ConversationByID(ctx context.Context, id string) (models.Conversation, bool) {
	for _, c := range s.Conversations(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return models.Conversation{}, false
}

// Assessments.

func (s *Store) SaveAssessment(ctx context.Context, a models.Assessment) {
	upsert(s, ctx, keyAssessments, a, func(x models.Assessment) string { return x.ID })
}

func (s *Store) Assessments(ctx context.Context) []models.Assessment {
	return loadList[models.Assessment](s, ctx, keyAssessments)
}

func (s *Store) AssessmentsForUser(ctx context.Context, userID string) []models.Assessment {
	var out []models.Assessment
	for _, a := range s.Assessments(ctx) {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

// Doctor records.

func (s *Store) SaveDiagnosis(ctx context.Context, d models.Diagnosis) {
	upsert(s, ctx, keyDiagnoses, d, func(x models.Diagnosis) string { return x.ID })
}

func (s *Store) DiagnosesForPatient(ctx context.Context, patientID string) []models.Diagnosis {
	var out []models.Diagnosis
	for _, d := range loadList[models.Diagnosis](s, ctx, keyDiagnoses) {
		if d.PatientID == patientID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) SavePrescription(ctx context.Context, p models.Prescription) {
	upsert(s, ctx, keyPrescriptions, p, func(x models.Prescription) string { return x.ID })
}

func (s *Store) PrescriptionsForPatient(ctx context.Context, patientID string) []models.Prescription {
	var out []models.Prescription
	for _, p := range loadList[models.Prescription](s, ctx, keyPrescriptions) {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out
}

// upsert replaces the record with a matching identifier or appends it.
// The store mutex serializes read-modify-write cycles within this process;
// concurrent writers through another process remain last-write-wins.
func upsert[T any](s *Store, ctx context.Context, key string, rec T, id func(T) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := loadList[T](s, ctx, key)
	replaced := false
	for i := range list {
		if id(list[i]) == id(rec) {
			list[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, rec)
	}
	raw, err := json.Marshal(list)
	if err != nil {
		s.log.Error("marshal collection", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.log.Warn("write collection", zap.String("key", key), zap.Error(err))
	}
}

func loadList[T any](s *Store, ctx context.Context, key string) []T {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("read collection", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		// malformed -> start fresh
		s.log.Warn("malformed collection", zap.String("key", key), zap.Error(err))
		return nil
	}
	return out
}
