package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bhai/internal/auth"
	"bhai/internal/dashboard"
	"bhai/internal/http/handlers"
	"bhai/internal/llm"
	"bhai/internal/records"
	"bhai/internal/storage"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string]string)} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

// fakeLLM satisfies llm.Client without any network.
type fakeLLM struct {
	completeErr error
	analyzeErr  error
}

func (f *fakeLLM) Complete(_ context.Context, history []llm.Message, _ string) (string, error) {
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return "assistant reply", nil
}

func (f *fakeLLM) Analyze(_ context.Context, kind string, _ map[string]int) (string, error) {
	if f.analyzeErr != nil {
		return "", f.analyzeErr
	}
	return "analysis for " + kind, nil
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T, client llm.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewStore(newFakeKV(), zap.NewNop())
	authSvc := auth.NewService(store, zap.NewNop())
	recordsSvc := records.NewService(store, zap.NewNop())
	agg := dashboard.NewAggregator(store)
	return handlers.NewRouter(store, authSvc, recordsSvc, agg, client, testSecret, zap.NewNop())
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email, role string) (userID, token string) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Test User", "email": email, "password": "secret1", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		User  struct{ ID string }
		Token string
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})
	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})

	// short password rejected
	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "A", "email": "a@b.com", "password": "12345", "role": "patient",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	_, token := registerUser(t, r, "a@b.com", "patient")

	// me resolves via token
	w = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// bad credentials
	w = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@b.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// good credentials
	w = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@b.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	// anonymous always works
	w = do(t, r, http.MethodPost, "/api/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// no token -> 401
	w = do(t, r, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatFlow(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})
	_, token := registerUser(t, r, "chat@b.com", "patient")

	w := do(t, r, http.MethodPost, "/api/chat", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Conversation struct{ ID string }
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	convID := created.Conversation.ID

	// empty message is rejected without touching the conversation
	w = do(t, r, http.MethodPost, "/api/chat/"+convID+"/messages", token, gin.H{"content": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/chat/"+convID+"/messages", token, gin.H{"content": "hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sent struct {
		Conversation struct {
			Messages []struct{ Sender string }
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	require.Len(t, sent.Conversation.Messages, 2)

	w = do(t, r, http.MethodGet, "/api/chat/"+convID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// clear mints a new conversation, old stays readable
	w = do(t, r, http.MethodPost, "/api/chat/"+convID+"/clear", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared struct {
		Conversation struct{ ID string }
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cleared))
	require.NotEqual(t, convID, cleared.Conversation.ID)
	w = do(t, r, http.MethodGet, "/api/chat/"+convID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// another user cannot read it
	_, other := registerUser(t, r, "other@b.com", "patient")
	w = do(t, r, http.MethodGet, "/api/chat/"+convID, other, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestConversationHistory(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})
	_, token := registerUser(t, r, "hist@b.com", "patient")

	newConv := func() string {
		w := do(t, r, http.MethodPost, "/api/chat", token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		var created struct {
			Conversation struct{ ID string }
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		return created.Conversation.ID
	}
	listIDs := func() []string {
		w := do(t, r, http.MethodGet, "/api/chat", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Conversations []struct{ ID string }
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids := make([]string, 0, len(resp.Conversations))
		for _, c := range resp.Conversations {
			ids = append(ids, c.ID)
		}
		return ids
	}

	first := newConv()
	second := newConv()

	// sending a message bumps the first conversation to the top
	w := do(t, r, http.MethodPost, "/api/chat/"+first+"/messages", token, gin.H{"content": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{first, second}, listIDs())

	// a cleared conversation stays discoverable through the history
	w = do(t, r, http.MethodPost, "/api/chat/"+first+"/clear", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, listIDs(), first)
	require.Len(t, listIDs(), 3)

	// other users see their own empty history
	_, other := registerUser(t, r, "hist2@b.com", "patient")
	w = do(t, r, http.MethodGet, "/api/chat", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var otherResp struct {
		Conversations []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &otherResp))
	require.NotNil(t, otherResp.Conversations)
	require.Empty(t, otherResp.Conversations)
}

func TestChatCompletionFailure(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{completeErr: errors.New("down")})
	_, token := registerUser(t, r, "chat2@b.com", "patient")

	w := do(t, r, http.MethodPost, "/api/chat", token, nil)
	var created struct {
		Conversation struct{ ID string }
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, r, http.MethodPost, "/api/chat/"+created.Conversation.ID+"/messages", token, gin.H{"content": "hello"})
	require.Equal(t, http.StatusBadGateway, w.Code)
	var failed struct {
		Conversation struct {
			Messages []struct{ Sender string }
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failed))
	require.Len(t, failed.Conversation.Messages, 1, "user message must survive")
	require.Equal(t, "user", failed.Conversation.Messages[0].Sender)
}

func fullAnswers(prefix string) map[string]int {
	answers := make(map[string]int, 15)
	for i := 1; i <= 15; i++ {
		answers[fmt.Sprintf("%s%d", prefix, i)] = i % 2
	}
	return answers
}

func TestAssessmentFlow(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})
	_, token := registerUser(t, r, "assess@b.com", "patient")

	w := do(t, r, http.MethodGet, "/api/assessments/questions/mental", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/assessments/questions/bogus", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// incomplete map rejected
	w = do(t, r, http.MethodPost, "/api/assessments/mental", token, gin.H{"answers": gin.H{"q1": 1}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown key rejected
	bad := fullAnswers("q")
	bad["zz"] = 1
	w = do(t, r, http.MethodPost, "/api/assessments/mental", token, gin.H{"answers": bad})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/assessments/mental", token, gin.H{"answers": fullAnswers("q")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Assessment struct {
			Type   string
			Result string
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "mental", resp.Assessment.Type)
	require.Equal(t, "analysis for mental", resp.Assessment.Result)

	// the dashboard now shows one mental point and no behavioral data
	w = do(t, r, http.MethodGet, "/api/dashboard/trends", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trends struct {
		Mental struct {
			HasData bool `json:"has_data"`
			Points  []struct{ Score float64 }
		}
		Behavioral struct {
			HasData bool `json:"has_data"`
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trends))
	require.True(t, trends.Mental.HasData)
	require.Len(t, trends.Mental.Points, 1)
	require.False(t, trends.Behavioral.HasData)
}

func TestAssessmentAnalysisFailureIsNotPersisted(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{analyzeErr: errors.New("down")})
	_, token := registerUser(t, r, "assess2@b.com", "patient")

	w := do(t, r, http.MethodPost, "/api/assessments/mental", token, gin.H{"answers": fullAnswers("q")})
	require.Equal(t, http.StatusBadGateway, w.Code)

	w = do(t, r, http.MethodGet, "/api/dashboard/assessments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Assessments []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Assessments)
}

func TestDoctorRoutesRequireDoctorRole(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})
	patientID, patientToken := registerUser(t, r, "pat@b.com", "patient")
	_, doctorToken := registerUser(t, r, "doc@b.com", "doctor")

	w := do(t, r, http.MethodGet, "/api/patients", patientToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodGet, "/api/patients", doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/patients/"+patientID+"/diagnoses", doctorToken, gin.H{
		"condition": "Mild anxiety", "notes": "check in next month",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/api/patients/"+patientID, doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/patients/"+patientID+"/prescriptions", doctorToken, gin.H{
		"medication": "Sertraline", "dosage": "50mg", "instructions": "once daily",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestResourcesArePublic(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{})

	w := do(t, r, http.MethodGet, "/api/resources", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/resources/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/resources/99", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
