package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bhai/internal/models"
	"bhai/internal/storage"
)

type State string

const (
	StateCollecting State = "collecting"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Analyzer turns a completed answer map into a narrative result.
type Analyzer interface {
	Analyze(ctx context.Context, kind string, answers map[string]int) (string, error)
}

var (
	ErrNotCollecting  = errors.New("session is not collecting answers")
	ErrUnanswered     = errors.New("current question has no recorded answer")
	ErrUnknownOption  = errors.New("answer code is not one of the question's options")
	ErrNotSubmittable = errors.New("session cannot be submitted in its current state")
)

// Session walks the fixed question bank for one assessment type, collects
// integer-coded answers and submits them for analysis. Steps are 1-based.
// A failed submit leaves the answers intact; Submit may be called again.
type Session struct {
	store    *storage.Store
	analyzer Analyzer
	log      *zap.Logger
	now      func() time.Time

	userID    string
	typ       models.AssessmentType
	questions []Question

	state   State
	step    int
	answers map[string]int
	result  string
	lastErr error
}

func NewSession(store *storage.Store, analyzer Analyzer, log *zap.Logger, userID string, typ models.AssessmentType) (*Session, error) {
	qs := Questions(typ)
	if qs == nil {
		return nil, fmt.Errorf("unknown assessment type %q", typ)
	}
	return &Session{
		store:     store,
		analyzer:  analyzer,
		log:       log,
		now:       time.Now,
		userID:    userID,
		typ:       typ,
		questions: qs,
		state:     StateCollecting,
		step:      1,
		answers:   make(map[string]int),
	}, nil
}

func (s *Session) State() State { return s.state }
func (s *Session) Step() int    { return s.step }
func (s *Session) Type() models.AssessmentType {
	return s.typ
}

func (s *Session) CurrentQuestion() Question {
	return s.questions[s.step-1]
}

// Answers returns a copy of the recorded answer map.
func (s *Session) Answers() map[string]int {
	out := make(map[string]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// RecordAnswer stores an answer for the current question. Only valid while
// collecting, and only for codes offered by the question.
func (s *Session) RecordAnswer(questionID string, code int) error {
	if s.state != StateCollecting {
		return ErrNotCollecting
	}
	q := s.CurrentQuestion()
	if q.ID != questionID {
		return fmt.Errorf("question %q is not the current step", questionID)
	}
	for _, opt := range q.Options {
		if opt.Code == code {
			s.answers[questionID] = code
			return nil
		}
	}
	return ErrUnknownOption
}

// Next advances one step. The current question must have a recorded answer.
func (s *Session) Next() error {
	if s.state != StateCollecting {
		return ErrNotCollecting
	}
	if _, ok := s.answers[s.CurrentQuestion().ID]; !ok {
		return ErrUnanswered
	}
	if s.step < len(s.questions) {
		s.step++
	}
	return nil
}

// Prev moves one step back. No precondition.
func (s *Session) Prev() {
	if s.state == StateCollecting && s.step > 1 {
		s.step--
	}
}

// Submit sends the full answer map to the analyzer and, on success, persists
// exactly one Assessment record. On analyzer failure the session moves to
// failed, nothing is persisted, and Submit may be retried.
func (s *Session) Submit(ctx context.Context) (models.Assessment, error) {
	if s.state != StateCollecting && s.state != StateFailed {
		return models.Assessment{}, ErrNotSubmittable
	}
	if _, ok := s.answers[s.CurrentQuestion().ID]; !ok {
		return models.Assessment{}, ErrUnanswered
	}
	s.state = StateSubmitting

	result, err := s.analyzer.Analyze(ctx, string(s.typ), s.Answers())
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.log.Error("assessment analysis failed",
			zap.String("user_id", s.userID),
			zap.String("type", string(s.typ)),
			zap.Error(err),
		)
		return models.Assessment{}, fmt.Errorf("analyze assessment: %w", err)
	}
	if result == "" {
		// The collaborator answered but gave nothing usable; fall back to a
		// generic recommendation rather than storing an empty result.
		result = "Your assessment has been received. We recommend discussing these results with a healthcare professional."
	}

	record := models.Assessment{
		ID:        uuid.NewString(),
		UserID:    s.userID,
		Type:      s.typ,
		Answers:   s.Answers(),
		Result:    result,
		CreatedAt: s.now(),
	}
	s.store.SaveAssessment(ctx, record)

	s.state = StateCompleted
	s.result = result
	s.lastErr = nil
	s.log.Info("assessment completed",
		zap.String("user_id", s.userID),
		zap.String("type", string(s.typ)),
		zap.String("assessment_id", record.ID),
	)
	return record, nil
}

// Result is the narrative produced by a completed submit.
func (s *Session) Result() string { return s.result }

// Err is the error from the most recent failed submit, if any.
func (s *Session) Err() error { return s.lastErr }
