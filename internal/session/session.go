// Package session keeps per-user wizard state in process memory. Sessions
// are ephemeral: they expire after a TTL and are lost on restart, which
// abandons any in-flight wizard.
package session

import (
	"sync"
	"time"

	"dialoguebot/internal/models"
)

// AnnotationState points at the row a user is currently annotating.
type AnnotationState struct {
	RowIndex   int
	DialogueID string
	Step       models.AnnotationField // next field to collect
}

// ReviewState points at the row a user is currently reviewing.
type ReviewState struct {
	RowIndex        int
	DialogueID      string
	AwaitingComment bool
}

type userSession struct {
	expectingSubmission bool
	annotation          *AnnotationState
	review              *ReviewState
	touched             time.Time
}

// Store is a mutex-guarded map of user id to session, with lazy TTL
// expiry on access.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]*userSession
	now      func() time.Time
}

// NewStore creates a session store. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[int64]*userSession),
		now:      time.Now,
	}
}

// get returns the live session for userID, dropping it first if expired.
// Callers must hold s.mu.
func (s *Store) get(userID int64) *userSession {
	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(sess.touched) > s.ttl {
		delete(s.sessions, userID)
		return nil
	}
	return sess
}

// getOrCreate also refreshes the touched timestamp. Callers must hold s.mu.
func (s *Store) getOrCreate(userID int64) *userSession {
	sess := s.get(userID)
	if sess == nil {
		sess = &userSession{}
		s.sessions[userID] = sess
	}
	sess.touched = s.now()
	return sess
}

func (s *Store) SetExpectingSubmission(userID int64, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(userID).expectingSubmission = v
}

func (s *Store) ExpectingSubmission(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	return sess != nil && sess.expectingSubmission
}

func (s *Store) StartAnnotation(userID int64, st AnnotationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(userID).annotation = &st
}

// Annotation returns a copy of the user's annotation state, or nil when no
// annotation wizard is in progress.
func (s *Store) Annotation(userID int64) *AnnotationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	if sess == nil || sess.annotation == nil {
		return nil
	}
	sess.touched = s.now()
	st := *sess.annotation
	return &st
}

func (s *Store) AdvanceAnnotation(userID int64, step models.AnnotationField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	if sess == nil || sess.annotation == nil {
		return
	}
	sess.touched = s.now()
	sess.annotation.Step = step
}

func (s *Store) ClearAnnotation(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.get(userID); sess != nil {
		sess.annotation = nil
	}
}

func (s *Store) StartReview(userID int64, st ReviewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(userID).review = &st
}

// Review returns a copy of the user's review state, or nil when no review
// wizard is in progress.
func (s *Store) Review(userID int64) *ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	if sess == nil || sess.review == nil {
		return nil
	}
	sess.touched = s.now()
	st := *sess.review
	return &st
}

func (s *Store) MarkAwaitingComment(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	if sess == nil || sess.review == nil {
		return
	}
	sess.touched = s.now()
	sess.review.AwaitingComment = true
}

func (s *Store) ClearReview(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.get(userID); sess != nil {
		sess.review = nil
	}
}
