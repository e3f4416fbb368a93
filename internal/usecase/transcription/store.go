package transcription

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// State is an immutable snapshot of outstanding requests and stored results.
// Pending requests are keyed by the audio reference; results by their own id,
// with an audio-reference index on top since callers only hold the audio id.
type State struct {
	pending map[uuid.UUID]entities.TranscriptionRequest
	results map[uuid.UUID]*entities.TranscriptionResult
	byAudio map[uuid.UUID]uuid.UUID
}

// NewState creates an empty state
func NewState() State {
	return State{
		pending: make(map[uuid.UUID]entities.TranscriptionRequest),
		results: make(map[uuid.UUID]*entities.TranscriptionResult),
		byAudio: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s State) clone() State {
	next := State{
		pending: make(map[uuid.UUID]entities.TranscriptionRequest, len(s.pending)),
		results: make(map[uuid.UUID]*entities.TranscriptionResult, len(s.results)),
		byAudio: make(map[uuid.UUID]uuid.UUID, len(s.byAudio)),
	}
	for audioID, req := range s.pending {
		next.pending[audioID] = req
	}
	for id, result := range s.results {
		next.results[id] = result
	}
	for audioID, id := range s.byAudio {
		next.byAudio[audioID] = id
	}
	return next
}

// StartTranscription registers a pending request. A request already pending
// for the same audio reference is replaced: last submission wins, so the same
// audio is never transcribed twice concurrently.
func StartTranscription(s State, req entities.TranscriptionRequest) State {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now()
	}
	next := s.clone()
	next.pending[req.AudioID] = req
	return next
}

// CompleteTranscription stores a result and removes the matching pending
// request. A result with no matching request is stored anyway, supporting
// out-of-order completion and replay.
func CompleteTranscription(s State, result *entities.TranscriptionResult) State {
	next := s.clone()
	next.results[result.ID] = result
	next.byAudio[result.AudioID] = result.ID
	delete(next.pending, result.AudioID)
	return next
}

// FailTranscription drops the pending request for an audio reference. The
// caller decides whether to resubmit; this core performs no retries.
func FailTranscription(s State, audioID uuid.UUID) State {
	if _, ok := s.pending[audioID]; !ok {
		return s
	}
	next := s.clone()
	delete(next.pending, audioID)
	return next
}

// GetTranscription returns the stored result, or nil when unknown
func (s State) GetTranscription(id uuid.UUID) *entities.TranscriptionResult {
	return s.results[id]
}

// GetByAudioID returns the most recent result for an audio reference, or nil
// when that audio was never transcribed.
func (s State) GetByAudioID(audioID uuid.UUID) *entities.TranscriptionResult {
	id, ok := s.byAudio[audioID]
	if !ok {
		return nil
	}
	return s.results[id]
}

// PendingRequest returns the pending request for an audio reference
func (s State) PendingRequest(audioID uuid.UUID) (entities.TranscriptionRequest, bool) {
	req, ok := s.pending[audioID]
	return req, ok
}

// PendingCount returns the number of outstanding requests
func (s State) PendingCount() int {
	return len(s.pending)
}

// Store owns the current state reference and its synchronization
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: NewState()}
}

// StartTranscription registers a pending request (last submission wins)
func (st *Store) StartTranscription(req entities.TranscriptionRequest) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = StartTranscription(st.state, req)
}

// CompleteTranscription stores a result and clears the matching request
func (st *Store) CompleteTranscription(result *entities.TranscriptionResult) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = CompleteTranscription(st.state, result)
}

// FailTranscription drops the pending request for an audio reference
func (st *Store) FailTranscription(audioID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = FailTranscription(st.state, audioID)
}

// GetTranscription returns the stored result, or nil when unknown
func (st *Store) GetTranscription(id uuid.UUID) *entities.TranscriptionResult {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.GetTranscription(id)
}

// GetByAudioID returns the most recent result for an audio reference
func (st *Store) GetByAudioID(audioID uuid.UUID) *entities.TranscriptionResult {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.GetByAudioID(audioID)
}

// PendingRequest returns the pending request for an audio reference
func (st *Store) PendingRequest(audioID uuid.UUID) (entities.TranscriptionRequest, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.PendingRequest(audioID)
}
