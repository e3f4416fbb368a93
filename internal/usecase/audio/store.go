package audio

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// State is an immutable snapshot of all tracked uploads. Mutating operations
// take a State and return a new one; callers own the current reference.
type State struct {
	uploads map[uuid.UUID]*entities.Upload
}

// NewState creates an empty state
func NewState() State {
	return State{uploads: make(map[uuid.UUID]*entities.Upload)}
}

// clone copies the upload map so the previous snapshot stays valid
func (s State) clone() State {
	next := State{uploads: make(map[uuid.UUID]*entities.Upload, len(s.uploads))}
	for id, upload := range s.uploads {
		next.uploads[id] = upload
	}
	return next
}

// Get returns the upload for id, or nil when unknown
func (s State) Get(id uuid.UUID) *entities.Upload {
	upload, ok := s.uploads[id]
	if !ok {
		return nil
	}
	return upload.Clone()
}

// Len returns the number of tracked uploads
func (s State) Len() int {
	return len(s.uploads)
}

// InitializeUpload registers a new pending upload. It fails when the declared
// size exceeds maxBytes, before any chunk is accepted.
func InitializeUpload(s State, ownerID uuid.UUID, fileName, mimeType string, declaredSize, maxBytes int64) (State, *entities.Upload, error) {
	if declaredSize > maxBytes {
		return s, nil, fmt.Errorf("%w: declared %d bytes, maximum %d", entities.ErrUploadTooLarge, declaredSize, maxBytes)
	}
	upload := entities.NewUpload(ownerID, fileName, mimeType, declaredSize)
	next := s.clone()
	next.uploads[upload.ID] = upload
	return next, upload.Clone(), nil
}

// AddChunk appends a chunk at the given index. Unknown upload ids and
// terminal uploads are a no-op, so late or duplicate chunk delivery after
// cleanup never fails. A chunk re-sent for an existing index replaces it.
func AddChunk(s State, id uuid.UUID, data []byte, index int) State {
	upload, ok := s.uploads[id]
	if !ok || upload.IsTerminal() || index < 0 {
		return s
	}
	updated := upload.Clone()
	buf := make([]byte, len(data))
	copy(buf, data)
	updated.Chunks[index] = buf
	next := s.clone()
	next.uploads[id] = updated
	return next
}

// AssembleChunks concatenates chunks in index order into one byte sequence.
// Chunk indices must form a contiguous run starting at zero; a gap means a
// chunk is still missing and assembly fails cleanly. Assembly is idempotent:
// calling it again on the same complete set yields byte-identical output.
func AssembleChunks(s State, id uuid.UUID) (State, []byte, error) {
	upload, ok := s.uploads[id]
	if !ok {
		return s, nil, fmt.Errorf("%w: %s", entities.ErrUploadNotFound, id)
	}
	if upload.Status == entities.UploadStatusFailed {
		return s, nil, fmt.Errorf("%w: upload %s already failed", entities.ErrUploadTerminal, id)
	}
	if len(upload.Chunks) == 0 {
		return s, nil, fmt.Errorf("%w: upload %s has no chunks", entities.ErrUploadIncomplete, id)
	}

	indices := make([]int, 0, len(upload.Chunks))
	for index := range upload.Chunks {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	for position, index := range indices {
		if index != position {
			return s, nil, fmt.Errorf("%w: upload %s is missing chunk %d", entities.ErrUploadIncomplete, id, position)
		}
	}

	var assembled []byte
	for _, index := range indices {
		assembled = append(assembled, upload.Chunks[index]...)
	}

	if upload.Status == entities.UploadStatusAssembled {
		return s, assembled, nil
	}

	updated := upload.Clone()
	updated.Status = entities.UploadStatusAssembled
	next := s.clone()
	next.uploads[id] = updated
	return next, assembled, nil
}

// FailUpload marks an upload failed with a reason. Terminal uploads and
// unknown ids are left unchanged.
func FailUpload(s State, id uuid.UUID, reason string) State {
	upload, ok := s.uploads[id]
	if !ok || upload.IsTerminal() {
		return s
	}
	updated := upload.Clone()
	updated.Status = entities.UploadStatusFailed
	updated.FailReason = reason
	next := s.clone()
	next.uploads[id] = updated
	return next
}

// RemoveUpload drops an upload from the state, releasing its chunk buffers.
// Called once the assembled bytes have been handed to the provider.
func RemoveUpload(s State, id uuid.UUID) State {
	if _, ok := s.uploads[id]; !ok {
		return s
	}
	next := s.clone()
	delete(next.uploads, id)
	return next
}

// Store owns the current state reference behind a mutex so handlers can
// interleave chunk uploads safely. All semantics live in the pure functions
// above; the store only swaps snapshots.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: NewState()}
}

// InitializeUpload registers a new pending upload
func (st *Store) InitializeUpload(ownerID uuid.UUID, fileName, mimeType string, declaredSize, maxBytes int64) (*entities.Upload, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	next, upload, err := InitializeUpload(st.state, ownerID, fileName, mimeType, declaredSize, maxBytes)
	if err != nil {
		return nil, err
	}
	st.state = next
	return upload, nil
}

// AddChunk appends a chunk; chunk order is fixed by index, not arrival order
func (st *Store) AddChunk(id uuid.UUID, data []byte, index int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = AddChunk(st.state, id, data, index)
}

// AssembleChunks reassembles the upload into one byte sequence
func (st *Store) AssembleChunks(id uuid.UUID) ([]byte, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	next, assembled, err := AssembleChunks(st.state, id)
	if err != nil {
		return nil, err
	}
	st.state = next
	return assembled, nil
}

// FailUpload marks an upload failed
func (st *Store) FailUpload(id uuid.UUID, reason string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = FailUpload(st.state, id, reason)
}

// RemoveUpload drops an upload after handoff
func (st *Store) RemoveUpload(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = RemoveUpload(st.state, id)
}

// Get returns the upload for id, or nil when unknown
func (st *Store) Get(id uuid.UUID) *entities.Upload {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.Get(id)
}

// Reset drops all tracked uploads
func (st *Store) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = NewState()
}
