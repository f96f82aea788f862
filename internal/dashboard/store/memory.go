package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
}

type sessionRecord struct {
	mu            sync.RWMutex
	session       entity.Session
	history       []entity.UploadHistoryEntry // oldest first
	selectedFile  string
	chat          []entity.ChatMessage
	contributions []entity.Contribution
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*sessionRecord),
	}
}

func (s *InMemoryStore) CreateSession(ctx context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return pkgerror.NewBusiness("session already exists", pkgerror.CodeConflict)
	}

	s.sessions[sess.ID] = &sessionRecord{
		session: sess,
	}

	return nil
}

func (s *InMemoryStore) GetSession(ctx context.Context, sessionID string) (entity.Session, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return entity.Session{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.session, nil
}

// PrependHistory puts entry in front of the session's upload history and
// marks its file as the selected one.
func (s *InMemoryStore) PrependHistory(ctx context.Context, sessionID string, entry entity.UploadHistoryEntry) error {
	rec, err := s.get(sessionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.history = append(rec.history, entry)
	rec.selectedFile = entry.FileName

	return nil
}

// ListHistory returns the upload history, newest first.
func (s *InMemoryStore) ListHistory(ctx context.Context, sessionID string) ([]entity.UploadHistoryEntry, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	out := slices.Clone(rec.history)
	slices.Reverse(out)
	if out == nil {
		out = []entity.UploadHistoryEntry{}
	}

	return out, nil
}

func (s *InMemoryStore) SetSelectedFile(ctx context.Context, sessionID, fileName string) error {
	rec, err := s.get(sessionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.selectedFile = fileName

	return nil
}

func (s *InMemoryStore) SelectedFile(ctx context.Context, sessionID string) (string, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return "", err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.selectedFile, nil
}

func (s *InMemoryStore) AppendChat(ctx context.Context, sessionID string, msg entity.ChatMessage) error {
	rec, err := s.get(sessionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.chat = append(rec.chat, msg)

	return nil
}

// ListChat returns the transcript in the order messages were appended.
func (s *InMemoryStore) ListChat(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	out := make([]entity.ChatMessage, len(rec.chat))
	copy(out, rec.chat)

	return out, nil
}

func (s *InMemoryStore) AddContribution(ctx context.Context, sessionID string, c entity.Contribution) error {
	rec, err := s.get(sessionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.contributions = append(rec.contributions, c)

	return nil
}

func (s *InMemoryStore) ListContributions(ctx context.Context, sessionID string) ([]entity.Contribution, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	out := make([]entity.Contribution, len(rec.contributions))
	copy(out, rec.contributions)

	return out, nil
}

func (s *InMemoryStore) get(sessionID string) (*sessionRecord, error) {
	s.mu.RLock()
	rec, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
