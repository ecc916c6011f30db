package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"sheetlens/internal/errors"
)

// Upload is one transient working copy of an uploaded workbook. The file
// lives only for the session; eviction deletes it.
type Upload struct {
	ID         string
	Filename   string
	Path       string
	UploadedAt time.Time
}

// Store keeps the working copies of uploaded workbooks in a temp directory.
// Nothing is persisted: entries expire after the TTL and their files are
// removed.
type Store struct {
	mu      sync.RWMutex
	uploads map[string]*Upload

	dir      string
	ttl      time.Duration
	parseSem *semaphore.Weighted
}

// NewStore creates a store writing working copies under dir. maxParallel
// bounds how many workbook parses may run at once.
func NewStore(dir string, ttl time.Duration, maxParallel int) *Store {
	return &Store{
		uploads:  make(map[string]*Upload),
		dir:      dir,
		ttl:      ttl,
		parseSem: semaphore.NewWeighted(int64(maxParallel)),
	}
}

// AllowedExtension reports whether the filename carries a supported
// spreadsheet extension
func AllowedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range []string{".xlsx", ".xls", ".csv"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Save writes the uploaded content to a uuid-named working copy and registers
// the session
func (s *Store) Save(filename string, r io.Reader) (*Upload, error) {
	if !AllowedExtension(filename) {
		return nil, errors.UploadRejected("only Excel (.xlsx, .xls) and CSV (.csv) files are allowed")
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, id+strings.ToLower(filepath.Ext(filename)))

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create working copy")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "failed to write working copy")
	}

	upload := &Upload{
		ID:         id,
		Filename:   filename,
		Path:       path,
		UploadedAt: time.Now(),
	}

	s.mu.Lock()
	s.uploads[id] = upload
	s.mu.Unlock()

	log.Printf("[SessionStore] Stored upload %s (%s) at %s", id, filename, path)
	return upload, nil
}

// Get returns the upload for a session id
func (s *Store) Get(id string) (*Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	upload, ok := s.uploads[id]
	return upload, ok
}

// Remove evicts a session and deletes its working copy
func (s *Store) Remove(id string) {
	s.mu.Lock()
	upload, ok := s.uploads[id]
	delete(s.uploads, id)
	s.mu.Unlock()

	if ok {
		if err := os.Remove(upload.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[SessionStore] Failed to remove working copy %s: %v", upload.Path, err)
		}
	}
}

// Sweep evicts every session past the TTL and returns how many were removed
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Upload
	for id, upload := range s.uploads {
		if upload.UploadedAt.Before(cutoff) {
			expired = append(expired, upload)
			delete(s.uploads, id)
		}
	}
	s.mu.Unlock()

	for _, upload := range expired {
		if err := os.Remove(upload.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[SessionStore] Failed to remove working copy %s: %v", upload.Path, err)
		}
	}
	if len(expired) > 0 {
		log.Printf("[SessionStore] Swept %d expired sessions", len(expired))
	}
	return len(expired)
}

// StartSweeper evicts expired sessions on an interval until ctx is done
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// WithParseSlot runs fn while holding one of the bounded workbook-parse slots
func (s *Store) WithParseSlot(ctx context.Context, fn func() error) error {
	if err := s.parseSem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("failed to acquire parse slot: %w", err)
	}
	defer s.parseSem.Release(1)
	return fn()
}
