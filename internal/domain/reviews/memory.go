package reviews

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps reviews in process memory. Used for local development
// and tests; data is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	reviews map[string]Review
	last    time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reviews: make(map[string]Review),
		now:     time.Now,
	}
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (*Review, error) {
	in = in.trimmed()
	if err := Validate(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review := Review{
		ID:         uuid.NewString(),
		BookTitle:  in.BookTitle,
		Author:     in.Author,
		Rating:     int(in.Rating),
		ReviewText: in.ReviewText,
		DateAdded:  s.tick(),
	}
	s.reviews[review.ID] = review
	return &review, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &review, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, in UpdateInput) (*Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	in.Apply(&review)
	s.reviews[id] = review
	return &review, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

// tick returns a creation time strictly after the previous one. Caller holds mu.
func (s *MemoryStore) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func sortNewestFirst(rs []Review) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].DateAdded.Equal(rs[j].DateAdded) {
			return rs[i].DateAdded.After(rs[j].DateAdded)
		}
		return rs[i].ID > rs[j].ID
	})
}
