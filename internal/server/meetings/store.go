package meetings

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/smartmeet/internal/common"
)

// MemoryStore holds meetings and action items per owner. Lookups of another
// owner's records behave as if the record did not exist.
type MemoryStore struct {
	mu       sync.RWMutex
	meetings map[string]Meeting
	items    map[string]ActionItem
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		meetings: make(map[string]Meeting),
		items:    make(map[string]ActionItem),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Create(_ context.Context, ownerID, title, description string) (*Meeting, error) {
	m := Meeting{
		ID:                     uuid.NewString(),
		OwnerID:                ownerID,
		Title:                  strings.TrimSpace(title),
		Description:            strings.TrimSpace(description),
		TranscriptionStatus:    StatusPending,
		SummarizationStatus:    StatusPending,
		ActionExtractionStatus: StatusPending,
		CreatedAt:              s.now(),
	}

	s.mu.Lock()
	s.meetings[m.ID] = m
	s.mu.Unlock()
	return &m, nil
}

// List returns the owner's meetings newest first.
func (s *MemoryStore) List(_ context.Context, ownerID string, skip, limit int) ([]Meeting, error) {
	s.mu.RLock()
	out := make([]Meeting, 0)
	for _, m := range s.meetings {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, skip, limit), nil
}

func (s *MemoryStore) Get(_ context.Context, ownerID, id string) (*Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok || m.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

// AddActionItem attaches an item to one of the owner's meetings.
func (s *MemoryStore) AddActionItem(_ context.Context, ownerID, meetingID string, item ActionItem) (*ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[meetingID]
	if !ok || m.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}

	item.ID = uuid.NewString()
	item.MeetingID = meetingID
	item.OwnerID = ownerID
	if item.Status == "" {
		item.Status = "pending"
	}
	if item.Priority == "" {
		item.Priority = "medium"
	}
	item.CreatedAt = s.now()
	s.items[item.ID] = item

	m.ActionItemsCount++
	s.meetings[meetingID] = m
	return &item, nil
}

// ActionItems lists the owner's items, newest first, optionally filtered by
// status.
func (s *MemoryStore) ActionItems(_ context.Context, ownerID, status string, skip, limit int) ([]ActionItem, error) {
	s.mu.RLock()
	out := make([]ActionItem, 0)
	for _, it := range s.items {
		if it.OwnerID == ownerID && (status == "" || it.Status == status) {
			out = append(out, it)
		}
	}
	s.mu.RUnlock()

	sortItems(out)
	return page(out, skip, limit), nil
}

func (s *MemoryStore) MeetingActionItems(ctx context.Context, ownerID, meetingID string) ([]ActionItem, error) {
	if _, err := s.Get(ctx, ownerID, meetingID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]ActionItem, 0)
	for _, it := range s.items {
		if it.MeetingID == meetingID {
			out = append(out, it)
		}
	}
	s.mu.RUnlock()

	sortItems(out)
	return out, nil
}

func sortItems(items []ActionItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func page[T any](in []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(in) {
		return in[:0]
	}
	in = in[skip:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
