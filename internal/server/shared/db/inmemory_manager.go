package db

import (
	"github.com/dmitrijs2005/smartmeet/internal/server/meetings"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

type InMemoryRepositoryManager struct {
	users    *users.MemoryRepository
	meetings *meetings.MemoryStore
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Meetings() *meetings.MemoryStore {
	return m.meetings
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		meetings: meetings.NewMemoryStore(),
	}
}
