// Package db builds the repositories of the development server, either in
// memory or on PostgreSQL.
package db

import (
	"github.com/dmitrijs2005/smartmeet/internal/server/meetings"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Meetings() *meetings.MemoryStore
	Close() error
}
