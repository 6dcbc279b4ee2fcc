// Package db selects and wires the account storage backend.
package db

import (
	"github.com/dmitrijs2005/authkeeper/internal/server/users"
)

// RepositoryManager vends repositories for one storage backend.
type RepositoryManager interface {
	Users() users.Repository
	Close() error
}
