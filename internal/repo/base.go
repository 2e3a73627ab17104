package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base holds the gorm handle shared by the domain repositories. Repositories
// embed it and reach the connection through DB.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB scopes the connection to ctx. A nil ctx returns the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
