package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

// recordWriter persists span records.
type recordWriter interface {
	Insert(ctx context.Context, records []spanrecord.Record) error
}

// gormWriter inserts records through the exporter's current connection.
// A span that is already stored, identified by trace and span id, is skipped.
type gormWriter struct {
	db func() *gorm.DB
}

func (w gormWriter) Insert(ctx context.Context, records []spanrecord.Record) error {
	db := w.db()
	if db == nil {
		return ErrNotConnected
	}
	return insertStatement(db.WithContext(ctx), records).Error
}

func insertStatement(db *gorm.DB, records []spanrecord.Record) *gorm.DB {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records)
}
