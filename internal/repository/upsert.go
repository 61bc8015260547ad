package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsert вставляет item или обновляет updateCols у строки с тем же ключом keyCols,
// затем перечитывает строку: при конфликте ID в item не совпадает с сохранённым.
func upsert[T any](ctx context.Context, db *gorm.DB, item *T, keyCols, updateCols []string, where string, args ...interface{}) error {
	columns := make([]clause.Column, 0, len(keyCols))
	for _, c := range keyCols {
		columns = append(columns, clause.Column{Name: c})
	}

	updateCols = append(updateCols, "updated_at")
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   columns,
		DoUpdates: clause.AssignmentColumns(updateCols),
	}).Create(item).Error
	if err != nil {
		return err
	}

	var stored T
	if err := db.WithContext(ctx).Where(where, args...).First(&stored).Error; err != nil {
		return err
	}
	*item = stored
	return nil
}
