package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedRepository - CRUD для записей, принадлежащих пользователю (колонка user_id)
type OwnedRepository[T any] interface {
	FindAll(ctx context.Context, userID string) ([]*T, error)
	FindByID(ctx context.Context, userID, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) error
}

type ownedRepo[T any] struct {
	db       *gorm.DB
	order    string
	preloads []string
}

func newOwnedRepo[T any](db *gorm.DB, order string, preloads ...string) *ownedRepo[T] {
	return &ownedRepo[T]{db: db, order: order, preloads: preloads}
}

func (r *ownedRepo[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *ownedRepo[T]) FindAll(ctx context.Context, userID string) ([]*T, error) {
	items := []*T{}
	err := r.query(ctx).Where("user_id = ?", userID).Order(r.order).Find(&items).Error
	return items, err
}

func (r *ownedRepo[T]) FindByID(ctx context.Context, userID, id string) (*T, error) {
	var item T
	err := r.query(ctx).Where("user_id = ? AND id = ?", userID, id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ownedRepo[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update сохраняет поля записи, ассоциации не трогает
func (r *ownedRepo[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *ownedRepo[T]) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ownedRepo[T]) DeleteAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(new(T)).Error
}
