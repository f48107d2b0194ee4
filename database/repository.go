package database

import (
	"context"
	"errors"
	"time"

	"event_rsvp/model"
	"event_rsvp/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

// Repository stores events, guests and accounts with gorm. A transaction
// opened by WithTx travels in the context.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrNotFound
	}
	return err
}

func (r *Repository) GetEvent(ctx context.Context, id uint) (model.Event, error) {
	var event model.Event
	if err := r.conn(ctx).First(&event, id).Error; err != nil {
		return model.Event{}, notFound(err)
	}
	return event, nil
}

func (r *Repository) GetEventForUpdate(ctx context.Context, id uint) (model.Event, error) {
	var event model.Event
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error; err != nil {
		return model.Event{}, notFound(err)
	}
	return event, nil
}

func (r *Repository) GetEventBySlug(ctx context.Context, slug string) (model.Event, error) {
	var event model.Event
	if err := r.conn(ctx).Where("slug = ?", slug).First(&event).Error; err != nil {
		return model.Event{}, notFound(err)
	}
	return event, nil
}

func (r *Repository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&model.Event{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// CreateEvent and UpdateEvent write inside a savepoint so a lost slug race
// leaves the surrounding transaction usable for a retry.
func (r *Repository) CreateEvent(ctx context.Context, event *model.Event) error {
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(event).Error
	})
	if isUniqueViolation(err) {
		return model.ErrSlugConflict
	}
	return err
}

func (r *Repository) UpdateEvent(ctx context.Context, event *model.Event) error {
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(event).Error
	})
	if isUniqueViolation(err) {
		return model.ErrSlugConflict
	}
	return err
}

func (r *Repository) DeleteEvent(ctx context.Context, id uint) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		tx := r.conn(ctx)
		if err := tx.Where("event_id = ?", id).Delete(&model.Guest{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) ListUpcomingEvents(ctx context.Context, now time.Time, page model.Pagination) ([]model.Event, int64, error) {
	cond := r.conn(ctx).Model(&model.Event{}).
		Where("start_at > ? AND is_published = ? AND template_name = ''", now, true).
		Session(&gorm.Session{})

	var totalCount int64
	if err := cond.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var events []model.Event
	if err := utils.ApplyPagination(cond, page.Limit, page.Page).Order("start_at ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, totalCount, nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.conn(ctx).Order("start_at ASC").Find(&events).Error
	return events, err
}

func (r *Repository) SumReservedSeats(ctx context.Context, eventID, excludeGuestID uint) (int, error) {
	var total int
	err := r.conn(ctx).Model(&model.Guest{}).
		Where("event_id = ? AND id <> ?", eventID, excludeGuestID).
		Select("COALESCE(SUM(number_of_seats), 0)").
		Scan(&total).Error
	return total, err
}

func (r *Repository) CreateGuest(ctx context.Context, guest *model.Guest) error {
	return r.conn(ctx).Create(guest).Error
}

func (r *Repository) UpdateGuest(ctx context.Context, guest *model.Guest) error {
	return r.conn(ctx).Save(guest).Error
}

func (r *Repository) GetGuest(ctx context.Context, id uint) (model.Guest, error) {
	var guest model.Guest
	if err := r.conn(ctx).First(&guest, id).Error; err != nil {
		return model.Guest{}, notFound(err)
	}
	return guest, nil
}

func (r *Repository) DeleteGuest(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&model.Guest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *Repository) ListGuests(ctx context.Context, eventID uint) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.conn(ctx).Where("event_id = ?", eventID).Order("creation_date ASC").Find(&guests).Error
	return guests, err
}
