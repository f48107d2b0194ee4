package database

import (
	"context"
	"errors"
	"log"

	"event_rsvp/helper"
	"event_rsvp/model"

	"gorm.io/gorm"
)

// AccountStore is implemented by every repository that can seed accounts.
type AccountStore interface {
	GetAccountByUsername(ctx context.Context, username string) (model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
}

// SeedData makes sure a staff account exists to manage events.
func SeedData(ctx context.Context, store AccountStore, username, password string) error {
	if username == "" || password == "" {
		log.Println("ADMIN_USERNAME or ADMIN_PASSWORD not set, skipping staff seed")
		return nil
	}
	_, err := store.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	hash, err := helper.HashPassword(password)
	if err != nil {
		return err
	}
	account := model.Account{
		Username:    username,
		Password:    hash,
		DisplayName: username,
		IsStaff:     true,
		Active:      true,
	}
	if err := store.CreateAccount(ctx, &account); err != nil {
		return err
	}
	log.Printf("seeded staff account %q", username)
	return nil
}

func (r *Repository) GetAccountByUsername(ctx context.Context, username string) (model.Account, error) {
	var account model.Account
	if err := r.conn(ctx).Where(&model.Account{Username: username}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, err
	}
	return account, nil
}

func (r *Repository) CreateAccount(ctx context.Context, account *model.Account) error {
	return r.conn(ctx).Create(account).Error
}
