package service

import (
	"context"
	"errors"

	"event_rsvp/clock"
	"event_rsvp/helper"
	"event_rsvp/model"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	repo   AccountRepository
	secret []byte
	clock  clock.Clock
}

func NewAuthService(repo AccountRepository, secret []byte, clk clock.Clock) *AuthService {
	return &AuthService{repo: repo, secret: secret, clock: clk}
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, input model.LoginInput) (model.TokenData, error) {
	account, err := s.repo.GetAccountByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenData{}, ErrInvalidCredentials
		}
		return model.TokenData{}, err
	}
	if !account.Active || !helper.CheckPasswordHash(input.Password, account.Password) {
		return model.TokenData{}, ErrInvalidCredentials
	}
	token, err := helper.GenerateAccessToken(s.secret, helper.TokenClaimFromAccount(account), s.clock.Now())
	if err != nil {
		return model.TokenData{}, err
	}
	return model.TokenData{AccessToken: token}, nil
}
