package helper

import (
	"fmt"
	"time"

	"event_rsvp/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 60 * time.Minute

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateAccessToken(secret []byte, tokenClaim model.TokenClaim, now time.Time) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["accountId"] = tokenClaim.AccountId
	claims["username"] = tokenClaim.Username
	claims["displayName"] = tokenClaim.DisplayName
	claims["email"] = tokenClaim.Email
	claims["isStaff"] = tokenClaim.IsStaff
	claims["exp"] = now.Add(accessTokenTTL).Unix()

	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
}

// ActorFromToken maps verified token claims to the request actor. A missing
// or malformed token yields the anonymous actor.
func ActorFromToken(token *jwt.Token) model.Actor {
	if token == nil || !token.Valid {
		return model.AnonymousActor
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.AnonymousActor
	}
	id, _ := claims["accountId"].(float64)
	if id <= 0 {
		return model.AnonymousActor
	}
	displayName, _ := claims["displayName"].(string)
	if displayName == "" {
		displayName, _ = claims["username"].(string)
	}
	email, _ := claims["email"].(string)
	isStaff, _ := claims["isStaff"].(bool)
	return model.Actor{
		ID:          uint(id),
		IsStaff:     isStaff,
		DisplayName: displayName,
		Email:       email,
	}
}

func TokenClaimFromAccount(account model.Account) model.TokenClaim {
	return model.TokenClaim{
		AccountId:   account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Email:       account.Email,
		IsStaff:     account.IsStaff,
	}
}
