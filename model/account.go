package model

type Account struct {
	DTO
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	Password    string `gorm:"not null" json:"-"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsStaff     bool   `gorm:"not null;default:false" json:"isStaff"`
	Active      bool   `gorm:"not null" json:"active"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Actor is the identity behind a request. Anonymous actors have a zero ID.
type Actor struct {
	ID          uint   `json:"id"`
	IsStaff     bool   `json:"isStaff"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Anonymous   bool   `json:"anonymous"`
}

var AnonymousActor = Actor{Anonymous: true}

// UserID returns the actor id as a nullable reference, nil for anonymous actors.
func (a Actor) UserID() *uint {
	if a.Anonymous || a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}
