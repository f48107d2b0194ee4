package model

import "time"

// Guest is a reservation against an event.
type Guest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventID       uint      `gorm:"not null;index" json:"eventId"`
	UserID        *uint     `gorm:"index" json:"userId"`
	Name          string    `gorm:"size:50" json:"name"`
	Email         string    `gorm:"size:254" json:"email"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Message       string    `gorm:"type:text" json:"message"`
	NumberOfSeats int       `gorm:"not null;check:number_of_seats >= 0" json:"numberOfSeats"`
	IsAttending   bool      `gorm:"not null" json:"isAttending"`
	CreationDate  time.Time `gorm:"autoCreateTime" json:"creationDate"`
}

// ReservationInput is a reservation form. On update, nil fields keep their
// current value.
type ReservationInput struct {
	Name          *string `json:"name" validate:"omitempty,max=50"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Message       *string `json:"message" validate:"omitempty,max=4000"`
	NumberOfSeats *int    `json:"numberOfSeats" validate:"omitempty,min=1"`
	IsAttending   *bool   `json:"isAttending"`
}
