package model

import "time"

// Event is a publishable activity with a seat inventory. An event with a
// non-empty TemplateName is a template: a blueprint that is never bookable.
type Event struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedBy    uint      `gorm:"not null;index" json:"createdBy"`
	CreationDate time.Time `gorm:"autoCreateTime" json:"creationDate"`

	Title       string `gorm:"size:256;not null" json:"title"`
	Slug        string `gorm:"size:256;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	Start time.Time `gorm:"column:start_at;not null;index" json:"start"`
	End   time.Time `gorm:"column:end_at;not null" json:"end"`

	Venue         string `gorm:"size:100" json:"venue"`
	Street        string `gorm:"size:100" json:"street"`
	City          string `gorm:"size:100" json:"city"`
	Zip           string `gorm:"size:100" json:"zip"`
	Country       string `gorm:"size:100" json:"country"`
	ContactPerson string `gorm:"size:100" json:"contactPerson"`
	ContactEmail  string `gorm:"size:254" json:"contactEmail"`
	ContactPhone  string `gorm:"size:100" json:"contactPhone"`

	AvailableSeats     *int     `gorm:"check:available_seats >= 0" json:"availableSeats"`
	HideAvailableSeats bool     `gorm:"not null;default:false" json:"hideAvailableSeats"`
	MaxSeatsPerGuest   *int     `gorm:"check:max_seats_per_guest >= 0" json:"maxSeatsPerGuest"`
	AllowAnonymousRSVP bool     `gorm:"column:allow_anonymous_rsvp;not null;default:false" json:"allowAnonymousRsvp"`
	RequiredFields     []string `gorm:"type:json;serializer:json" json:"requiredFields"`

	TemplateName string `gorm:"size:100;not null;default:''" json:"templateName"`
	IsPublished  bool   `gorm:"not null;default:false" json:"isPublished"`

	Guests []Guest `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsTemplate reports whether the event is a template rather than a live event.
func (e Event) IsTemplate() bool {
	return e.TemplateName != ""
}

type CreateEventInput struct {
	Title              string     `json:"title" validate:"required,max=256"`
	Description        string     `json:"description" validate:"max=1000"`
	StartAt            *time.Time `json:"start"`
	EndAt              *time.Time `json:"end"`
	Venue              string     `json:"venue" validate:"required,max=100"`
	Street             string     `json:"street" validate:"max=100"`
	City               string     `json:"city" validate:"max=100"`
	Zip                string     `json:"zip" validate:"max=100"`
	Country            string     `json:"country" validate:"max=100"`
	ContactPerson      string     `json:"contactPerson" validate:"max=100"`
	ContactEmail       string     `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone       string     `json:"contactPhone" validate:"max=100"`
	AvailableSeats     *int       `json:"availableSeats" validate:"omitempty,min=0"`
	HideAvailableSeats bool       `json:"hideAvailableSeats"`
	MaxSeatsPerGuest   *int       `json:"maxSeatsPerGuest" validate:"omitempty,min=0"`
	AllowAnonymousRSVP bool       `json:"allowAnonymousRsvp"`
	RequiredFields     []string   `json:"requiredFields" validate:"omitempty,dive,requiredfield"`
	TemplateName       string     `json:"templateName" validate:"max=100"`
	IsPublished        bool       `json:"isPublished"`
}

// UpdateEventInput is a partial update; nil fields keep their current value.
// It is also the overlay applied to a template when instantiating it.
type UpdateEventInput struct {
	Title              *string    `json:"title" validate:"omitempty,min=1,max=256"`
	Description        *string    `json:"description" validate:"omitempty,max=1000"`
	StartAt            *time.Time `json:"start"`
	EndAt              *time.Time `json:"end"`
	Venue              *string    `json:"venue" validate:"omitempty,min=1,max=100"`
	Street             *string    `json:"street" validate:"omitempty,max=100"`
	City               *string    `json:"city" validate:"omitempty,max=100"`
	Zip                *string    `json:"zip" validate:"omitempty,max=100"`
	Country            *string    `json:"country" validate:"omitempty,max=100"`
	ContactPerson      *string    `json:"contactPerson" validate:"omitempty,max=100"`
	ContactEmail       *string    `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone       *string    `json:"contactPhone" validate:"omitempty,max=100"`
	AvailableSeats     *int       `json:"availableSeats" validate:"omitempty,min=0"`
	ClearSeatLimit     bool       `json:"clearSeatLimit"`
	HideAvailableSeats *bool      `json:"hideAvailableSeats"`
	MaxSeatsPerGuest   *int       `json:"maxSeatsPerGuest" validate:"omitempty,min=0"`
	AllowAnonymousRSVP *bool      `json:"allowAnonymousRsvp"`
	RequiredFields     []string   `json:"requiredFields" validate:"omitempty,dive,requiredfield"`
	TemplateName       *string    `json:"templateName" validate:"omitempty,max=100"`
	IsPublished        *bool      `json:"isPublished"`
}

// FreeSeats is the remaining capacity of an event as shown to a viewer.
type FreeSeats struct {
	Unlimited bool `json:"unlimited"`
	Hidden    bool `json:"hidden"`
	Count     *int `json:"count,omitempty"`
}

type EventDetail struct {
	Event
	FreeSeats     FreeSeats `json:"freeSeats"`
	IsBookable    bool      `json:"isBookable"`
	CanonicalPath string    `json:"canonicalPath"`
}

type Dashboard struct {
	Upcoming  []Event `json:"upcoming"`
	Current   []Event `json:"current"`
	Past      []Event `json:"past"`
	Templates []Event `json:"templates"`
}

// SubmitResult is the outcome of an event form submission. Template is set
// only when the submission saved a copy of the event as a template.
type SubmitResult struct {
	Event    Event  `json:"event"`
	Template *Event `json:"template,omitempty"`
}
