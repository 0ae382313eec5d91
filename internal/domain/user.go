package domain

import "time"

type Booking struct {
	ResidencyID string `json:"id"`
	Date        string `json:"date"`
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Image        string    `json:"image,omitempty"`
	BookedVisits []Booking `json:"bookedVisits"`
	Favourites   []string  `json:"favResidenciesID"`
	CreatedAt    time.Time `json:"createdAt"`
}
