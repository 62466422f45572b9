package client

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the API answers 404 for a resource.
var ErrNotFound = errors.New("not found")

// Studio is a tattoo studio listed in the marketplace directory.
type Studio struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Address       string   `json:"address,omitempty"`
	Styles        []string `json:"styles,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Verified      bool     `json:"verified"`
	PortfolioURLs []string `json:"portfolioUrls,omitempty"`
}

// Artist is an individual artist, optionally attached to a studio.
type Artist struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	StudioID string   `json:"studioId,omitempty"`
	Styles   []string `json:"styles,omitempty"`
	Rating   float64  `json:"rating"`
	Bio      string   `json:"bio,omitempty"`
}

// Review is a published client review of a studio.
type Review struct {
	ID         string    `json:"id"`
	StudioID   string    `json:"studioId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Booking is an appointment between a client and an artist.
type Booking struct {
	ID       string    `json:"id"`
	StudioID string    `json:"studioId"`
	ArtistID string    `json:"artistId"`
	StartsAt time.Time `json:"startsAt"`
	Status   string    `json:"status"`
	Notes    string    `json:"notes,omitempty"`
}

// StudioPage is one page of the studio directory.
type StudioPage struct {
	Items      []Studio `json:"items"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	TotalItems int      `json:"totalItems"`
}

// ArtistPage is one page of the artist directory.
type ArtistPage struct {
	Items      []Artist `json:"items"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	TotalItems int      `json:"totalItems"`
}
