package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	StudioID string    `json:"studioId"`
	ArtistID string    `json:"artistId"`
	StartsAt time.Time `json:"startsAt"`
	Notes    string    `json:"notes,omitempty"`
}

// FetchBookings lists the authenticated user's bookings.
func (c *Client) FetchBookings(ctx context.Context) ([]Booking, error) {
	var result struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.get(ctx, "/bookings", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return result.Bookings, nil
}

// CreateBooking requests a new appointment.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	var result struct {
		Booking Booking `json:"booking"`
	}
	if err := c.post(ctx, "/bookings", req, &result); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &result.Booking, nil
}

// CancelBooking cancels an existing booking.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/bookings/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	return nil
}
