package client

import (
	"context"
	"fmt"

	"github.com/inkdex/inkdex/auth"
)

// ProfileUpdate is the payload for editing the authenticated user's profile.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// UpdateProfile edits the authenticated user's profile and returns the
// updated record. The caller is expected to merge it into the auth store.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*auth.User, error) {
	var result struct {
		User *auth.User `json:"user"`
	}
	if err := c.put(ctx, "/auth/profile", update, &result); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if result.User == nil {
		return nil, fmt.Errorf("malformed profile update response")
	}
	return result.User, nil
}
