package platform

import (
	"context"
	"fmt"
)

// notificationsData is the data payload of the notifications listing.
type notificationsData struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// ListNotifications fetches the user's notifications along with the
// current unread count.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, int, error) {
	const op = "notifications.list"

	env, err := c.Get(ctx, op, "/api/notifications", nil)
	if err != nil {
		return nil, 0, err
	}
	data, err := UnmarshalData[notificationsData](env)
	if err != nil {
		return nil, 0, newError(op, 0, nil, fmt.Errorf("parse notifications: %w", err))
	}
	return data.Notifications, data.UnreadCount, nil
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	const op = "health"

	env, err := c.Get(ctx, op, "/api/health", nil)
	if err != nil {
		return nil, err
	}
	status, err := UnmarshalData[HealthStatus](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse health: %w", err))
	}
	return &status, nil
}
