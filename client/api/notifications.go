package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"social/util/model"
)

func (c *Client) Notifications(ctx context.Context, token string, page int) (Page[model.Notification], error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/notifications?page=%d", page), token, nil, &raw); err != nil {
		return Page[model.Notification]{}, err
	}
	// la API devuelve { notifications: { notifications: [...] } }
	return decodePage[model.Notification](raw, "notifications")
}

func (c *Client) MarkNotificationRead(ctx context.Context, token string, id int64) error {
	return c.Do(ctx, http.MethodPatch, fmt.Sprintf("/notifications/%d/read", id), token, nil, nil)
}
