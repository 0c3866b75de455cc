package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/dto"
)

const notificationsPath = "/notifications"

// ListNotifications GET /notifications
func (c *Client) ListNotifications(ctx context.Context) ([]*domain.Notification, error) {
	var list []*dto.NotificationDTO
	if err := c.do(ctx, http.MethodGet, notificationsPath, nil, &list); err != nil {
		return nil, err
	}
	out := make([]*domain.Notification, 0, len(list))
	for _, d := range list {
		if d != nil {
			out = append(out, d.ToDomain())
		}
	}
	return out, nil
}

// MarkNotificationRead POST /notifications/{id}/read
func (c *Client) MarkNotificationRead(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodPost, notificationsPath+"/"+url.PathEscape(id.String())+"/read", nil, nil)
}

// MarkAllNotificationsRead POST /notifications/read-all
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, notificationsPath+"/read-all", nil, nil)
}

var _ domain.NotificationAPI = (*Client)(nil)
