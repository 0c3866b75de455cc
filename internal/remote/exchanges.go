package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/dto"
)

const exchangesPath = "/api/exchanges"

// ListExchanges GET /api/exchanges
func (c *Client) ListExchanges(ctx context.Context) ([]*domain.ExchangeLink, error) {
	var list []*dto.ExchangeLinkDTO
	if err := c.do(ctx, http.MethodGet, exchangesPath, nil, &list); err != nil {
		return nil, err
	}
	out := make([]*domain.ExchangeLink, 0, len(list))
	for _, d := range list {
		if d != nil {
			out = append(out, d.ToDomain())
		}
	}
	return out, nil
}

// CreateExchange POST /api/exchanges
func (c *Client) CreateExchange(ctx context.Context, draft domain.CredentialDraft) (*domain.ExchangeLink, error) {
	var created dto.ExchangeLinkDTO
	if err := c.do(ctx, http.MethodPost, exchangesPath, dto.NewExchangeCreateRequest(draft), &created); err != nil {
		return nil, err
	}
	return created.ToDomain(), nil
}

// SyncExchange POST /api/exchanges/{id}/sync
func (c *Client) SyncExchange(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodPost, exchangesPath+"/"+url.PathEscape(id.String())+"/sync", nil, nil)
}

// DeleteExchange DELETE /api/exchanges/{id}
func (c *Client) DeleteExchange(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, exchangesPath+"/"+url.PathEscape(id.String()), nil, nil)
}

var _ domain.ExchangeAPI = (*Client)(nil)
