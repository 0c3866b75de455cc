package service

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/inflight"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ExchangeRegistry mirrors the user's linked exchanges as last reported by
// the server. Every successful mutation is followed by a full refetch; the
// registry never patches entries locally.
// ExchangeRegistry 交易所连接注册表
type ExchangeRegistry struct {
	api     domain.ExchangeAPI
	alerter Alerter
	logger  *zap.Logger
	links   collection[*domain.ExchangeLink]
	guard   *inflight.Guard
	sf      singleflight.Group
}

func NewExchangeRegistry(api domain.ExchangeAPI, alerter Alerter, lg *zap.Logger) *ExchangeRegistry {
	if alerter == nil {
		alerter = nopAlerter{}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &ExchangeRegistry{
		api:     api,
		alerter: alerter,
		logger:  lg,
		guard:   inflight.NewGuard(),
	}
}

// FetchAll loads the full collection. On failure the collection becomes
// empty and the error is kept for LastFetchErr; it is never returned.
func (r *ExchangeRegistry) FetchAll(ctx context.Context) []*domain.ExchangeLink {
	seq := r.links.begin()
	list, err := r.api.ListExchanges(ctx)
	if err != nil {
		r.logger.Warn("failed to load exchanges",
			zap.String(logger.FieldMethod, "ExchangeRegistry.FetchAll"),
			zap.Error(err))
		list = nil
	}
	if !r.links.apply(seq, uniqueLinks(list), err) {
		r.logger.Debug("discarded exchange list", zap.Uint64("seq", seq))
	}
	return r.Links()
}

// Refresh is FetchAll with concurrent callers sharing one request. Mutations
// never go through Refresh: their resync must start after the mutation.
func (r *ExchangeRegistry) Refresh(ctx context.Context) []*domain.ExchangeLink {
	v, _, _ := r.sf.Do("exchanges", func() (any, error) {
		return r.FetchAll(ctx), nil
	})
	return v.([]*domain.ExchangeLink)
}

// Links returns copies of the current entries
func (r *ExchangeRegistry) Links() []*domain.ExchangeLink {
	var out []*domain.ExchangeLink
	r.links.view(func(items []*domain.ExchangeLink) {
		out = make([]*domain.ExchangeLink, 0, len(items))
		for _, l := range items {
			out = append(out, l.Clone())
		}
	})
	return out
}

// Get 按 ID 查找连接
func (r *ExchangeRegistry) Get(id domain.ID) (*domain.ExchangeLink, bool) {
	var found *domain.ExchangeLink
	r.links.view(func(items []*domain.ExchangeLink) {
		for _, l := range items {
			if l.ID == id {
				found = l.Clone()
				return
			}
		}
	})
	return found, found != nil
}

// Loaded reports whether any fetch has settled
func (r *ExchangeRegistry) Loaded() bool { return r.links.isLoaded() }

// LastFetchErr is the error of the last applied fetch, nil when it succeeded
func (r *ExchangeRegistry) LastFetchErr() error { return r.links.err() }

// Open starts a new mount. Fetches issued before it are discarded.
func (r *ExchangeRegistry) Open() { r.links.open() }

// Close detaches the registry until the next Open; responses arriving later
// are discarded
func (r *ExchangeRegistry) Close() { r.links.close() }

// Connect submits the form's draft. The draft is validated locally first.
// On success the form is completed and the registry resynced; on failure the
// form keeps its draft and stays open.
// Connect 提交凭证并连接交易所
func (r *ExchangeRegistry) Connect(ctx context.Context, form *CredentialForm) (*domain.ExchangeLink, error) {
	if err := form.Validate(); err != nil {
		return nil, code.ErrorCredentialInvalid.WithCause(err)
	}
	release, ok := r.guard.Acquire("connect")
	if !ok {
		return nil, ErrBusy
	}
	defer release()
	if r.links.isClosed() {
		return nil, ErrClosed
	}

	draft := form.Draft()
	created, err := r.api.CreateExchange(ctx, draft)
	if err != nil {
		r.logger.Error("exchange connection failed",
			zap.String(logger.FieldAction, "connect"),
			zap.Object(logger.FieldDraft, draft),
			zap.Error(err))
		return nil, r.fail(ctx, code.ErrorExchangeConnectFailed, err)
	}

	r.logger.Info("exchange connected",
		zap.String(logger.FieldExchangeID, created.ID.String()),
		zap.Object(logger.FieldDraft, draft))
	form.Complete()
	r.FetchAll(ctx)
	return created, nil
}

// Sync asks the server to resync one known link
func (r *ExchangeRegistry) Sync(ctx context.Context, id domain.ID) error {
	if _, ok := r.Get(id); !ok {
		return ErrUnknownLink.WithDetails(id.String())
	}
	release, ok := r.guard.Acquire("sync:" + id.String())
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := r.api.SyncExchange(ctx, id); err != nil {
		r.logger.Error("sync failed",
			zap.String(logger.FieldExchangeID, id.String()),
			zap.Error(err))
		return r.fail(ctx, code.ErrorExchangeSyncFailed, err)
	}
	r.FetchAll(ctx)
	return nil
}

// Disconnect removes a link after confirmer approves DisconnectPrompt.
// A declined prompt sends nothing.
func (r *ExchangeRegistry) Disconnect(ctx context.Context, id domain.ID, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, DisconnectPrompt) {
		return ErrNotConfirmed
	}
	release, ok := r.guard.Acquire("disconnect:" + id.String())
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := r.api.DeleteExchange(ctx, id); err != nil {
		r.logger.Error("disconnect failed",
			zap.String(logger.FieldExchangeID, id.String()),
			zap.Error(err))
		return r.fail(ctx, code.ErrorExchangeDisconnectFailed, err)
	}
	r.FetchAll(ctx)
	return nil
}

func (r *ExchangeRegistry) fail(ctx context.Context, c *code.Code, cause error) error {
	r.alerter.Alert(ctx, c.Msg())
	return c.WithCause(cause)
}

// uniqueLinks keeps the last entry of each id
func uniqueLinks(list []*domain.ExchangeLink) []*domain.ExchangeLink {
	if len(list) == 0 {
		return nil
	}
	index := make(map[domain.ID]int, len(list))
	out := make([]*domain.ExchangeLink, 0, len(list))
	for _, l := range list {
		if l == nil {
			continue
		}
		if i, ok := index[l.ID]; ok {
			out[i] = l
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}
