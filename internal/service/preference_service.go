package service

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/eventbus"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"go.uber.org/zap"
)

// CurrencyChanged carries the new currency after every SetCurrency
var CurrencyChanged = eventbus.NewTopic[domain.Currency]("currencyChanged")

// PreferenceService 偏好设置服务接口
type PreferenceService interface {
	// Currency returns the stored currency, DefaultCurrency when none
	Currency(ctx context.Context) domain.Currency
	// SetCurrency persists c and then broadcasts CurrencyChanged
	SetCurrency(ctx context.Context, c domain.Currency) error
	SubscribeCurrency(fn func(domain.Currency)) *eventbus.Subscription
	Profile(ctx context.Context) domain.Profile
	SetProfile(ctx context.Context, p domain.Profile) error
}

type preferenceService struct {
	repo   domain.PreferenceRepository
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewPreferenceService(repo domain.PreferenceRepository, bus *eventbus.Bus, lg *zap.Logger) PreferenceService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if bus == nil {
		bus = eventbus.New(lg)
	}
	return &preferenceService{repo: repo, bus: bus, logger: lg}
}

// get returns "" for absent keys and for read errors
func (s *preferenceService) get(ctx context.Context, key string) string {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read preference", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *preferenceService) Currency(ctx context.Context) domain.Currency {
	v := s.get(ctx, domain.PrefKeyCurrency)
	if v == "" {
		return domain.DefaultCurrency
	}
	c, ok := domain.ParseCurrency(v)
	if !ok {
		s.logger.Warn("ignoring unsupported stored currency", zap.String(logger.FieldCurrency, v))
		return domain.DefaultCurrency
	}
	return c
}

func (s *preferenceService) SetCurrency(ctx context.Context, c domain.Currency) error {
	if !c.IsSupported() {
		return code.ErrorCurrencyUnsupported.WithDetails(string(c))
	}
	if err := s.repo.Set(ctx, domain.PrefKeyCurrency, string(c)); err != nil {
		return code.ErrorPreferenceSave.WithCause(err)
	}
	n := eventbus.Publish(s.bus, CurrencyChanged, c)
	s.logger.Debug("currency changed",
		zap.String(logger.FieldCurrency, string(c)),
		zap.Int(logger.FieldCount, n))
	return nil
}

func (s *preferenceService) SubscribeCurrency(fn func(domain.Currency)) *eventbus.Subscription {
	return eventbus.Subscribe(s.bus, CurrencyChanged, fn)
}

// Profile falls back to the defaults for missing or empty values
func (s *preferenceService) Profile(ctx context.Context) domain.Profile {
	p := domain.DefaultProfile()
	if v := s.get(ctx, domain.PrefKeyUserName); v != "" {
		p.Name = v
	}
	if v := s.get(ctx, domain.PrefKeyUserEmail); v != "" {
		p.Email = v
	}
	return p
}

// SetProfile 保存非空字段
func (s *preferenceService) SetProfile(ctx context.Context, p domain.Profile) error {
	if p.Name != "" {
		if err := s.repo.Set(ctx, domain.PrefKeyUserName, p.Name); err != nil {
			return code.ErrorPreferenceSave.WithCause(err)
		}
	}
	if p.Email != "" {
		if err := s.repo.Set(ctx, domain.PrefKeyUserEmail, p.Email); err != nil {
			return code.ErrorPreferenceSave.WithCause(err)
		}
	}
	return nil
}
