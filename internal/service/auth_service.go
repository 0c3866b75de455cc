package service

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/app"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"go.uber.org/zap"
)

// Session describes the stored token. Claims are read without verifying the
// signature; Opaque is true when the token is not a readable JWT.
type Session struct {
	Token     string
	Subject   string
	Nickname  string
	Email     string
	ExpiresAt *time.Time
	Opaque    bool
}

// Expired 是否已过期，无过期时间的 Token 视为未过期
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// AuthService 登录状态服务接口
type AuthService interface {
	// Login stores token under the token key and copies the nickname and
	// email claims into the profile when present.
	Login(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context) error
	// Token returns the stored token, "" when logged out
	Token(ctx context.Context) (string, error)
	Session(ctx context.Context) (*Session, bool, error)
}

type authService struct {
	repo   domain.PreferenceRepository
	prefs  PreferenceService
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(repo domain.PreferenceRepository, prefs PreferenceService, lg *zap.Logger) AuthService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &authService{repo: repo, prefs: prefs, logger: lg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, code.ErrorTokenEmpty
	}
	if err := s.repo.Set(ctx, domain.PrefKeyToken, token); err != nil {
		return nil, code.ErrorPreferenceSave.WithCause(err)
	}

	sess := inspect(token)
	if sess.Opaque {
		s.logger.Debug("stored opaque token")
		return sess, nil
	}
	if sess.Expired(s.now()) {
		s.logger.Warn("stored token is already expired", zap.Timep("expiresAt", sess.ExpiresAt))
	}
	if s.prefs != nil && (sess.Nickname != "" || sess.Email != "") {
		if err := s.prefs.SetProfile(ctx, domain.Profile{Name: sess.Nickname, Email: sess.Email}); err != nil {
			return sess, err
		}
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx, domain.PrefKeyToken); err != nil {
		return code.ErrorPreferenceSave.WithCause(err)
	}
	return nil
}

func (s *authService) Token(ctx context.Context) (string, error) {
	v, _, err := s.repo.Get(ctx, domain.PrefKeyToken)
	return v, err
}

func (s *authService) Session(ctx context.Context) (*Session, bool, error) {
	token, err := s.Token(ctx)
	if err != nil || token == "" {
		return nil, false, err
	}
	return inspect(token), true, nil
}

func inspect(token string) *Session {
	sess := &Session{Token: token}
	claims, err := app.ParseUnverified(token)
	if err != nil {
		sess.Opaque = true
		return sess
	}
	sess.Subject = claims.Subject
	sess.Nickname = claims.Nickname
	sess.Email = claims.Email
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		sess.ExpiresAt = &t
	}
	return sess
}
