package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

// ErrInvalidTheme faqat "light" yoki "dark"
var ErrInvalidTheme = errors.New("theme must be light or dark")

type demoAccount struct {
	password string
	user     entity.User
}

// Demo akkauntlar. Haqiqiy autentifikatsiya yo'q.
var demoAccounts = map[string]demoAccount{
	"admin@ecommerce.com": {
		password: "admin123",
		user:     entity.User{ID: 1, Name: "Admin User", Email: "admin@ecommerce.com", Role: entity.RoleAdmin},
	},
	"customer@ecommerce.com": {
		password: "customer123",
		user:     entity.User{ID: 2, Name: "Customer User", Email: "customer@ecommerce.com", Role: entity.RoleCustomer},
	},
}

// Session joriy foydalanuvchi va mavzu. "user" va "theme" kalitlarida saqlanadi.
type Session struct {
	mu    sync.Mutex
	kv    repository.KVStore
	log   logrus.FieldLogger
	user  *entity.User
	theme entity.Theme
}

// NewSession saqlangan sessiya va mavzuni yuklash
func NewSession(ctx context.Context, kv repository.KVStore, log logrus.FieldLogger) (*Session, error) {
	s := &Session{
		kv:    kv,
		log:   log.WithField("store", repository.KeyUser),
		theme: entity.ThemeLight,
	}

	raw, err := kv.Read(ctx, repository.KeyUser)
	switch {
	case err == nil:
		var u entity.User
		if err := json.UnmarshalFromString(raw, &u); err != nil {
			s.log.WithError(err).Warn("stored user is unreadable, starting logged out")
		} else {
			s.user = &u
		}
	case !errors.Is(err, repository.ErrKeyNotFound):
		return nil, errors.Wrap(err, "failed to read user")
	}

	rawTheme, err := kv.Read(ctx, repository.KeyTheme)
	switch {
	case err == nil:
		if t := entity.Theme(rawTheme); t.Valid() {
			s.theme = t
		}
	case !errors.Is(err, repository.ErrKeyNotFound):
		return nil, errors.Wrap(err, "failed to read theme")
	}

	return s, nil
}

// Login demo akkaunt bilan kirish. Email kichik harfga o'tkaziladi, parol aynan solishtiriladi.
// Noto'g'ri ma'lumot xato emas, false qaytaradi.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	account, ok := demoAccounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok || account.password != password {
		return false, nil
	}

	raw, err := json.MarshalToString(account.user)
	if err != nil {
		return false, errors.Wrap(err, "failed to encode user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Write(ctx, repository.KeyUser, raw); err != nil {
		return false, errors.Wrap(err, "failed to save user")
	}
	u := account.user
	s.user = &u
	return true, nil
}

// Logout sessiyani tugatish va "user" kalitini o'chirish
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, repository.KeyUser); err != nil {
		return errors.Wrap(err, "failed to remove user")
	}
	s.user = nil
	return nil
}

// Current joriy foydalanuvchi
func (s *Session) Current() (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return entity.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated foydalanuvchi kirganmi
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// IsAdmin admin ekanligini tekshirish
func (s *Session) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.IsAdmin()
}

// Theme joriy mavzu
func (s *Session) Theme() entity.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme
}

// SetTheme mavzuni o'rnatish va saqlash
func (s *Session) SetTheme(ctx context.Context, theme entity.Theme) error {
	if !theme.Valid() {
		return errors.Wrapf(ErrInvalidTheme, "got %q", theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Write(ctx, repository.KeyTheme, string(theme)); err != nil {
		return errors.Wrap(err, "failed to save theme")
	}
	s.theme = theme
	return nil
}

// ToggleTheme light <-> dark
func (s *Session) ToggleTheme(ctx context.Context) (entity.Theme, error) {
	next := entity.ThemeDark
	if s.Theme() == entity.ThemeDark {
		next = entity.ThemeLight
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}
