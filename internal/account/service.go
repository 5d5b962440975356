package account

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Backend is the key-value store accounts persist to.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHashCost sets the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

// Service manages registration, sign-in and the current session.
type Service struct {
	backend  Backend
	logger   *log.Logger
	now      func() time.Time
	hashCost int

	mu      sync.Mutex
	current *Account
}

// NewService creates a signed-out Service. Call Load to restore a session.
func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		logger:   log.New(io.Discard),
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the saved session. A missing or corrupt session leaves the
// service signed out.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	raw, ok, err := s.backend.Get(ctx, SessionKey)
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if !ok {
		return nil
	}

	var acct Account
	if err := json.Unmarshal([]byte(raw), &acct); err != nil || acct.Email == "" {
		s.logger.Warn("ignoring unreadable session", "error", err)
		return nil
	}
	s.current = &acct
	s.logger.Debug("session restored", "email", acct.Email)
	return nil
}

// Current returns the signed-in account without its password hash.
func (s *Service) Current() (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Account{}, false
	}
	acct := *s.current
	acct.PasswordHash = ""
	return acct, true
}

// Register creates a Free account and signs it in.
func (s *Service) Register(ctx context.Context, reg Registration) (Account, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := reg.Validate(); err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.backend.Get(ctx, registryKey(reg.Email))
	if err != nil {
		return Account{}, fmt.Errorf("checking existing account: %w", err)
	}
	if exists {
		return Account{}, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.hashCost)
	if err != nil {
		return Account{}, fmt.Errorf("hashing password: %w", err)
	}

	location := strings.TrimSpace(reg.Location)
	if location == "" {
		location = "Unknown"
	}
	acct := &Account{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		Location:     location,
		MemberSince:  s.now().Format(memberSinceLayout),
		Subscription: SubscriptionFree,
		PasswordHash: string(hash),
	}
	if err := s.save(ctx, acct); err != nil {
		return Account{}, err
	}
	s.current = acct
	s.logger.Info("account registered", "email", acct.Email)
	return s.snapshot(), nil
}

// Login signs in a registered account.
func (s *Service) Login(ctx context.Context, email, password string) (Account, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return Account{}, fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	}
	if password == "" {
		return Account{}, fmt.Errorf("%w: please enter your password", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.backend.Get(ctx, registryKey(email))
	if err != nil {
		return Account{}, fmt.Errorf("reading account: %w", err)
	}
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	var acct Account
	if err := json.Unmarshal([]byte(raw), &acct); err != nil {
		return Account{}, fmt.Errorf("decoding account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	if err := s.writeJSON(ctx, SessionKey, &acct); err != nil {
		return Account{}, err
	}
	s.current = &acct
	s.logger.Info("signed in", "email", acct.Email)
	return s.snapshot(), nil
}

// Logout ends the session. Registered accounts are kept.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	s.current = nil
	return nil
}

// Update changes the name, email or location of the signed-in account.
func (s *Service) Update(ctx context.Context, upd Update) (Account, error) {
	if err := upd.Validate(); err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Account{}, ErrNotSignedIn
	}
	next := *s.current
	if upd.Name != nil {
		next.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Location != nil {
		next.Location = strings.TrimSpace(*upd.Location)
	}

	oldKey := registryKey(next.Email)
	if upd.Email != nil && normalizeEmail(*upd.Email) != normalizeEmail(next.Email) {
		_, taken, err := s.backend.Get(ctx, registryKey(*upd.Email))
		if err != nil {
			return Account{}, fmt.Errorf("checking existing account: %w", err)
		}
		if taken {
			return Account{}, ErrAccountExists
		}
		next.Email = strings.TrimSpace(*upd.Email)
	}

	if err := s.save(ctx, &next); err != nil {
		return Account{}, err
	}
	if newKey := registryKey(next.Email); newKey != oldKey {
		if err := s.backend.Remove(ctx, oldKey); err != nil {
			s.logger.Warn("removing old account entry", "key", oldKey, "error", err)
		}
	}
	s.current = &next
	return s.snapshot(), nil
}

// RecordUsage adds delta to the signed-in account's counters.
func (s *Service) RecordUsage(ctx context.Context, delta UsageDelta) (UsageStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return UsageStats{}, ErrNotSignedIn
	}
	next := *s.current
	next.UsageStats.add(delta)
	if err := s.save(ctx, &next); err != nil {
		return s.current.UsageStats, err
	}
	s.current = &next
	return next.UsageStats, nil
}

// save writes the account entry and the session. Caller holds mu.
func (s *Service) save(ctx context.Context, acct *Account) error {
	if err := s.writeJSON(ctx, registryKey(acct.Email), acct); err != nil {
		return err
	}
	return s.writeJSON(ctx, SessionKey, acct)
}

func (s *Service) writeJSON(ctx context.Context, key string, acct *Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encoding account: %w", err)
	}
	if err := s.backend.Set(ctx, key, string(data)); err != nil {
		s.logger.Error("saving account", "key", key, "error", err)
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

func (s *Service) snapshot() Account {
	acct := *s.current
	acct.PasswordHash = ""
	return acct
}
