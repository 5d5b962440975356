// Package account keeps the signed-in writer's profile and usage counters.
package account

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotSignedIn is returned by operations that need a session.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrValidation wraps field validation failures.
	ErrValidation = errors.New("invalid account details")
	// ErrAccountExists is returned when registering an email twice.
	ErrAccountExists = errors.New("an account with this email already exists")
)

// SessionKey is the storage key of the signed-in account.
const SessionKey = "user"

const registryPrefix = "account:"

const memberSinceLayout = "January 2006"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscription is the account's plan.
type Subscription string

const (
	SubscriptionFree       Subscription = "Free"
	SubscriptionPro        Subscription = "Pro"
	SubscriptionEnterprise Subscription = "Enterprise"
)

// UsageStats counts what the writer has done with the tool.
type UsageStats struct {
	DocumentsCreated  int `json:"documentsCreated"`
	WordsAnalyzed     int `json:"wordsAnalyzed"`
	GrammarChecks     int `json:"grammarChecks"`
	StyleEnhancements int `json:"styleEnhancements"`
}

// Account is a registered writer.
type Account struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Location     string       `json:"location,omitempty"`
	MemberSince  string       `json:"memberSince"`
	Subscription Subscription `json:"subscription"`
	PasswordHash string       `json:"passwordHash,omitempty"`
	UsageStats   UsageStats   `json:"usageStats"`
}

// Registration is the sign-up form.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Location        string `json:"location"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// Validate checks the sign-up form.
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("please enter your name")),
		validation.Field(&r.Email,
			validation.Required.Error("please enter your email"),
			validation.Match(emailPattern).Error("please enter a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("please enter a password"),
			validation.RuneLength(8, 0).Error("password must be at least 8 characters long"),
		),
		validation.Field(&r.ConfirmPassword,
			validation.By(func(value interface{}) error {
				if value.(string) != r.Password {
					return errors.New("passwords do not match")
				}
				return nil
			}),
		),
		validation.Field(&r.AcceptTerms, validation.Required.Error("please accept the terms and conditions")),
	)
}

// Update is a partial profile change; nil fields are left alone.
type Update struct {
	Name     *string
	Email    *string
	Location *string
}

// Validate checks the fields being changed.
func (u Update) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.NilOrNotEmpty.Error("name must not be empty")),
		validation.Field(&u.Email,
			validation.NilOrNotEmpty.Error("email must not be empty"),
			validation.Match(emailPattern).Error("please enter a valid email address"),
		),
	)
}

// UsageDelta is added to the current usage counters.
type UsageDelta struct {
	DocumentsCreated  int
	WordsAnalyzed     int
	GrammarChecks     int
	StyleEnhancements int
}

func (s *UsageStats) add(d UsageDelta) {
	s.DocumentsCreated += d.DocumentsCreated
	s.WordsAnalyzed += d.WordsAnalyzed
	s.GrammarChecks += d.GrammarChecks
	s.StyleEnhancements += d.StyleEnhancements
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func registryKey(email string) string {
	return registryPrefix + normalizeEmail(email)
}
