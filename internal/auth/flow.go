// Package auth drives the Codewars login protocols against a browser session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/browser"
	"github.com/jonathan/codewars-scraper/internal/types"
)

// Endpoints are the URLs the login flows visit.
type Endpoints struct {
	BaseURL           string
	SignInPath        string
	VerifiedDeviceURL string
}

// DefaultEndpoints returns the production Codewars and GitHub URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		BaseURL:           "https://www.codewars.com",
		SignInPath:        "/users/sign_in",
		VerifiedDeviceURL: "https://github.com/sessions/verified-device",
	}
}

// URL joins path onto the base URL.
func (e Endpoints) URL(path string) string {
	return strings.TrimSuffix(e.BaseURL, "/") + path
}

// Selectors are the form fields each flow fills in.
type Selectors struct {
	CodewarsEmail    string
	CodewarsPassword string
	CodewarsSubmit   string
	GitHubSignIn     string
	GitHubLogin      string
	GitHubPassword   string
	GitHubSubmit     string
	OTPField         string
	OTPSubmit        string
}

// DefaultSelectors returns the selectors for the live sign-in pages.
func DefaultSelectors() Selectors {
	return Selectors{
		CodewarsEmail:    "#user_email",
		CodewarsPassword: "#user_password",
		CodewarsSubmit:   `#new_user button[type="submit"]`,
		GitHubSignIn:     `button[data-action="auth#githubSignIn"]`,
		GitHubLogin:      "#login_field",
		GitHubPassword:   "#password",
		GitHubSubmit:     `#login input[type="submit"]`,
		OTPField:         "#otp",
		OTPSubmit:        "#login button",
	}
}

// Result describes how a login went.
type Result struct {
	Mode        types.AuthMode
	Transitions []State
	FinalURL    string
	// SecondFactor is true when a verification code was requested and submitted.
	SecondFactor bool
}

// Final returns the last state reached.
func (r *Result) Final() State {
	if len(r.Transitions) == 0 {
		return StateAwaitingPrimaryAuth
	}
	return r.Transitions[len(r.Transitions)-1]
}

// Flow authenticates a session. One attempt, no retries.
type Flow struct {
	Endpoints Endpoints
	Selectors Selectors
	// Classify picks the state after primary credentials are submitted.
	// Defaults to ExactURLClassifier(Endpoints.VerifiedDeviceURL).
	Classify Classifier
	Resolver ChallengeResolver
	Logger   *zap.Logger
}

// NewFlow returns a Flow with production endpoints and selectors.
func NewFlow(resolver ChallengeResolver, logger *zap.Logger) *Flow {
	return &Flow{
		Endpoints: DefaultEndpoints(),
		Selectors: DefaultSelectors(),
		Resolver:  resolver,
		Logger:    logger,
	}
}

func (f *Flow) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

// Authenticate signs in with creds using the protocol their mode selects.
func (f *Flow) Authenticate(ctx context.Context, s browser.Session, creds types.Credentials) (*Result, error) {
	result := &Result{Mode: creds.Mode, Transitions: []State{StateAwaitingPrimaryAuth}}

	var err error
	switch creds.Mode {
	case types.ModeCodewars:
		err = f.codewars(ctx, s, creds, result)
	case types.ModeGitHub:
		err = f.github(ctx, s, creds, result)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", creds.Mode)
	}
	if err != nil {
		return result, err
	}

	if url, urlErr := s.CurrentURL(ctx); urlErr == nil {
		result.FinalURL = url
	}
	f.logger().Info("authentication complete",
		zap.String("mode", creds.Mode.String()),
		zap.Bool("second_factor", result.SecondFactor),
		zap.String("url", result.FinalURL))
	return result, nil
}

func (f *Flow) transition(result *Result, next State) {
	from := result.Final()
	result.Transitions = append(result.Transitions, next)
	f.logger().Info("auth state", zap.Stringer("from", from), zap.Stringer("to", next))
}

func (f *Flow) codewars(ctx context.Context, s browser.Session, creds types.Credentials, result *Result) error {
	log := f.logger()
	signIn := f.Endpoints.URL(f.Endpoints.SignInPath)

	log.Debug("opening sign-in page", zap.String("url", signIn))
	if err := s.Navigate(ctx, signIn, browser.WaitDOMContentLoaded); err != nil {
		return wrap("open sign-in page", err)
	}
	if err := s.TypeInto(ctx, f.Selectors.CodewarsEmail, creds.Email); err != nil {
		return wrap("enter email", err)
	}
	if err := s.TypeInto(ctx, f.Selectors.CodewarsPassword, creds.Password); err != nil {
		return wrap("enter password", err)
	}
	if err := s.Click(ctx, f.Selectors.CodewarsSubmit); err != nil {
		return wrap("submit credentials", err)
	}
	// A sign-in that does not navigate still counts as submitted.
	if err := s.WaitForNavigationSettle(ctx, browser.WaitLoad); err != nil {
		var timeout *browser.NavigationTimeoutError
		if !errors.As(err, &timeout) || ctx.Err() != nil {
			return wrap("wait for sign-in", err)
		}
		log.Warn("no navigation after codewars sign-in submit; continuing", zap.Error(err))
	}

	log.Warn("codewars sign-in submitted; login success is not verified")
	f.transition(result, StateAuthenticated)
	return nil
}

func (f *Flow) github(ctx context.Context, s browser.Session, creds types.Credentials, result *Result) error {
	log := f.logger()
	signIn := f.Endpoints.URL(f.Endpoints.SignInPath)

	log.Debug("opening sign-in page", zap.String("url", signIn))
	if err := s.Navigate(ctx, signIn, browser.WaitDOMContentLoaded); err != nil {
		return wrap("open sign-in page", err)
	}
	if err := s.Click(ctx, f.Selectors.GitHubSignIn); err != nil {
		return wrap("choose github sign-in", err)
	}
	if err := s.WaitForNavigationSettle(ctx, browser.WaitNetworkIdle); err != nil {
		return wrap("wait for github sign-in page", err)
	}
	if err := s.TypeInto(ctx, f.Selectors.GitHubLogin, creds.Email); err != nil {
		return wrap("enter github login", err)
	}
	if err := s.TypeInto(ctx, f.Selectors.GitHubPassword, creds.Password); err != nil {
		return wrap("enter github password", err)
	}
	if err := s.Click(ctx, f.Selectors.GitHubSubmit); err != nil {
		return wrap("submit github credentials", err)
	}
	if err := s.WaitForNavigationSettle(ctx, browser.WaitNetworkIdle); err != nil {
		return wrap("wait for github sign-in", err)
	}

	current, err := s.CurrentURL(ctx)
	if err != nil {
		return wrap("read post-login URL", err)
	}

	classify := f.Classify
	if classify == nil {
		classify = ExactURLClassifier(f.Endpoints.VerifiedDeviceURL)
	}
	next := classify(current)
	log.Debug("post-login URL classified", zap.String("url", current), zap.Stringer("state", next))
	f.transition(result, next)

	if next != StateAwaitingSecondFactor {
		return nil
	}
	if err := f.secondFactor(ctx, s, creds); err != nil {
		return err
	}
	result.SecondFactor = true
	f.transition(result, StateAuthenticated)
	return nil
}

func (f *Flow) secondFactor(ctx context.Context, s browser.Session, creds types.Credentials) error {
	if f.Resolver == nil {
		return &AuthenticationError{Kind: KindSecondFactorFailed, Step: "resolve verification code",
			Cause: fmt.Errorf("no challenge resolver configured")}
	}

	challenge := types.SecondFactorChallenge{
		PromptMessage: fmt.Sprintf("Please enter the verification code that was sent to %s:", creds.Email),
	}
	code, err := f.Resolver.Resolve(ctx, challenge)
	if err != nil {
		return &AuthenticationError{Kind: KindSecondFactorFailed, Step: "resolve verification code", Cause: err}
	}

	if err := s.TypeInto(ctx, f.Selectors.OTPField, code); err != nil {
		return wrap("enter verification code", err)
	}
	if err := s.Click(ctx, f.Selectors.OTPSubmit); err != nil {
		return wrap("submit verification code", err)
	}
	if err := s.WaitForNavigationSettle(ctx, browser.WaitNetworkIdle); err != nil {
		return wrap("wait for device verification", err)
	}
	return nil
}
