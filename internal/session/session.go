// Package session owns the one authenticated browser context used for a whole
// batch. Login is attempted exactly once: a rejected credential or a blocked
// login page is not transient, so there is no retry, and without a session no
// target can be processed.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Credentials identify the account the batch browses as.
type Credentials struct {
	Identifier string
	Secret     string
}

// AuthenticationError is the only fatal error in the pipeline: it aborts the
// batch because nothing can be scraped without a live session.
type AuthenticationError struct {
	Message string
	Cause   error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("authentication error: %s", e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// Options configures how the browser is launched and where login happens.
type Options struct {
	LoginURL     string
	Headless     bool
	LoginTimeout time.Duration
}

// DefaultOptions returns the launch configuration used by the CLI.
func DefaultOptions() Options {
	return Options{
		LoginURL:     "https://www.linkedin.com/login",
		Headless:     true,
		LoginTimeout: 30 * time.Second,
	}
}

// Session is one authenticated browsing context. It is owned by its creator
// and must be released with Close on every exit path, including early aborts.
type Session struct {
	ctx           context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
}

// loginReadyMarker appears on the landing feed once login completes.
const loginReadyMarker = ".feed-identity-module"

// Open launches a browser, performs login, and returns the live session.
// On any login failure the browser is torn down and an *AuthenticationError
// is returned.
func Open(ctx context.Context, creds Credentials, opts Options) (*Session, error) {
	if creds.Identifier == "" || creds.Secret == "" {
		return nil, &AuthenticationError{Message: "missing credentials"}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-notifications", true),
			chromedp.Flag("disable-popup-blocking", true),
			chromedp.WindowSize(1920, 1080),
		)...,
	)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	sess := &Session{
		ctx:           browserCtx,
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
	}

	if err := sess.login(creds, opts); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// login submits the credential form and waits for the landing feed marker.
func (s *Session) login(creds Credentials, opts Options) error {
	loginCtx, cancel := context.WithTimeout(s.ctx, opts.LoginTimeout)
	defer cancel()

	err := chromedp.Run(loginCtx,
		chromedp.Navigate(opts.LoginURL),
		chromedp.WaitVisible("#username"),
		chromedp.SendKeys("#username", creds.Identifier),
		chromedp.SendKeys("#password", creds.Secret),
		chromedp.Click(`button[type="submit"]`),
		chromedp.WaitVisible(loginReadyMarker),
	)
	if err != nil {
		return &AuthenticationError{Message: "login did not complete", Cause: err}
	}
	return nil
}

// Context returns the browser tab context navigation runs against.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Dead reports whether the underlying browser is gone (crashed or closed).
func (s *Session) Dead() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// Close tears the browser down. Safe to call more than once.
func (s *Session) Close() {
	if s.browserCancel != nil {
		s.browserCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
}
