package navigation

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-harvester/internal/session"
	"github.com/jonathan/profile-harvester/internal/types"
)

// Options bounds every wait the navigator performs. All suspension points are
// finite: readiness polling, the settle delay, and the single retry backoff.
type Options struct {
	// BaseURL resolves relative targets such as "/in/alice".
	BaseURL string
	// ReadyTimeout bounds how long one attempt waits for a readiness marker.
	ReadyTimeout time.Duration
	// PollInterval is the pause between readiness checks.
	PollInterval time.Duration
	// SettleDelay is the pause after the readiness marker appears, giving
	// late scripts a chance to fill the expanded sections.
	SettleDelay time.Duration
	// RetryBackoff is the pause before the one retry after a transient error.
	RetryBackoff time.Duration
}

// DefaultOptions returns the timings used by the CLI.
func DefaultOptions() Options {
	return Options{
		BaseURL:      "https://www.linkedin.com",
		ReadyTimeout: 10 * time.Second,
		PollInterval: 500 * time.Millisecond,
		SettleDelay:  2 * time.Second,
		RetryBackoff: 5 * time.Second,
	}
}

// fatalError marks an unrecoverable driver fault (the browser itself is gone).
type fatalError struct {
	cause error
}

func (e *fatalError) Error() string {
	return fmt.Sprintf("browser session lost: %v", e.cause)
}

func (e *fatalError) Unwrap() error { return e.cause }

// Navigator drives one session's tab to target pages. It only ever issues
// navigation requests against the session; it never mutates it.
type Navigator struct {
	sess *session.Session
	opts Options
	log  *logrus.Entry

	// attemptFn performs one navigation attempt. Tests substitute it to
	// exercise the retry policy without a browser.
	attemptFn func(ctx context.Context, target string) (types.PageState, error)
}

// New returns a navigator bound to sess.
func New(sess *session.Session, opts Options, log *logrus.Entry) *Navigator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	n := &Navigator{sess: sess, opts: opts, log: log}
	n.attemptFn = n.attempt
	return n
}

// Load navigates to target and classifies the outcome. Blocked and NotFound
// are returned as-is (retrying a block tends to worsen it); a transient error
// is retried exactly once after a short backoff. The returned error is non-nil
// only for an unrecoverable driver-level fault.
func (n *Navigator) Load(ctx context.Context, target string) (types.PageState, error) {
	state, err := n.attemptFn(ctx, target)
	if err != nil {
		return state, err
	}
	if state.Status != types.PageTransientError {
		return state, nil
	}

	n.log.WithFields(logrus.Fields{
		"target": target,
		"reason": state.Reason,
	}).Warn("transient navigation error, retrying once")

	select {
	case <-time.After(n.opts.RetryBackoff):
	case <-ctx.Done():
		return types.TransientErrorPage(ctx.Err().Error()), nil
	}
	return n.attemptFn(ctx, target)
}

// attempt performs one navigation and bounded readiness poll.
func (n *Navigator) attempt(ctx context.Context, target string) (types.PageState, error) {
	if n.sess.Dead() {
		return types.TransientErrorPage("browser closed"), &fatalError{cause: n.sess.Context().Err()}
	}

	pageURL, err := n.resolve(target)
	if err != nil {
		// A malformed target can never load; not worth a retry.
		return types.NotFoundPage(), nil
	}

	attemptCtx, cancel := context.WithTimeout(n.sess.Context(), n.opts.ReadyTimeout+n.opts.SettleDelay+10*time.Second)
	defer cancel()

	if err := chromedp.Run(attemptCtx, chromedp.Navigate(pageURL)); err != nil {
		return n.classifyDriverError(err)
	}

	deadline := time.Now().Add(n.opts.ReadyTimeout)
	var state types.PageState
	for {
		var html string
		if err := chromedp.Run(attemptCtx, chromedp.OuterHTML("html", &html)); err != nil {
			return n.classifyDriverError(err)
		}
		state = Classify(html)
		if state.Status != types.PageTransientError {
			break
		}
		if time.Now().After(deadline) {
			return state, nil
		}
		select {
		case <-time.After(n.opts.PollInterval):
		case <-attemptCtx.Done():
			return types.TransientErrorPage(attemptCtx.Err().Error()), nil
		}
	}

	if state.Status != types.PageReady {
		return state, nil
	}

	// Expand collapsed sections before taking the final snapshot, the way a
	// reader would click every "show more".
	n.expandSections(attemptCtx)

	var html string
	if err := chromedp.Run(attemptCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return n.classifyDriverError(err)
	}
	return types.ReadyPage(html), nil
}

// expandSections best-effort clicks the inline expanders and the contact-info
// overlay, then lets the page settle. Nothing here may fail the attempt.
func (n *Navigator) expandSections(ctx context.Context) {
	_ = chromedp.Run(ctx,
		chromedp.Evaluate(`document.querySelectorAll(".pv-profile-section__see-more-inline").forEach(b => b.click())`, nil),
		chromedp.Evaluate(`(() => { const a = document.querySelector(".pv-top-card--list-bullet a"); if (a) a.click(); })()`, nil),
	)
	select {
	case <-time.After(n.opts.SettleDelay):
	case <-ctx.Done():
	}
}

// classifyDriverError separates a dead browser (fatal) from a failed request
// (transient).
func (n *Navigator) classifyDriverError(err error) (types.PageState, error) {
	if n.sess.Dead() {
		return types.TransientErrorPage("browser closed"), &fatalError{cause: err}
	}
	return types.TransientErrorPage(err.Error()), nil
}

// resolve joins relative targets onto the configured base URL.
func (n *Navigator) resolve(target string) (string, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return target, nil
	}
	base, err := url.Parse(n.opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid base URL %q", n.opts.BaseURL)
	}
	return base.ResolveReference(ref).String(), nil
}
