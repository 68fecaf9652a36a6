package types

// PageStatus classifies the outcome of one navigation attempt.
type PageStatus string

const (
	// PageReady means the profile content rendered and is ready for extraction.
	PageReady PageStatus = "ready"
	// PageBlocked means the response matched a known block or challenge marker.
	PageBlocked PageStatus = "blocked"
	// PageNotFound means the target resolves to a removed or nonexistent profile.
	PageNotFound PageStatus = "not_found"
	// PageTransientError means a network-level failure (timeout, connection
	// reset) that may succeed on retry.
	PageTransientError PageStatus = "transient_error"
)

// PageState is the classified result of loading one target. Produced fresh per
// navigation attempt and never persisted. HTML is only populated when Ready;
// Reason only when Blocked or TransientError.
type PageState struct {
	Status PageStatus
	HTML   string
	Reason string
}

// ReadyPage wraps a rendered HTML snapshot.
func ReadyPage(html string) PageState {
	return PageState{Status: PageReady, HTML: html}
}

// BlockedPage reports a block/challenge interstitial.
func BlockedPage(reason string) PageState {
	return PageState{Status: PageBlocked, Reason: reason}
}

// NotFoundPage reports a missing profile.
func NotFoundPage() PageState {
	return PageState{Status: PageNotFound}
}

// TransientErrorPage reports a retryable network-level failure.
func TransientErrorPage(reason string) PageState {
	return PageState{Status: PageTransientError, Reason: reason}
}
