// Package navigation loads targets in the authenticated session and
// classifies what came back. Classification outcomes are ordinary values,
// never errors; only a dead browser propagates as an error.
package navigation

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/profile-harvester/internal/types"
)

// readyMarkers are structural elements that only render on a usable profile.
const readyMarkers = ".pv-top-card, .top-card-layout"

// blockMarkers identify challenge/verification interstitials.
const blockMarkers = "#captcha-internal, form#challenge, .challenge-dialog"

// notFoundMarkers identify removed or nonexistent profiles.
const notFoundMarkers = ".profile-unavailable, .not-found-404"

// Classify inspects a rendered HTML snapshot and decides the page state.
// Pages showing neither a readiness marker nor a recognized terminal marker
// classify as TransientError so the caller keeps polling until its deadline.
func Classify(html string) types.PageState {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.TransientErrorPage("unparseable page: " + err.Error())
	}

	if doc.Find(readyMarkers).Length() > 0 {
		return types.ReadyPage(html)
	}

	if doc.Find(blockMarkers).Length() > 0 {
		return types.BlockedPage("challenge page served")
	}
	title := strings.ToLower(doc.Find("title").Text())
	if strings.Contains(title, "security verification") {
		return types.BlockedPage("security verification page served")
	}
	if strings.Contains(title, "sign in") || doc.Find(".authwall").Length() > 0 {
		return types.BlockedPage("redirected to login wall")
	}

	if doc.Find(notFoundMarkers).Length() > 0 || strings.Contains(title, "page not found") {
		return types.NotFoundPage()
	}

	return types.TransientErrorPage("profile content never rendered")
}
