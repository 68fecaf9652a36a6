package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/profile-harvester/internal/types"
)

// textStrategy extracts the trimmed text of the first element matching
// selector, reporting absence when nothing matches or the text is empty.
func textStrategy(name, selector string) Strategy[string] {
	return Strategy[string]{
		Name: name,
		Locate: func(doc *goquery.Document) (string, bool, error) {
			sel := doc.Find(selector).First()
			if sel.Length() == 0 {
				return "", false, nil
			}
			text := cleanText(sel.Text())
			return text, text != "", nil
		},
	}
}

var nameStrategies = []Strategy[string]{
	textStrategy("top-card", ".pv-top-card .text-heading-xlarge"),
	textStrategy("top-card-layout", ".top-card-layout__title"),
	textStrategy("heading", "main h1"),
}

var bioStrategies = []Strategy[string]{
	textStrategy("top-card", ".pv-top-card .text-body-medium"),
	textStrategy("top-card-layout", ".top-card-layout__headline"),
}

// ExtractName returns the profile's display name.
func ExtractName(doc *goquery.Document) types.SectionResult[string] {
	return Cascade(doc, nameStrategies)
}

// ExtractBio returns the profile's headline/bio line.
func ExtractBio(doc *goquery.Document) types.SectionResult[string] {
	return Cascade(doc, bioStrategies)
}

// socialLabels maps an href fragment to the label the link files under. The
// order matters: the first matching fragment wins for a given link.
var socialLabels = []struct {
	fragment string
	label    string
	useHref  bool
}{
	{"twitter", "Twitter", false},
	{"github", "GitHub", false},
	{"facebook", "Facebook", false},
	{"instagram", "Instagram", false},
	{"website", "Website", true},
	{"portfolio", "Website", true},
}

// socialsStrategy classifies contact-info links by their destination. Links
// pointing at platforms we do not recognize are skipped.
func socialsStrategy(name, selector string) Strategy[map[string]string] {
	return Strategy[map[string]string]{
		Name: name,
		Locate: func(doc *goquery.Document) (map[string]string, bool, error) {
			links := doc.Find(selector)
			if links.Length() == 0 {
				return nil, false, nil
			}
			socials := map[string]string{}
			links.Each(func(_ int, link *goquery.Selection) {
				href, ok := link.Attr("href")
				if !ok || href == "" {
					return
				}
				lower := strings.ToLower(href)
				for _, c := range socialLabels {
					if strings.Contains(lower, c.fragment) {
						if c.useHref {
							socials[c.label] = href
						} else {
							socials[c.label] = cleanText(link.Text())
						}
						break
					}
				}
			})
			return socials, len(socials) > 0, nil
		},
	}
}

var socialsStrategies = []Strategy[map[string]string]{
	socialsStrategy("contact-info", ".pv-contact-info__contact-type a"),
	socialsStrategy("websites-overlay", "section.ci-websites a"),
}

// ExtractSocials returns the profile's social links keyed by platform label.
func ExtractSocials(doc *goquery.Document) types.SectionResult[map[string]string] {
	return Cascade(doc, socialsStrategies)
}
