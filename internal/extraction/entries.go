package extraction

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/profile-harvester/internal/types"
)

// entrySelectors describes one layout of a multi-entry section: a container,
// the repeated item inside it, and the key/value elements inside each item.
type entrySelectors struct {
	name      string
	container string
	item      string
	key       string
	value     string
	// valueRequired drops entries whose value element is missing instead of
	// recording them with an empty value.
	valueRequired bool
}

// entriesStrategy collapses each item to a key→value pair. When two items
// collapse to the same key (duplicate organization names, say) the later item
// overwrites the earlier one; that policy is deliberate and deterministic.
func entriesStrategy(sel entrySelectors) Strategy[map[string]string] {
	return Strategy[map[string]string]{
		Name: sel.name,
		Locate: func(doc *goquery.Document) (map[string]string, bool, error) {
			section := doc.Find(sel.container).First()
			if section.Length() == 0 {
				return nil, false, nil
			}
			entries := map[string]string{}
			section.Find(sel.item).Each(func(_ int, item *goquery.Selection) {
				key := cleanText(item.Find(sel.key).First().Text())
				if key == "" {
					return
				}
				valueEl := item.Find(sel.value).First()
				if sel.valueRequired && valueEl.Length() == 0 {
					return
				}
				entries[key] = cleanText(valueEl.Text())
			})
			return entries, len(entries) > 0, nil
		},
	}
}

var experienceStrategies = []Strategy[map[string]string]{
	entriesStrategy(entrySelectors{
		name:          "experience-section",
		container:     "#experience-section",
		item:          "li.pv-entity__position-group-pager",
		key:           ".pv-entity__secondary-title",
		value:         ".pv-entity__primary-title",
		valueRequired: true,
	}),
	entriesStrategy(entrySelectors{
		name:          "experience-list",
		container:     "section#experience",
		item:          "li.experience-item",
		key:           ".experience-item__subtitle",
		value:         ".experience-item__title",
		valueRequired: true,
	}),
}

var educationStrategies = []Strategy[map[string]string]{
	entriesStrategy(entrySelectors{
		name:      "education-section",
		container: "#education-section",
		item:      "li.pv-education-entity",
		key:       ".pv-entity__school-name",
		value:     ".pv-entity__degree-name .pv-entity__comma-item",
	}),
	entriesStrategy(entrySelectors{
		name:      "education-list",
		container: "section#education",
		item:      "li.education__list-item",
		key:       ".education__item-school",
		value:     ".education__item-degree",
	}),
}

var certificationStrategies = []Strategy[map[string]string]{
	entriesStrategy(entrySelectors{
		name:          "certifications-section",
		container:     "#certifications-section",
		item:          "li.pv-certification-entity",
		key:           ".pv-certification-entity__issuer",
		value:         ".pv-certification-name",
		valueRequired: true,
	}),
}

var projectStrategies = []Strategy[map[string]string]{
	entriesStrategy(entrySelectors{
		name:      "projects-section",
		container: "#projects-section",
		item:      "li.pv-accomplishment-entity",
		key:       ".pv-accomplishment-entity__title",
		value:     ".pv-accomplishment-entity__description",
	}),
}

// ExtractExperience returns organization→role pairs.
func ExtractExperience(doc *goquery.Document) types.SectionResult[map[string]string] {
	return Cascade(doc, experienceStrategies)
}

// ExtractEducation returns institution→degree pairs. The degree may be empty
// when the page lists a school without one.
func ExtractEducation(doc *goquery.Document) types.SectionResult[map[string]string] {
	return Cascade(doc, educationStrategies)
}

// ExtractCertifications returns issuer→title pairs.
func ExtractCertifications(doc *goquery.Document) types.SectionResult[map[string]string] {
	return Cascade(doc, certificationStrategies)
}

// ExtractProjects returns title→description pairs.
func ExtractProjects(doc *goquery.Document) types.SectionResult[map[string]string] {
	return Cascade(doc, projectStrategies)
}
