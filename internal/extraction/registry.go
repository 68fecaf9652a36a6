package extraction

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/profile-harvester/internal/types"
)

// Canonical section names, in the order they run and serialize.
const (
	SectionName           = "name"
	SectionBio            = "bio"
	SectionSocials        = "socials"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
)

// Verdict is the untyped summary of one section's extraction, used for
// logging and status aggregation after the value has been stored on the
// record.
type Verdict struct {
	Section string
	Status  types.SectionStatus
	Reason  string
}

// ExtractAll runs every section extractor against the same parsed snapshot
// and fills rec in place. Extractors never see each other's output and none
// re-navigates; identical documents always produce identical records.
func ExtractAll(doc *goquery.Document, rec *types.ProfileRecord) []Verdict {
	verdicts := make([]Verdict, 0, 7)

	name := ExtractName(doc)
	if name.IsPresent() {
		rec.Name = name.Value
	}
	verdicts = append(verdicts, Verdict{SectionName, name.Status, name.Reason})

	bio := ExtractBio(doc)
	if bio.IsPresent() {
		rec.Bio = bio.Value
	}
	verdicts = append(verdicts, Verdict{SectionBio, bio.Status, bio.Reason})

	for _, section := range []struct {
		name    string
		extract func(*goquery.Document) types.SectionResult[map[string]string]
		dest    map[string]string
	}{
		{SectionSocials, ExtractSocials, rec.Socials},
		{SectionExperience, ExtractExperience, rec.Experience},
		{SectionEducation, ExtractEducation, rec.Education},
		{SectionCertifications, ExtractCertifications, rec.Certifications},
		{SectionProjects, ExtractProjects, rec.Projects},
	} {
		result := section.extract(doc)
		if result.IsPresent() {
			for k, v := range result.Value {
				section.dest[k] = v
			}
		}
		verdicts = append(verdicts, Verdict{section.name, result.Status, result.Reason})
	}

	return verdicts
}
