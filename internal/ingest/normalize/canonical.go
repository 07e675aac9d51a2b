package normalize

import (
	"time"

	"jobsearch-engine/internal/domain"
)

// RawJob carries the fields a source mapper pulled out of an upstream
// record, before any cleaning.
type RawJob struct {
	SourceID    string
	SourceName  string
	Title       string
	CompanyName string
	Location    string
	IsRemote    *bool
	// Description may be HTML; Canonicalize converts it to text once.
	Description string
	URL         string

	PostedDate     *time.Time
	ExpirationDate *time.Time

	SalaryMin      *float64
	SalaryMax      *float64
	SalaryCurrency string

	JobType         string
	ExperienceLevel string
	Industry        string

	// Skills is a structured skill list from the source. When empty, skills
	// are extracted from the title and description.
	Skills []string
}

// Canonicalize applies the shared cleaning pipeline and returns a complete
// canonical record.
func Canonicalize(raw RawJob) domain.Job {
	company := NormalizeCase(CleanWhitespace(raw.CompanyName))

	desc := HTMLText(raw.Description)
	skills := CanonicalSkills(raw.Skills)
	if len(skills) == 0 {
		skills = ExtractSkills(raw.Title + " " + desc)
	}

	return domain.Job{
		SourceID:              CleanWhitespace(raw.SourceID),
		SourceName:            CleanWhitespace(raw.SourceName),
		Title:                 NormalizeCase(CleanWhitespace(raw.Title)),
		CompanyName:           company,
		NormalizedCompanyName: NormalizeCompanyName(company),
		Location:              ParseLocation(raw.Location),
		IsRemote:              raw.IsRemote,
		Description:           desc,
		URL:                   CleanWhitespace(raw.URL),
		PostedDate:            raw.PostedDate,
		ExpirationDate:        raw.ExpirationDate,
		SalaryMin:             raw.SalaryMin,
		SalaryMax:             raw.SalaryMax,
		SalaryCurrency:        CleanWhitespace(raw.SalaryCurrency),
		JobType:               CleanWhitespace(raw.JobType),
		ExperienceLevel:       CleanWhitespace(raw.ExperienceLevel),
		Industry:              CleanWhitespace(raw.Industry),
		Skills:                skills,
	}
}
