package remotive

import (
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/normalize"
	"jobsearch-engine/internal/ingest/util"
)

// MapJob converts one Remotive job. Every Remotive listing is remote, and
// its tags are used as the skill list.
func MapJob(raw util.Raw) domain.Job {
	id, _ := util.String(raw, "id")
	title, _ := util.String(raw, "title")
	company, _ := util.String(raw, "company_name")
	desc, _ := util.String(raw, "description")
	link, _ := util.String(raw, "url")
	tags, _ := util.Strings(raw, "tags")

	remote := true
	rj := normalize.RawJob{
		SourceID:    id,
		SourceName:  Label,
		Title:       title,
		CompanyName: company,
		Location:    util.FirstString(raw, "candidate_required_location"),
		IsRemote:    &remote,
		Description: desc,
		URL:         link,
		PostedDate:  normalize.ParseDate(util.FirstString(raw, "publication_date")),
		JobType:     util.FirstString(raw, "job_type"),
		Industry:    util.FirstString(raw, "category"),
		Skills:      tags,
	}
	if text, ok := util.String(raw, "salary"); ok {
		if s, ok := normalize.ParseSalaryText(text); ok {
			rj.SalaryMin, rj.SalaryMax, rj.SalaryCurrency = s.Min, s.Max, s.Currency
		}
	}
	return normalize.Canonicalize(rj)
}
