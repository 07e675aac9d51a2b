package jooble

import (
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/normalize"
	"jobsearch-engine/internal/ingest/util"
)

// MapJob converts one Jooble result. Jooble mostly reports salary as free
// text ("$90,000 - $110,000"); structured salary_min/salary_max win when
// present.
func MapJob(raw util.Raw) domain.Job {
	id, _ := util.String(raw, "id")
	title, _ := util.String(raw, "title")
	company, _ := util.String(raw, "company")
	loc, _ := util.String(raw, "location")

	rj := normalize.RawJob{
		SourceID:        id,
		SourceName:      Label,
		Title:           title,
		CompanyName:     company,
		Location:        loc,
		Description:     util.FirstString(raw, "snippet", "description"),
		URL:             util.FirstString(raw, "link", "url"),
		PostedDate:      normalize.ParseDate(util.FirstString(raw, "updated", "date")),
		JobType:         util.FirstString(raw, "type"),
		ExperienceLevel: util.FirstString(raw, "experience"),
		Industry:        util.FirstString(raw, "category"),
	}

	remote, ok := util.Bool(raw, "remote")
	if !ok {
		remote = normalize.LooksRemote(loc)
	}
	rj.IsRemote = &remote

	minV, minOK := util.Number(raw, "salary_min")
	maxV, maxOK := util.Number(raw, "salary_max")
	switch {
	case minOK || maxOK:
		if minOK {
			rj.SalaryMin = util.Float(minV)
		}
		if maxOK {
			rj.SalaryMax = util.Float(maxV)
		}
		rj.SalaryCurrency = util.FirstString(raw, "salary_currency")
	default:
		if text, ok := util.String(raw, "salary"); ok {
			if s, ok := normalize.ParseSalaryText(text); ok {
				rj.SalaryMin, rj.SalaryMax, rj.SalaryCurrency = s.Min, s.Max, s.Currency
			}
		}
	}
	return normalize.Canonicalize(rj)
}
