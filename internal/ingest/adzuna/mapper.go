package adzuna

import (
	"strings"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/normalize"
	"jobsearch-engine/internal/ingest/util"
)

// MapJob converts one Adzuna result. Salary figures are structured numbers
// in the currency of the queried country.
func MapJob(raw util.Raw, currency string) domain.Job {
	id, _ := util.String(raw, "id")
	title, _ := util.String(raw, "title")
	title = normalize.StripHTMLTags(title)
	desc, _ := util.String(raw, "description")
	company, _ := util.String(raw, "company", "display_name")
	link, _ := util.String(raw, "redirect_url")
	created, _ := util.String(raw, "created")
	category, _ := util.String(raw, "category", "label")

	loc := location(raw)
	remote := normalize.LooksRemote(loc, title)

	rj := normalize.RawJob{
		SourceID:    id,
		SourceName:  Label,
		Title:       title,
		CompanyName: company,
		Location:    loc,
		IsRemote:    &remote,
		Description: desc,
		URL:         link,
		PostedDate:  normalize.ParseDate(created),
		JobType:     jobType(raw),
		Industry:    category,
	}
	if v, ok := util.Number(raw, "salary_min"); ok {
		rj.SalaryMin = util.Float(v)
	}
	if v, ok := util.Number(raw, "salary_max"); ok {
		rj.SalaryMax = util.Float(v)
	}
	if rj.SalaryMin != nil || rj.SalaryMax != nil {
		rj.SalaryCurrency = currency
	}
	return normalize.Canonicalize(rj)
}

// location prefers the structured area list (country, state, ..., city)
// over display_name, which drops the country.
func location(raw util.Raw) string {
	area, _ := util.Strings(raw, "location", "area")
	if len(area) >= 3 {
		return strings.Join([]string{area[len(area)-1], area[1], area[0]}, ", ")
	}
	name, _ := util.String(raw, "location", "display_name")
	return name
}

func jobType(raw util.Raw) string {
	var parts []string
	for _, k := range []string{"contract_time", "contract_type"} {
		if v, ok := util.String(raw, k); ok && v != "" {
			parts = append(parts, strings.ReplaceAll(v, "_", "-"))
		}
	}
	return strings.Join(parts, ", ")
}
