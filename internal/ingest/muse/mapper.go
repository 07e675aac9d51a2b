package muse

import (
	"strings"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/normalize"
	"jobsearch-engine/internal/ingest/util"
)

// MapJob converts one Muse result. contents is a full HTML document and
// the listing carries no salary.
func MapJob(raw util.Raw) domain.Job {
	id, _ := util.String(raw, "id")
	title, _ := util.String(raw, "name")
	contents, _ := util.String(raw, "contents")
	company, _ := util.String(raw, "company", "name")
	landing, _ := util.String(raw, "refs", "landing_page")
	published, _ := util.String(raw, "publication_date")

	var locNames []string
	for _, l := range util.Objects(raw, "locations") {
		if n := util.FirstString(l, "name"); n != "" {
			locNames = append(locNames, n)
		}
	}
	remote := false
	for _, n := range locNames {
		low := strings.ToLower(n)
		if strings.Contains(low, "remote") || strings.Contains(low, "flexible") {
			remote = true
			break
		}
	}
	loc := ""
	if len(locNames) > 0 {
		loc = locNames[0]
	}

	return normalize.Canonicalize(normalize.RawJob{
		SourceID:        id,
		SourceName:      Label,
		Title:           title,
		CompanyName:     company,
		Location:        loc,
		IsRemote:        &remote,
		Description:     contents,
		URL:             landing,
		PostedDate:      normalize.ParseDate(published),
		ExperienceLevel: firstName(raw, "levels"),
		Industry:        firstName(raw, "categories"),
	})
}

func firstName(raw util.Raw, key string) string {
	for _, obj := range util.Objects(raw, key) {
		if n := util.FirstString(obj, "name"); n != "" {
			return n
		}
	}
	return ""
}
