package usajobs

import (
	"fmt"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/normalize"
	"jobsearch-engine/internal/ingest/util"
)

// MapJob converts one SearchResultItems entry. Salary ranges come as
// numeric strings in USD.
func MapJob(item util.Raw) domain.Job {
	d, _ := util.Object(item, "MatchedObjectDescriptor")

	id := util.FirstString(item, "MatchedObjectId")
	if id == "" {
		id = util.FirstString(d, "PositionID")
	}
	company := util.FirstString(d, "OrganizationName", "DepartmentName")

	desc, _ := util.String(d, "UserArea", "Details", "JobSummary")
	if desc == "" {
		desc = util.FirstString(d, "QualificationSummary")
	}
	remote, _ := util.Bool(d, "UserArea", "Details", "RemoteIndicator")

	rj := normalize.RawJob{
		SourceID:        id,
		SourceName:      Label,
		Title:           util.FirstString(d, "PositionTitle"),
		CompanyName:     company,
		Location:        util.FirstString(d, "PositionLocationDisplay"),
		IsRemote:        &remote,
		Description:     desc,
		URL:             util.FirstString(d, "PositionURI"),
		PostedDate:      normalize.ParseDate(util.FirstString(d, "PublicationStartDate")),
		ExpirationDate:  normalize.ParseDate(util.FirstString(d, "ApplicationCloseDate")),
		JobType:         firstName(d, "PositionSchedule"),
		ExperienceLevel: grade(d),
		Industry:        firstName(d, "JobCategory"),
	}
	if pay := util.Objects(d, "PositionRemuneration"); len(pay) > 0 {
		if v, ok := util.Number(pay[0], "MinimumRange"); ok {
			rj.SalaryMin = util.Float(v)
		}
		if v, ok := util.Number(pay[0], "MaximumRange"); ok {
			rj.SalaryMax = util.Float(v)
		}
		if rj.SalaryMin != nil || rj.SalaryMax != nil {
			rj.SalaryCurrency = "USD"
		}
	}
	return normalize.Canonicalize(rj)
}

func firstName(d util.Raw, key string) string {
	for _, obj := range util.Objects(d, key) {
		if n := util.FirstString(obj, "Name"); n != "" {
			return n
		}
	}
	return ""
}

// grade renders the pay plan and grade band, e.g. "GS 12-13".
func grade(d util.Raw) string {
	plans := util.Objects(d, "JobGrade")
	if len(plans) == 0 {
		return ""
	}
	code := util.FirstString(plans[0], "Code")
	low, _ := util.String(d, "UserArea", "Details", "LowGrade")
	high, _ := util.String(d, "UserArea", "Details", "HighGrade")
	switch {
	case code == "":
		return ""
	case low != "" && high != "" && low != high:
		return fmt.Sprintf("%s %s-%s", code, low, high)
	case low != "":
		return fmt.Sprintf("%s %s", code, low)
	}
	return code
}
