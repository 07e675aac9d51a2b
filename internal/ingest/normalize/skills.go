package normalize

import (
	"regexp"
	"sort"
	"strings"
)

type skillAlias struct {
	skill   string
	aliases []string
}

// Lowercase mentions per canonical skill. Very short or ambiguous words
// (go, r, c) are left out on purpose; "golang" covers Go.
var skillTable = []skillAlias{
	{"JavaScript", []string{"javascript", "js", "ecmascript"}},
	{"TypeScript", []string{"typescript", "ts"}},
	{"React", []string{"react", "reactjs", "react.js"}},
	{"Redux", []string{"redux"}},
	{"Node.js", []string{"node", "nodejs", "node.js"}},
	{"Vue.js", []string{"vue", "vuejs", "vue.js"}},
	{"Angular", []string{"angular", "angularjs"}},
	{"Next.js", []string{"next.js", "nextjs"}},
	{"Svelte", []string{"svelte"}},
	{"HTML", []string{"html", "html5"}},
	{"CSS", []string{"css", "css3"}},
	{"TailwindCSS", []string{"tailwind", "tailwindcss"}},
	{"Sass", []string{"sass", "scss"}},
	{"GraphQL", []string{"graphql"}},
	{"Python", []string{"python"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"FastAPI", []string{"fastapi"}},
	{"Java", []string{"java"}},
	{"Spring Boot", []string{"spring boot"}},
	{"Kotlin", []string{"kotlin"}},
	{"Scala", []string{"scala"}},
	{"Go", []string{"golang"}},
	{"Rust", []string{"rust"}},
	{"Ruby", []string{"ruby"}},
	{"Ruby on Rails", []string{"rails", "ruby on rails"}},
	{"PHP", []string{"php"}},
	{"Laravel", []string{"laravel"}},
	{"C#", []string{"c#", "csharp"}},
	{"C++", []string{"c++", "cpp"}},
	{".NET", []string{".net", "dotnet"}},
	{"Swift", []string{"swift"}},
	{"SQL", []string{"sql"}},
	{"PostgreSQL", []string{"postgresql", "postgres"}},
	{"MySQL", []string{"mysql"}},
	{"MongoDB", []string{"mongodb"}},
	{"Redis", []string{"redis"}},
	{"Elasticsearch", []string{"elasticsearch"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"GCP", []string{"gcp", "google cloud"}},
	{"Azure", []string{"azure"}},
	{"Docker", []string{"docker"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"Terraform", []string{"terraform"}},
	{"Ansible", []string{"ansible"}},
	{"Linux", []string{"linux"}},
	{"Git", []string{"git"}},
	{"Jenkins", []string{"jenkins"}},
	{"CI/CD", []string{"ci/cd"}},
	{"Kafka", []string{"kafka"}},
	{"Spark", []string{"spark"}},
	{"TensorFlow", []string{"tensorflow"}},
	{"PyTorch", []string{"pytorch"}},
	{"Machine Learning", []string{"machine learning"}},
	{"Figma", []string{"figma"}},
	{"Jest", []string{"jest"}},
}

type skillMatcher struct {
	re    *regexp.Regexp
	skill string
}

var (
	skillByAlias  = map[string]string{}
	skillMatchers []skillMatcher
)

func init() {
	for _, row := range skillTable {
		for _, alias := range row.aliases {
			skillByAlias[alias] = row.skill
			pat := `(?:^|[^a-z0-9_])` + regexp.QuoteMeta(alias) + `s?(?:[^a-z0-9_]|$)`
			skillMatchers = append(skillMatchers, skillMatcher{re: regexp.MustCompile(pat), skill: row.skill})
		}
	}
}

// ExtractSkills returns the sorted set of canonical skills mentioned in text.
// The result is never nil.
func ExtractSkills(text string) []string {
	low := strings.ToLower(text)
	if strings.TrimSpace(low) == "" {
		return []string{}
	}
	seen := map[string]bool{}
	for _, m := range skillMatchers {
		if !seen[m.skill] && m.re.MatchString(low) {
			seen[m.skill] = true
		}
	}
	return sortedSet(seen)
}

// CanonicalSkills cleans a structured skill list (tags) from a source.
// Known aliases map to their canonical names; other entries are kept as
// cleaned text.
func CanonicalSkills(tags []string) []string {
	seen := map[string]bool{}
	for _, t := range tags {
		t = CleanWhitespace(t)
		if t == "" {
			continue
		}
		if skill, ok := skillByAlias[strings.ToLower(t)]; ok {
			seen[skill] = true
			continue
		}
		seen[t] = true
	}
	return sortedSet(seen)
}

func sortedSet(seen map[string]bool) []string {
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
