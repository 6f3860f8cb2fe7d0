package results

import (
	"fmt"

	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/taxonomy"
)

// Fallback derives Count recommendations from the taxonomy alone. One domain
// yields its three careers; two domains yield a blended career and one per
// domain. Without domains the first required domains are used.
func Fallback(domains []evidence.Ranked) []Recommendation {
	var picked []taxonomy.Domain
	for _, r := range domains {
		if d, ok := taxonomy.ByKey(r.Key); ok {
			picked = append(picked, d)
		}
	}

	switch len(picked) {
	case 0:
		out := make([]Recommendation, 0, Count)
		for _, key := range taxonomy.Required()[:Count] {
			d, _ := taxonomy.ByKey(key)
			out = append(out, career(d, 0))
		}
		return out
	case 1:
		d := picked[0]
		return []Recommendation{career(d, 0), career(d, 1), career(d, 2)}
	default:
		a, b := picked[0], picked[1]
		blend := career(a, 0)
		blend.Title = fmt.Sprintf("%s con orientación en %s", a.Careers[0], b.Label)
		blend.Description = fmt.Sprintf("Combina %s y %s, tus dos áreas con más afinidad.", a.Label, b.Label)
		if len(b.Skills) > 0 {
			blend.Skills = append(blend.Skills, Skill{Name: b.Skills[0]})
		}
		return []Recommendation{blend, career(a, 1), career(b, 0)}
	}
}

func career(d taxonomy.Domain, i int) Recommendation {
	return Recommendation{
		Title:          d.Careers[i%len(d.Careers)],
		Description:    fmt.Sprintf("Opción del área de %s acorde con tus respuestas.", d.Label),
		Outcomes:       fmt.Sprintf("Desempeñarte profesionalmente en el sector de %s.", d.Sector),
		EducationLevel: d.EducationLevel,
		Sector:         d.Sector,
		Skills:         skills(d.Skills),
		StudyPaths:     append([]string(nil), d.StudyPaths...),
	}
}

func skills(names []string) []Skill {
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		out = append(out, Skill{Name: name})
	}
	return out
}
