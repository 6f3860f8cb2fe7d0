package prompt

import (
	"fmt"
	"strings"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/evidence"
)

// ResultsInput is the profile summary used for the final recommendations.
type ResultsInput struct {
	Area        string
	SubArea     string
	Role        string
	UserSummary string
	Skills      []string
	// Domains holds the one or two leading domains.
	Domains []evidence.Ranked
}

// BuildResults renders the recommendations prompt. With two domains the
// generator is asked for one blended and one specific entry per domain.
func (b *Builder) BuildResults(in ResultsInput) ai.Request {
	domainLines := make([]string, 0, len(in.Domains))
	for _, d := range in.Domains {
		domainLines = append(domainLines, fmt.Sprintf("- %s (peso %d)", d.Label, d.Weight))
	}

	var strategy string
	switch len(in.Domains) {
	case 0:
		strategy = "- No hay evidencia suficiente: propone 3 carreras versátiles y distintas entre sí."
	case 1:
		strategy = fmt.Sprintf("- Las 3 recomendaciones deben pertenecer a %s, con enfoques distintos.", in.Domains[0].Label)
	default:
		a, c := in.Domains[0].Label, in.Domains[1].Label
		strategy = fmt.Sprintf("- Una recomendación debe combinar %s y %s; otra debe ser específica de %s y la última específica de %s.", a, c, a, c)
	}

	skills := "-"
	if len(in.Skills) > 0 {
		skills = strings.Join(in.Skills, ", ")
	}

	replacer := strings.NewReplacer(
		"{{AREA}}", orDash(in.Area),
		"{{SUB_AREA}}", orDash(in.SubArea),
		"{{ROLE}}", orDash(in.Role),
		"{{USER_SUMMARY}}", orDash(in.UserSummary),
		"{{SKILLS}}", skills,
		"{{DOMAINS}}", orDash(strings.Join(domainLines, "\n")),
		"{{STRATEGY}}", strategy,
	)

	return ai.Request{
		Kind:            ai.KindRecommendations,
		System:          b.system(),
		Prompt:          replacer.Replace(b.tmpl["results"]),
		MaxOutputTokens: b.limits.ResultsMaxTokens,
	}
}
