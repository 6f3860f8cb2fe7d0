// Package prompt assembles the instructions sent to the text generator for
// every interview question and for the final recommendations.
package prompt

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/diversity"
	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/taxonomy"
)

//go:embed templates/*.md
var templates embed.FS

const (
	adultAge          = 18
	recentWindow      = 5
	topEvidence       = 5
	shortQuestionLen  = 8
	defaultQuestionMT = 1024
	defaultResultsMT  = 4096
)

var styleGuidance = map[string]string{
	StyleScenario:     "Plantea un escenario breve y concreto y pregunta cómo actuaría la persona.",
	StyleDirectChoice: "Haz una pregunta directa de elección entre actividades claramente distintas.",
	StyleHypothetical: "Usa una situación hipotética (\"si pudieras...\") que despierte la imaginación.",
	StyleEnvironment:  "Pregunta por el entorno: lugares, ambiente y personas con las que compartiría el día.",
	StyleTaskBased:    "Pregunta por tareas específicas que disfrutaría realizar.",
	StyleRoleBased:    "Pregunta qué papel tomaría dentro de un equipo o proyecto.",
}

// Regeneration describes a question the respondent rejected with the escape option.
type Regeneration struct {
	Text    string
	Options []string
	Type    string
}

// Input is everything the builder needs for one question.
type Input struct {
	// Step is 1-based.
	Step            int
	AgeYears        int
	DisplayName     string
	UserSummary     string
	LastQuestion    string
	LastAnswer      string
	Area            string
	SubArea         string
	Evidence        *evidence.Ledger
	Plan            diversity.Plan
	RecentQuestions []string
	Regenerate      *Regeneration
}

// Question is a built question prompt plus the decisions taken while building it.
type Question struct {
	Request        ai.Request
	Step           int
	Phase          int
	Style          string
	Image          bool
	Insight        bool
	Personalized   bool
	BannedOpenings []string
	Regenerate     *Regeneration
}

// Limits caps the generator output per request kind.
type Limits struct {
	QuestionMaxTokens int32 `mapstructure:"question-max-tokens"`
	ResultsMaxTokens  int32 `mapstructure:"results-max-tokens"`
}

// Builder renders prompts from the embedded templates.
type Builder struct {
	schedule Schedule
	limits   Limits
	tmpl     map[string]string
}

// New creates a Builder. Zero schedule or limit fields use the defaults.
func New(schedule Schedule, limits Limits) (*Builder, error) {
	if limits.QuestionMaxTokens <= 0 {
		limits.QuestionMaxTokens = defaultQuestionMT
	}
	if limits.ResultsMaxTokens <= 0 {
		limits.ResultsMaxTokens = defaultResultsMT
	}

	tmpl := make(map[string]string)
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read prompt templates: %w", err)
	}
	for _, entry := range entries {
		data, err := templates.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read prompt template %s: %w", entry.Name(), err)
		}
		tmpl[strings.TrimSuffix(entry.Name(), ".md")] = strings.TrimSpace(string(data))
	}

	return &Builder{schedule: schedule.withDefaults(), limits: limits, tmpl: tmpl}, nil
}

// Schedule returns the effective schedule.
func (b *Builder) Schedule() Schedule { return b.schedule }

// Build renders the prompt for in.Step.
func (b *Builder) Build(in Input) Question {
	step := in.Step
	q := Question{
		Step:           step,
		Phase:          b.schedule.PhaseFor(step),
		Style:          b.schedule.StyleFor(step),
		Insight:        b.schedule.Insight(step),
		Personalized:   b.schedule.Personalize(step) && strings.TrimSpace(in.DisplayName) != "",
		BannedOpenings: BannedOpenings(lastN(in.RecentQuestions, recentWindow)),
		Regenerate:     in.Regenerate,
	}
	q.Image = b.schedule.Image(step) || (in.Regenerate != nil && in.Regenerate.Type == "image")

	questionType := "text"
	if q.Image {
		questionType = "image"
	}
	insightHint := ""
	if q.Insight {
		insightHint = "una frase sobre lo que revela la fase anterior"
	}

	replacer := strings.NewReplacer(
		"{{STEP}}", strconv.Itoa(step),
		"{{TOTAL}}", strconv.Itoa(b.schedule.TotalQuestions),
		"{{PHASE}}", strconv.Itoa(q.Phase),
		"{{PHASE_GUIDANCE}}", b.tmpl["phase_"+strconv.Itoa(q.Phase)],
		"{{AGE_GUIDANCE}}", b.ageGuidance(in.AgeYears),
		"{{USER_SUMMARY}}", orDash(in.UserSummary),
		"{{LAST_EXCHANGE}}", lastExchange(in.LastQuestion, in.LastAnswer),
		"{{TAXONOMY}}", taxonomyLine(in.Area, in.SubArea),
		"{{EVIDENCE}}", evidenceBlock(in.Evidence),
		"{{DIVERSITY}}", diversityBlock(in.Plan),
		"{{STYLE}}", styleGuidance[q.Style],
		"{{BANNED_OPENINGS}}", bulletList(q.BannedOpenings),
		"{{DIRECTIVES}}", bulletList(b.directives(in, q)),
		"{{TYPE}}", questionType,
		"{{INSIGHT_HINT}}", insightHint,
	)

	q.Request = ai.Request{
		Kind:            ai.KindQuestion,
		System:          b.system(),
		Prompt:          replacer.Replace(b.tmpl["question"]),
		MaxOutputTokens: b.limits.QuestionMaxTokens,
	}

	return q
}

func (b *Builder) system() string {
	return strings.ReplaceAll(b.tmpl["system"], "{{TOTAL}}", strconv.Itoa(b.schedule.TotalQuestions))
}

func (b *Builder) ageGuidance(age int) string {
	if age > 0 && age < adultAge {
		return b.tmpl["age_minor"]
	}
	return b.tmpl["age_adult"]
}

func (b *Builder) directives(in Input, q Question) []string {
	var out []string

	if q.Personalized {
		out = append(out, fmt.Sprintf("Dirígete a la persona por su nombre, %s, de forma natural.", strings.TrimSpace(in.DisplayName)))
	}
	if q.Image {
		out = append(out, "Es una pregunta visual: ofrece 4 opciones muy cortas (máximo 4 palabras) que puedan representarse con una imagen.")
	}
	if q.Insight {
		out = append(out, "Incluye en \"insight\" una sola frase que resuma lo aprendido en la fase anterior.")
	}
	if in.Plan.AllowSpecialization && in.Area != "" {
		out = append(out, fmt.Sprintf("Puedes profundizar en %s.", in.Area))
	} else if len(in.Plan.Pending) > 0 {
		out = append(out, "Todavía no te especialices: prioriza uno de los dominios pendientes.")
	}
	if r := in.Regenerate; r != nil {
		out = append(out,
			fmt.Sprintf("La persona rechazó todas las opciones. Repite exactamente esta pregunta: %q", r.Text),
			"Genera 4 opciones completamente nuevas; ninguna puede repetir estas: "+strings.Join(r.Options, " | "),
		)
	}
	if len(out) == 0 {
		out = append(out, "Ninguna.")
	}

	return out
}

// BannedOpenings returns the opening words of each question: four words, or
// three for short questions.
func BannedOpenings(questions []string) []string {
	out := make([]string, 0, len(questions))
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		words := strings.Fields(q)
		if len(words) == 0 {
			continue
		}
		n := 4
		if len(words) < shortQuestionLen {
			n = 3
		}
		n = min(n, len(words))
		for i := range words[:n] {
			words[i] = strings.Trim(words[i], "¿¡?!.,;:\"")
		}
		opening := strings.TrimSpace(strings.Join(words[:n], " "))
		if opening == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(opening)]; dup {
			continue
		}
		seen[strings.ToLower(opening)] = struct{}{}
		out = append(out, opening)
	}
	return out
}

func evidenceBlock(l *evidence.Ledger) string {
	top := l.Top(topEvidence)
	if len(top) == 0 {
		return "- Sin evidencia todavía."
	}
	lines := make([]string, 0, len(top))
	for _, r := range top {
		lines = append(lines, fmt.Sprintf("- %s: %d", r.Label, r.Weight))
	}
	return strings.Join(lines, "\n")
}

func diversityBlock(p diversity.Plan) string {
	allowed := "no"
	if p.AllowSpecialization {
		allowed = "sí"
	}
	return strings.Join([]string{
		"Dominios requeridos: " + labels(p.Required),
		"Dominios cubiertos: " + labels(p.Covered),
		"Dominios pendientes: " + labels(p.Pending),
		"Especialización permitida: " + allowed,
	}, "\n")
}

func labels(keys []string) string {
	if len(keys) == 0 {
		return "ninguno"
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, taxonomy.Label(key))
	}
	return strings.Join(out, ", ")
}

func lastExchange(question, answer string) string {
	if strings.TrimSpace(question) == "" {
		return "-"
	}
	return fmt.Sprintf("%q -> %q", question, answer)
}

func taxonomyLine(area, subArea string) string {
	if area == "" {
		return "sin definir"
	}
	if subArea == "" {
		return area
	}
	return area + " / " + subArea
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- Ninguna."
	}
	return "- " + strings.Join(items, "\n- ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func lastN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
