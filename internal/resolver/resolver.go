// Package resolver decides when accumulated evidence is strong enough to fix
// the area, sub-area and role of a session.
package resolver

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/similarity"
	"github.com/spigell/orienta/internal/taxonomy"
)

// Stage is the position of a session in the area -> sub-area -> role path.
type Stage int

const (
	StageNone Stage = iota
	StageArea
	StageSubArea
	StageRole
)

func (s Stage) String() string {
	switch s {
	case StageArea:
		return "area"
	case StageSubArea:
		return "sub_area"
	case StageRole:
		return "role"
	default:
		return "none"
	}
}

// Thresholds are the tunable resolution rules. The defaults are empirical.
type Thresholds struct {
	MinWeight            int `mapstructure:"min-weight"`
	MinMargin            int `mapstructure:"min-margin"`
	AreaMinIndex         int `mapstructure:"area-min-index"`
	AreaFallbackIndex    int `mapstructure:"area-fallback-index"`
	SubAreaFallbackIndex int `mapstructure:"sub-area-fallback-index"`
	RoleFallbackIndex    int `mapstructure:"role-fallback-index"`
	FreeTextMinRunes     int `mapstructure:"free-text-min-runes"`
	FreeTextMaxRunes     int `mapstructure:"free-text-max-runes"`
}

// DefaultThresholds returns the stock resolution rules.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinWeight:            2,
		MinMargin:            1,
		AreaMinIndex:         5,
		AreaFallbackIndex:    19,
		SubAreaFallbackIndex: 10,
		RoleFallbackIndex:    15,
		FreeTextMinRunes:     5,
		FreeTextMaxRunes:     50,
	}
}

// State is the part of a session the resolver reads.
type State struct {
	CurrentIndex int
	Area         string
	SubArea      string
	Role         string
	Evidence     *evidence.Ledger
}

// Resolution is the outcome of TryResolve. Stage is StageNone when nothing
// new was resolved; otherwise the field of that stage carries the new value.
type Resolution struct {
	Stage    Stage
	Area     string
	SubArea  string
	Role     string
	Fallback bool
}

// Resolver applies Thresholds to a session State.
type Resolver struct {
	thresholds Thresholds
	logger     *zap.Logger
}

// New creates a Resolver. Zero thresholds are replaced by the defaults.
func New(t Thresholds, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{thresholds: withDefaults(t), logger: logger}
}

// TryResolve advances st by at most one stage, using the latest answer for
// the sub-area and role tables.
func (r *Resolver) TryResolve(st State, answer string) Resolution {
	var res Resolution
	switch {
	case st.Area == "":
		res = r.resolveArea(st)
	case st.SubArea == "":
		res = r.resolveSubArea(st, answer)
	case st.Role == "":
		res = r.resolveRole(st, answer)
	}

	if res.Stage != StageNone {
		r.logger.Info("taxonomy stage resolved",
			zap.String("stage", res.Stage.String()),
			zap.String("area", res.Area),
			zap.String("sub_area", res.SubArea),
			zap.String("role", res.Role),
			zap.Bool("fallback", res.Fallback),
			zap.Int("current_index", st.CurrentIndex),
		)
	}

	return res
}

func (r *Resolver) resolveArea(st State) Resolution {
	t := r.thresholds
	if st.CurrentIndex < t.AreaMinIndex || st.Evidence == nil {
		return Resolution{}
	}

	ranking := st.Evidence.Ranking()
	if len(ranking) == 0 {
		return Resolution{}
	}

	top := ranking[0]
	second := 0
	if len(ranking) > 1 {
		second = ranking[1].Weight
	}

	if top.Weight < t.MinWeight {
		return Resolution{}
	}

	if top.Weight-second >= t.MinMargin {
		return Resolution{Stage: StageArea, Area: top.Label}
	}

	if st.CurrentIndex >= t.AreaFallbackIndex {
		return Resolution{Stage: StageArea, Area: top.Label, Fallback: true}
	}

	return Resolution{}
}

func (r *Resolver) resolveSubArea(st State, answer string) Resolution {
	if domain, ok := taxonomy.ByLabel(st.Area); ok {
		text := similarity.Normalize(answer)
		for _, sub := range domain.SubAreas {
			if containsAny(text, sub.Keywords) {
				return Resolution{Stage: StageSubArea, SubArea: sub.Name}
			}
		}
	}

	if st.CurrentIndex >= r.thresholds.SubAreaFallbackIndex {
		if free, ok := r.freeText(answer); ok {
			return Resolution{Stage: StageSubArea, SubArea: free, Fallback: true}
		}
	}

	return Resolution{}
}

func (r *Resolver) resolveRole(st State, answer string) Resolution {
	if domain, ok := taxonomy.ByLabel(st.Area); ok {
		if sub, ok := domain.SubArea(st.SubArea); ok {
			text := similarity.Normalize(answer)
			for _, role := range sub.Roles {
				if containsAny(text, role.Keywords) {
					return Resolution{Stage: StageRole, Role: role.Name}
				}
			}
		}
	}

	if st.CurrentIndex >= r.thresholds.RoleFallbackIndex {
		if free, ok := r.freeText(answer); ok {
			return Resolution{Stage: StageRole, Role: free, Fallback: true}
		}
	}

	return Resolution{}
}

// freeText turns a short specific answer into a label.
func (r *Resolver) freeText(answer string) (string, bool) {
	answer = strings.Join(strings.Fields(answer), " ")
	answer = strings.TrimRight(answer, ".!¡?¿,;: ")
	n := utf8.RuneCountInString(answer)
	if n < r.thresholds.FreeTextMinRunes || n > r.thresholds.FreeTextMaxRunes {
		return "", false
	}
	if taxonomy.IsNonCommittal(answer) || taxonomy.IsEscape(answer) {
		return "", false
	}

	first, size := utf8.DecodeRuneInString(answer)
	return string(unicode.ToUpper(first)) + answer[size:], true
}

func containsAny(normalizedText string, keywords []string) bool {
	for _, kw := range keywords {
		if kw = similarity.Normalize(kw); kw != "" && strings.Contains(normalizedText, kw) {
			return true
		}
	}
	return false
}

func withDefaults(t Thresholds) Thresholds {
	d := DefaultThresholds()
	if t.MinWeight <= 0 {
		t.MinWeight = d.MinWeight
	}
	if t.MinMargin <= 0 {
		t.MinMargin = d.MinMargin
	}
	if t.AreaMinIndex <= 0 {
		t.AreaMinIndex = d.AreaMinIndex
	}
	if t.AreaFallbackIndex <= 0 {
		t.AreaFallbackIndex = d.AreaFallbackIndex
	}
	if t.SubAreaFallbackIndex <= 0 {
		t.SubAreaFallbackIndex = d.SubAreaFallbackIndex
	}
	if t.RoleFallbackIndex <= 0 {
		t.RoleFallbackIndex = d.RoleFallbackIndex
	}
	if t.FreeTextMinRunes <= 0 {
		t.FreeTextMinRunes = d.FreeTextMinRunes
	}
	if t.FreeTextMaxRunes <= 0 {
		t.FreeTextMaxRunes = d.FreeTextMaxRunes
	}
	return t
}
