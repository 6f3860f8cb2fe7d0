package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// QuestionPayload is the expected shape of a generated question.
type QuestionPayload struct {
	Text      string   `json:"text" validate:"required"`
	Options   []string `json:"options" validate:"min=2,dive,required"`
	DomainTag string   `json:"domainTag"`
	Type      string   `json:"type" validate:"omitempty,oneof=text image"`
	Reasoning string   `json:"reasoning"`
	Insight   string   `json:"insight"`
}

// RecommendationPayload is one generated recommendation.
type RecommendationPayload struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Outcomes       string   `json:"outcomes"`
	EducationLevel string   `json:"educationLevel"`
	Sector         string   `json:"sector"`
	Skills         []string `json:"skills"`
	StudyPaths     []string `json:"studyPaths"`
}

// RecommendationsPayload is the expected shape of generated results.
type RecommendationsPayload struct {
	Recommendations []RecommendationPayload `json:"recommendations" validate:"min=1,dive"`
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// ParseQuestion decodes and validates a generated question. Any failure wraps
// ErrMalformed.
func ParseQuestion(raw string) (*QuestionPayload, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	// Some models wrap the object in a "question" key.
	if inner, ok := data["question"].(map[string]any); ok {
		data = inner
	}

	q := &QuestionPayload{
		Text:      firstString(data, "text", "question", "pregunta"),
		Options:   coerceStrings(firstValue(data, "options", "opciones")),
		DomainTag: firstString(data, "domainTag", "domain_tag", "domain"),
		Type:      strings.ToLower(firstString(data, "type")),
		Reasoning: firstString(data, "reasoning", "explanation"),
		Insight:   firstString(data, "insight"),
	}

	if err := getValidator().Struct(q); err != nil {
		return nil, fmt.Errorf("%w: question: %v", ErrMalformed, err)
	}

	return q, nil
}

// ParseRecommendations decodes and validates generated recommendations.
// Any failure wraps ErrMalformed.
func ParseRecommendations(raw string) (*RecommendationsPayload, error) {
	cleaned := extractJSON(raw)

	var items []any
	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	} else {
		data, err := decodeObject(cleaned)
		if err != nil {
			return nil, err
		}
		list, ok := firstValue(data, "recommendations", "recomendaciones", "careers").([]any)
		if !ok {
			return nil, fmt.Errorf("%w: recommendations list is missing", ErrMalformed)
		}
		items = list
	}

	payload := &RecommendationsPayload{}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: recommendation is not an object", ErrMalformed)
		}
		payload.Recommendations = append(payload.Recommendations, RecommendationPayload{
			Title:          firstString(obj, "title", "titulo"),
			Description:    firstString(obj, "description", "descripcion"),
			Outcomes:       joinedString(firstValue(obj, "outcomes", "salidas")),
			EducationLevel: firstString(obj, "educationLevel", "education_level"),
			Sector:         firstString(obj, "sector"),
			Skills:         coerceStrings(firstValue(obj, "skills", "habilidades")),
			StudyPaths:     coerceStrings(firstValue(obj, "studyPaths", "study_paths")),
		})
	}

	if err := getValidator().Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: recommendations: %v", ErrMalformed, err)
	}

	return payload, nil
}

func decodeObject(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty output", ErrMalformed)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: null object", ErrMalformed)
	}

	return data, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func firstValue(data map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(data map[string]any, keys ...string) string {
	return coerceString(firstValue(data, keys...))
}

// coerceStrings accepts a list of strings, a list of objects carrying a text
// or label field, or a single string.
func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			var s string
			if obj, ok := item.(map[string]any); ok {
				s = firstString(obj, "text", "label", "name", "option")
			} else {
				s = coerceString(item)
			}
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

func joinedString(v any) string {
	if list, ok := v.([]any); ok {
		return strings.Join(coerceStrings(list), "; ")
	}
	return coerceString(v)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if math.Trunc(val) == val {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
