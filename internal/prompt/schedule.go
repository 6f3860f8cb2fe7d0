package prompt

import "slices"

// PhaseRange maps an inclusive range of 1-based step numbers to a phase.
type PhaseRange struct {
	Number int `mapstructure:"number"`
	From   int `mapstructure:"from"`
	To     int `mapstructure:"to"`
}

// Schedule is the declarative per-step configuration of the interview.
type Schedule struct {
	TotalQuestions   int          `mapstructure:"total-questions"`
	Phases           []PhaseRange `mapstructure:"phases"`
	PersonalizeSteps []int        `mapstructure:"personalize-steps"`
	ImageSteps       []int        `mapstructure:"image-steps"`
	InsightSteps     []int        `mapstructure:"insight-steps"`
	Styles           []string     `mapstructure:"styles"`
}

// DefaultSchedule returns the stock 20-step, four-phase schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		TotalQuestions: 20,
		Phases: []PhaseRange{
			{Number: 1, From: 1, To: 5},
			{Number: 2, From: 6, To: 10},
			{Number: 3, From: 11, To: 15},
			{Number: 4, From: 16, To: 20},
		},
		PersonalizeSteps: []int{3, 7, 12, 16, 19},
		ImageSteps:       []int{2, 10, 20},
		InsightSteps:     []int{6, 11, 16},
		Styles: []string{
			StyleScenario, StyleDirectChoice, StyleHypothetical,
			StyleEnvironment, StyleTaskBased, StyleRoleBased,
		},
	}
}

const (
	StyleScenario     = "scenario"
	StyleDirectChoice = "direct_choice"
	StyleHypothetical = "hypothetical"
	StyleEnvironment  = "environment"
	StyleTaskBased    = "task_based"
	StyleRoleBased    = "role_based"
)

// withDefaults fills the zero parts of s from DefaultSchedule.
func (s Schedule) withDefaults() Schedule {
	d := DefaultSchedule()
	if s.TotalQuestions <= 0 {
		s.TotalQuestions = d.TotalQuestions
	}
	if len(s.Phases) == 0 {
		s.Phases = d.Phases
	}
	if s.PersonalizeSteps == nil {
		s.PersonalizeSteps = d.PersonalizeSteps
	}
	if s.ImageSteps == nil {
		s.ImageSteps = d.ImageSteps
	}
	if s.InsightSteps == nil {
		s.InsightSteps = d.InsightSteps
	}
	if len(s.Styles) == 0 {
		s.Styles = d.Styles
	}
	return s
}

// PhaseFor returns the phase of a 1-based step. Steps past the last range
// belong to the last phase.
func (s Schedule) PhaseFor(step int) int {
	for _, p := range s.Phases {
		if step >= p.From && step <= p.To {
			return p.Number
		}
	}
	if len(s.Phases) == 0 {
		return 1
	}
	if step < s.Phases[0].From {
		return s.Phases[0].Number
	}
	return s.Phases[len(s.Phases)-1].Number
}

// StyleFor rotates deterministically through the styles.
func (s Schedule) StyleFor(step int) string {
	if len(s.Styles) == 0 {
		return StyleScenario
	}
	idx := (step - 1) % len(s.Styles)
	if idx < 0 {
		idx += len(s.Styles)
	}
	return s.Styles[idx]
}

func (s Schedule) Personalize(step int) bool { return slices.Contains(s.PersonalizeSteps, step) }

func (s Schedule) Image(step int) bool { return slices.Contains(s.ImageSteps, step) }

func (s Schedule) Insight(step int) bool { return slices.Contains(s.InsightSteps, step) }
