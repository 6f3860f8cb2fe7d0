package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/logger"
	"github.com/spigell/orienta/internal/profile"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/session"
	"github.com/spigell/orienta/internal/taxonomy"
	"github.com/spigell/orienta/internal/utils"
)

const (
	PromptFreeText = "Escribir mi propia respuesta"
	PromptEdit     = "Editar una respuesta anterior"
	PromptBack     = "Volver"
	PromptQuit     = "Salir (puedes retomar más tarde)"
)

var errExit = errors.New("exit requested")

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Take the interview in the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		interview()
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("owner", "o", "local", "respondent id, the same id resumes an unfinished interview")
	viper.BindPFlag("interview.owner", interviewCmd.Flags().Lookup("owner"))
}

func interview() {
	ctx := context.Background()

	// Logs go to stderr so they do not interleave with the prompts.
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), "stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	profiles, err := askProfile(config.Profile)
	if errors.Is(err, errExit) {
		return
	}
	if err != nil {
		logger.Fatal("reading the profile", zap.Error(err))
	}

	engine, release, err := buildEngine(ctx, config, profiles, nil, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}
	defer release()

	owner := viper.GetString("interview.owner")
	resp, err := engine.Start(ctx, owner)
	if err != nil {
		logger.Fatal("starting the interview", zap.Error(err))
	}
	if resp.Resumed {
		fmt.Printf("Retomamos tu entrevista en la pregunta %d.\n", resp.CurrentIndex+1)
	}

	for resp.State != session.StateCompleted {
		next, err := ask(ctx, engine, owner, resp)
		if errors.Is(err, errExit) {
			logger.Info("exiting", zap.String("reason", "interrupted by user"), zap.String("session_id", resp.SessionID))
			return
		}
		if err != nil {
			logger.Fatal("submitting an answer", zap.Error(err))
		}
		resp = next
	}

	fmt.Println("\nEstamos preparando tus recomendaciones...")
	recs, err := engine.Finalize(ctx, resp.SessionID, owner)
	if err != nil {
		logger.Fatal("synthesizing results", zap.Error(err))
	}

	printRecommendations(os.Stdout, resp, recs)
}

func ask(ctx context.Context, engine *session.Engine, owner string, resp *session.Response) (*session.Response, error) {
	q := resp.Question
	fmt.Printf("\nPregunta %d de %d\n", q.StepNumber, resp.TotalQuestions)
	if q.Insight != "" {
		fmt.Println(q.Insight)
	}

	items := append([]string{}, q.Options...)
	items = append(items, PromptFreeText)
	if resp.CurrentIndex > 0 {
		items = append(items, PromptEdit)
	}
	items = append(items, PromptQuit)

	sel := promptui.Select{Label: q.Text, Items: items, Size: len(items)}
	_, choice, err := sel.Run()
	if err != nil {
		return nil, interrupted(err)
	}

	req := session.AnswerRequest{
		SessionID:  resp.SessionID,
		OwnerID:    owner,
		RequestID:  uuid.NewString(),
		QuestionID: q.ID,
	}

	switch choice {
	case PromptQuit:
		return nil, errExit
	case PromptEdit:
		return edit(ctx, engine, owner, resp)
	case PromptFreeText:
		if req.AnswerText, err = freeText(); err != nil {
			return nil, err
		}
	default:
		req.AnswerText = choice
	}

	return engine.SubmitAnswer(ctx, req)
}

func edit(ctx context.Context, engine *session.Engine, owner string, resp *session.Response) (*session.Response, error) {
	s, err := engine.State(ctx, resp.SessionID, owner)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(s.Answers)+1)
	for i, a := range s.Answers {
		labels = append(labels, fmt.Sprintf("%d. %s -> %s", i+1, utils.TruncateForLog(a.QuestionText, 60), a.AnswerText))
	}
	labels = append(labels, PromptBack)

	pick := promptui.Select{Label: "¿Qué respuesta quieres cambiar?", Items: labels, Size: 10}
	idx, choice, err := pick.Run()
	if err != nil {
		return nil, interrupted(err)
	}
	if choice == PromptBack {
		return resp, nil
	}

	target := s.Questions[idx]
	items := make([]string, 0, len(target.Options)+1)
	for _, opt := range target.Options {
		if !taxonomy.IsEscape(opt) {
			items = append(items, opt)
		}
	}
	items = append(items, PromptFreeText)

	sel := promptui.Select{Label: target.Text, Items: items, Size: len(items)}
	_, answer, err := sel.Run()
	if err != nil {
		return nil, interrupted(err)
	}
	if answer == PromptFreeText {
		if answer, err = freeText(); err != nil {
			return nil, err
		}
	}

	return engine.SubmitAnswer(ctx, session.AnswerRequest{
		SessionID:  resp.SessionID,
		OwnerID:    owner,
		RequestID:  uuid.NewString(),
		QuestionID: target.ID,
		AnswerText: answer,
		Edit:       true,
	})
}

func freeText() (string, error) {
	p := promptui.Prompt{
		Label: "Tu respuesta",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("escribe algo para continuar")
			}
			return nil
		},
	}
	text, err := p.Run()
	if err != nil {
		return "", interrupted(err)
	}
	return strings.TrimSpace(text), nil
}

// askProfile returns nil when the profile comes from the profile service.
func askProfile(cfg ProfileConfig) (profile.Provider, error) {
	if cfg.HTTP != nil && strings.TrimSpace(cfg.HTTP.BaseURL) != "" {
		return nil, nil
	}

	static := cfg.Static
	if static.Age <= 0 {
		p := promptui.Prompt{Label: "¿Cuántos años tienes?", Validate: validateAge}
		raw, err := p.Run()
		if err != nil {
			return nil, interrupted(err)
		}
		static.Age, _ = strconv.Atoi(strings.TrimSpace(raw))
	}
	if static.Name == "" {
		p := promptui.Prompt{Label: "¿Cómo te llamas? (opcional)"}
		name, err := p.Run()
		if err != nil {
			return nil, interrupted(err)
		}
		static.Name = strings.TrimSpace(name)
	}

	return static, nil
}

func validateAge(s string) error {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 10 || age > 99 {
		return errors.New("ingresa tu edad en años")
	}
	return nil
}

func interrupted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}

func printRecommendations(w io.Writer, resp *session.Response, recs []results.Recommendation) {
	fmt.Fprintln(w, "\nTus tres recomendaciones")
	if area := resp.Taxonomy.Area; area != "" {
		path := []string{area}
		for _, p := range []string{resp.Taxonomy.SubArea, resp.Taxonomy.Role} {
			if p != "" {
				path = append(path, p)
			}
		}
		fmt.Fprintf(w, "Perfil: %s\n", strings.Join(path, " / "))
	}

	for i, rec := range recs {
		fmt.Fprintf(w, "\n%d. %s", i+1, rec.Title)
		if rec.Sector != "" {
			fmt.Fprintf(w, " (%s)", rec.Sector)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "   %s\n", rec.Description)
		if rec.Outcomes != "" {
			fmt.Fprintf(w, "   Salidas: %s\n", rec.Outcomes)
		}
		if rec.EducationLevel != "" {
			fmt.Fprintf(w, "   Formación: %s\n", rec.EducationLevel)
		}
		if len(rec.Skills) > 0 {
			skills := make([]string, 0, len(rec.Skills))
			for _, s := range rec.Skills {
				mark := "·"
				if s.PossessedByUser {
					mark = "✓"
				}
				skills = append(skills, mark+" "+s.Name)
			}
			fmt.Fprintf(w, "   Habilidades: %s\n", strings.Join(skills, ", "))
		}
		if len(rec.StudyPaths) > 0 {
			fmt.Fprintf(w, "   Dónde estudiar: %s\n", strings.Join(rec.StudyPaths, "; "))
		}
	}
}
