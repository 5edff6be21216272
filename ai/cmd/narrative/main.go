package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"

	aipunchdeck "punchdeck.com/punchdeck/ai/punchdeck"
	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
)

type NarrativeInput struct {
	Date string `json:"date" jsonschema:"description=Any date inside the pay period, YYYY-MM-DD"`
}

// PeriodNarrative is the structured write-up attached to the pay-period
// email: a short summary plus anything worth following up on.
type PeriodNarrative struct {
	Headline   string   `json:"headline"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
	Anomalies  []string `json:"anomalies,omitempty"`
}

func main() {
	ctx := context.Background()

	cfg, err := devops.LoadAppConfig(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dm, err := core.New(cfg.DSN, 2)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer dm.Close()

	st := store.NewPunchStore(dm)
	sched := timesheet.ScheduleConfig{
		Location:     utils.LoadTimezone(cfg.Timezone),
		WorkDays:     cfg.WorkWeek(),
		ShiftMinutes: cfg.ShiftMinutes,
		Holidays:     cfg.HolidaySet(),
	}

	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{}),
		genkit.WithDefaultModel("googleai/gemini-2.5-flash"),
	)

	narrativeFlow := genkit.DefineFlow(g, "periodNarrativeFlow", func(ctx context.Context, input *NarrativeInput) (*PeriodNarrative, error) {
		t, err := time.ParseInLocation("2006-01-02", input.Date, sched.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
		}

		summary, err := aipunchdeck.PeriodSummaryJSON(ctx, st, sched, t)
		if err != nil {
			return nil, fmt.Errorf("failed to build period summary: %w", err)
		}

		prompt := fmt.Sprintf(`Write a short narrative for this timesheet pay period.
            Mention total hours worked versus the scheduled potential, and flag
            any sessions with a missing OUT punch or still open.
            Timesheet data: %s`, summary)

		narrative, _, err := genkit.GenerateData[PeriodNarrative](ctx, g,
			ai.WithPrompt(prompt),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to generate narrative: %w", err)
		}

		return narrative, nil
	})

	today := time.Now().In(sched.Location).Format("2006-01-02")
	narrative, err := narrativeFlow.Run(ctx, &NarrativeInput{Date: today})
	if err != nil {
		log.Fatalf("could not generate narrative: %v", err)
	}

	narrativeJSON, _ := json.MarshalIndent(narrative, "", "  ")
	fmt.Println("Current period narrative:")
	fmt.Println(string(narrativeJSON))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /periodNarrativeFlow", genkit.Handler(narrativeFlow))

	log.Println("Starting server on http://localhost:3400")
	log.Fatal(server.Start(ctx, "127.0.0.1:3400", mux))
}
