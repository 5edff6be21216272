package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"
	"google.golang.org/genai"

	aipunchdeck "punchdeck.com/punchdeck/ai/punchdeck"
	aiutils "punchdeck.com/punchdeck/ai/utils"
	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
)

var history = []*ai.Message{}

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 500,
	Temperature:     genai.Ptr[float32](0.0),
	TopP:            genai.Ptr[float32](0.4),
	TopK:            genai.Ptr[float32](5),
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

type PeriodInput struct {
	Date string `json:"date" jsonschema_description:"Any date inside the pay period, YYYY-MM-DD format. Use today for the current period."`
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

	// API key comes from GEMINI_API_KEY or GOOGLE_API_KEY
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}, &aipunchdeck.PunchdeckPlugin{}))

	paySummary := genkit.DefineTool(g, "paySummary", "Get the reconciled timesheet for the pay period containing a date",
		func(tc *ai.ToolContext, input PeriodInput) (string, error) {
			t, err := time.ParseInLocation("2006-01-02", input.Date, sched.Location)
			if err != nil {
				return "", fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
			}
			return aipunchdeck.PeriodSummaryJSON(context.Background(), st, sched, t)
		},
	)

	bot := genkit.DefineStreamingFlow(g, "timesheet", func(ctx context.Context, input string, cb ai.ModelStreamCallback) (string, error) {
		resp, err := genkit.Generate(ctx, g,
			ai.WithModel(model),
			ai.WithSystem(fmt.Sprintf(`
		You are a timesheet assistant for a punch in/out work-hour tracker.
		Workers punch IN and OUT over chat; punches are reconciled into work
		sessions and grouped into biweekly pay periods (1st-14th and 15th-end
		of each month, %s time).

		Guidelines:
		1. Use the paySummary tool to fetch real data before answering questions about hours, sessions, or pay periods.
		2. Durations from the tool are in minutes; report them to the user as hours and minutes.
		3. A session note like "Missing OUT punch" or "Open session" means the session has no recorded end; call that out rather than guessing a duration.
		4. differenceMinutes is hours worked minus the scheduled potential for the period; negative means behind schedule.
		5. Today is %s. When the user says "this period" or "last period", derive the date to pass to the tool from today.
		6. Do not invent punches or sessions that the tool did not return.
		`, cfg.Timezone, time.Now().In(sched.Location).Format("2006-01-02"))),
			ai.WithStreaming(cb),
			ai.WithTools(paySummary),
			ai.WithMessages(history...),
			ai.WithPrompt(input))
		if err != nil {
			return "", err
		}

		aiutils.PrintUsage(resp)
		history = resp.History()

		return resp.Text(), nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", genkit.Handler(bot))
	log.Fatal(server.Start(ctx, "127.0.0.1:3400", mux))
}
