package main

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/gin-gonic/gin"

	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/infrastructure/communication"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
	"punchdeck.com/punchdeck/web/handlers"
	"punchdeck.com/punchdeck/web/middlewares"
)

func main() {
	ctx := context.Background()

	cfg, err := devops.LoadAppConfig(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dm, err := core.New(cfg.DSN, 10)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer dm.Close()

	sched := timesheet.ScheduleConfig{
		Location:     utils.LoadTimezone(cfg.Timezone),
		WorkDays:     cfg.WorkWeek(),
		ShiftMinutes: cfg.ShiftMinutes,
		Holidays:     cfg.HolidaySet(),
	}

	var notifier *communication.Slack
	if cfg.Slack.BotToken != "" {
		notifier = communication.NewSlack(cfg.Slack.BotToken, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannel,
			ErrorChannelID: cfg.Slack.ErrorChannel,
		})
	}

	ep := &handlers.Endpoint{
		Store:    store.NewPunchStore(dm),
		Sched:    sched,
		Cfg:      cfg,
		Notifier: notifier,
	}

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	public := r.Group("/api")
	handlers.RegisterPublic(public, ep)

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatalf("decode signing secret: %v", err)
	}

	protected := r.Group("/api")
	protected.Use(middlewares.Authentication(jwtSecret))
	handlers.Register(protected, ep)

	r.Run(cfg.Addr)
}
