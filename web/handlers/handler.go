package handlers

import (
	"github.com/gin-gonic/gin"

	"punchdeck.com/punchdeck/infrastructure/communication"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/timesheet"
)

// Endpoint carries everything the handlers need: the punch store, the
// schedule policy, and the optional Slack notifier.
type Endpoint struct {
	Store    *store.PunchStore
	Sched    timesheet.ScheduleConfig
	Cfg      *devops.AppConfig
	Notifier *communication.Slack
}

// Register mounts the authenticated API surface.
func Register(r *gin.RouterGroup, ep *Endpoint) {
	r.GET("/status", ep.Status)

	r.GET("/pay-period/current", ep.CurrentPeriod)
	r.GET("/pay-period/previous", ep.PreviousPeriod)
	r.GET("/pay-period/next", ep.NextPeriod)
	r.POST("/pay-period/data", ep.PeriodData)

	r.POST("/punches", ep.CreatePunch)
	r.PUT("/punches/:externalId", ep.UpdatePunch)
	r.DELETE("/punches/:externalId", ep.DeletePunch)

	r.GET("/pay-period/report", ep.DownloadReport)
	r.POST("/pay-period/report/publish", ep.PublishReport)
	r.GET("/reports", ep.ListReports)
	r.GET("/reports/download", ep.DownloadArchivedReport)
}

// RegisterPublic mounts the webhook, which Slack calls unauthenticated
// and which is guarded by signature verification instead.
func RegisterPublic(r *gin.RouterGroup, ep *Endpoint) {
	r.POST("/slack/events", ep.SlackEvents)
}
