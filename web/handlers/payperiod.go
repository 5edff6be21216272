package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
	"punchdeck.com/punchdeck/web/common"
)

type periodDTO struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

func toPeriodDTO(p timesheet.PayPeriod) periodDTO {
	return periodDTO{
		Start:   p.Start.UTC().Format(time.RFC3339Nano),
		End:     p.End.UTC().Format(time.RFC3339Nano),
		Label:   p.Label,
		Current: timesheet.IsCurrentPeriod(p),
	}
}

func (ep *Endpoint) CurrentPeriod(c *gin.Context) {
	p := timesheet.PeriodForDate(time.Now(), ep.Sched.Location)
	c.JSON(http.StatusOK, common.NewSuccessResponse(toPeriodDTO(p)))
}

// PreviousPeriod steps back from the period named by the "from" query
// param, defaulting to the current one.
func (ep *Endpoint) PreviousPeriod(c *gin.Context) {
	p, ok := ep.anchorPeriod(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(toPeriodDTO(timesheet.PreviousPeriod(p, ep.Sched.Location))))
}

func (ep *Endpoint) NextPeriod(c *gin.Context) {
	p, ok := ep.anchorPeriod(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(toPeriodDTO(timesheet.NextPeriod(p, ep.Sched.Location))))
}

func (ep *Endpoint) anchorPeriod(c *gin.Context) (timesheet.PayPeriod, bool) {
	from := c.Query("from")
	if from == "" {
		return timesheet.PeriodForDate(time.Now(), ep.Sched.Location), true
	}
	t, err := utils.ParseISOTime(from)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid from date"))
		return timesheet.PayPeriod{}, false
	}
	return timesheet.PeriodForDate(*t, ep.Sched.Location), true
}

type periodDataParams struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type periodDataDTO struct {
	Stats timesheet.PayPeriodStats `json:"stats"`
	Days  []timesheet.DayData      `json:"days"`
}

// PeriodData recomputes sessions and aggregates for an arbitrary range
// from the currently stored events. Nothing derived is cached; every
// call reflects the latest punches.
func (ep *Endpoint) PeriodData(c *gin.Context) {
	var params periodDataParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	start, err := utils.ParseISOTime(params.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid start date"))
		return
	}
	end, err := utils.ParseISOTime(params.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid end date"))
		return
	}

	loc := ep.Sched.Location
	events, err := ep.Store.FetchEventsInRange(c.Request.Context(),
		utils.StartOfDay(*start, loc), utils.EndOfDay(*end, loc))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	sessions := timesheet.Reconcile(events)
	stats := timesheet.CalcPeriodStats(*start, *end, sessions, ep.Sched)
	days := timesheet.GroupSessionsByDay(*start, *end, sessions, loc)

	c.JSON(http.StatusOK, common.NewSuccessResponse(periodDataDTO{Stats: stats, Days: days}))
}
