package handlers

import (
	"bytes"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"punchdeck.com/punchdeck/infrastructure/filesystem"
	"punchdeck.com/punchdeck/report"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
	"punchdeck.com/punchdeck/web/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadReport renders a pay-period timesheet as an xlsx workbook and
// streams it back. The period is named by the "from" query param and
// defaults to the current one.
func (ep *Endpoint) DownloadReport(c *gin.Context) {
	period, ok := ep.anchorPeriod(c)
	if !ok {
		return
	}

	buf, _, err := ep.buildPeriodWorkbook(c, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	filename := report.Filename(period, ep.Sched.Location)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// PublishReport archives the workbook to S3 and emails the summary with
// the workbook attached.
func (ep *Endpoint) PublishReport(c *gin.Context) {
	period, ok := ep.anchorPeriod(c)
	if !ok {
		return
	}

	if ep.Cfg.Report.Bucket == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Report bucket not configured"))
		return
	}

	buf, stats, err := ep.buildPeriodWorkbook(c, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	ctx := c.Request.Context()
	key, err := report.Archive(ctx, ep.Cfg.Report.Bucket, period, buf, ep.Sched.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if len(ep.Cfg.Report.EmailTo) > 0 {
		if err := report.EmailSummary(ctx, ep.Cfg.Report.EmailFrom, ep.Cfg.Report.EmailTo,
			period, stats, buf, ep.Sched.Location); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"key": key}))
}

// ListReports enumerates previously archived workbooks.
func (ep *Endpoint) ListReports(c *gin.Context) {
	if ep.Cfg.Report.Bucket == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Report bucket not configured"))
		return
	}

	keys, err := ep.archivedReportKeys(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	reports := utils.Map(keys, func(key string) gin.H {
		return gin.H{"key": key, "filename": path.Base(key)}
	})

	c.JSON(http.StatusOK, common.NewSearchResponse(reports, int64(len(reports))))
}

// DownloadArchivedReport streams a previously published workbook from
// the archive. The key must name an existing archived report; anything
// else in the bucket stays unreachable.
func (ep *Endpoint) DownloadArchivedReport(c *gin.Context) {
	if ep.Cfg.Report.Bucket == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Report bucket not configured"))
		return
	}

	requested := c.Query("key")
	if requested == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Missing report key"))
		return
	}

	keys, err := ep.archivedReportKeys(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	key := utils.Find(keys, func(k string) bool { return k == requested })
	if key == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Report not found"))
		return
	}

	var buf bytes.Buffer
	if err := filesystem.ReadFile(ep.Cfg.Report.Bucket, *key, c.Request.Context(), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+path.Base(*key)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (ep *Endpoint) archivedReportKeys(c *gin.Context) ([]string, error) {
	keys, err := filesystem.ListFiles(ep.Cfg.Report.Bucket, "reports/", c.Request.Context())
	if err != nil {
		return nil, err
	}
	return utils.Filter(keys, func(k string) bool {
		return path.Ext(k) == ".xlsx"
	}), nil
}

func (ep *Endpoint) buildPeriodWorkbook(c *gin.Context, period timesheet.PayPeriod) (buf *bytes.Buffer, stats timesheet.PayPeriodStats, err error) {
	loc := ep.Sched.Location
	events, err := ep.Store.FetchEventsInRange(c.Request.Context(), period.Start, period.End)
	if err != nil {
		return nil, stats, err
	}

	sessions := timesheet.Reconcile(events)
	stats = timesheet.CalcPeriodStats(period.Start, period.End, sessions, ep.Sched)
	days := timesheet.GroupSessionsByDay(period.Start, period.End, sessions, loc)

	buf, err = report.BuildWorkbook(period, days, stats, loc)
	return buf, stats, err
}
