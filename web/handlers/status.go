package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"punchdeck.com/punchdeck/web/common"
)

// Status reports the most recently ingested punch so clients can poll
// for new activity without re-fetching a whole pay period.
func (ep *Endpoint) Status(c *gin.Context) {
	last, err := ep.Store.FetchMostRecentEvent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	var lastPunchID uint
	if last != nil {
		lastPunchID = last.ID
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"last_punch_id": lastPunchID,
		"timestamp":     time.Now().UTC(),
	}))
}
