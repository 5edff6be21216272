package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/utils"
	"punchdeck.com/punchdeck/web/common"
)

const manualUserID = "MANUAL_USER"

type createPunchDTO struct {
	EventType string                `json:"eventType" binding:"required,oneof=IN OUT"`
	Timestamp *common.LocalDateTime `json:"timestamp" binding:"required"`
}

// CreatePunch records a punch entered through the UI rather than the
// chat webhook. The timestamp arrives as local wall time in the
// reference timezone; the external id is minted here since there is no
// upstream message to key off.
func (ep *Endpoint) CreatePunch(c *gin.Context) {
	var body createPunchDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	wall := body.Timestamp.Time
	if wall.IsZero() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid timestamp"))
		return
	}
	loc := ep.Sched.Location
	instant := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, loc)

	event := model.PunchEvent{
		UserID:     manualUserID,
		EventType:  model.EventType(body.EventType),
		Timestamp:  instant,
		ExternalID: "manual_" + uuid.NewString(),
		RawText:    fmt.Sprintf("MANUAL_%s", body.EventType),
	}

	created, err := ep.Store.InsertEvent(c.Request.Context(), event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"punch": created}))
}

type updatePunchDTO struct {
	EventType *string `json:"eventType,omitempty" binding:"omitempty,oneof=IN OUT"`
	Timestamp *string `json:"timestamp,omitempty"`
}

// UpdatePunch corrects a stored punch by external id.
func (ep *Endpoint) UpdatePunch(c *gin.Context) {
	externalID := c.Param("externalId")

	var body updatePunchDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	var fields store.EventUpdate
	if body.EventType != nil {
		fields.EventType = utils.Ptr(model.EventType(*body.EventType))
	}
	if body.Timestamp != nil {
		t, err := utils.ParseISOTime(*body.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid timestamp"))
			return
		}
		fields.Timestamp = t
	}

	updated, err := ep.Store.UpdateEvent(c.Request.Context(), externalID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Punch not found"))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"punch": updated}))
}

// DeletePunch removes a stored punch by external id.
func (ep *Endpoint) DeletePunch(c *gin.Context) {
	externalID := c.Param("externalId")

	deleted, err := ep.Store.DeleteEvent(c.Request.Context(), externalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Punch not found"))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
