package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"punchdeck.com/punchdeck/ingest"
	"punchdeck.com/punchdeck/web/common"
)

// SlackEvents receives the Slack Events API callback. Messages in the
// punch channel feed the ingest pipeline; edits and deletions of those
// messages are reconciled against stored punches.
func (ep *Endpoint) SlackEvents(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unable to read request body"))
		return
	}

	event, err := slackevents.ParseEvent(body, slackevents.OptionNoVerifyToken())
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unable to parse event"))
		return
	}

	// Slack sends the url_verification handshake before signing is
	// configured on their side, answer it first.
	if event.Type == slackevents.URLVerification {
		if data, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent); ok {
			c.String(http.StatusOK, data.Challenge)
			return
		}
		c.Status(http.StatusOK)
		return
	}

	if sig := c.GetHeader("X-Slack-Signature"); sig != "" {
		verifier, err := slack.NewSecretsVerifier(c.Request.Header, ep.Cfg.Slack.SigningSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid signature"))
			return
		}
		if _, err := verifier.Write(body); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if err := verifier.Ensure(); err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid signature"))
			return
		}
	}

	if event.Type != slackevents.CallbackEvent {
		c.Status(http.StatusOK)
		return
	}

	msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		c.Status(http.StatusOK)
		return
	}

	if ep.Cfg.Slack.PunchChannel != "" && msg.Channel != ep.Cfg.Slack.PunchChannel {
		c.Status(http.StatusOK)
		return
	}

	kind, recorded, err := ingest.HandleMessageEvent(c.Request.Context(), ep.Store, msg)
	if err != nil {
		if ep.Notifier != nil {
			ep.Notifier.Error(fmt.Sprintf("punch ingest failed: %v", err))
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if recorded && ep.Notifier != nil {
		ep.Notifier.Info(fmt.Sprintf("Recorded %s punch for <@%s>", kind, msg.User))
	}

	c.Status(http.StatusOK)
}
