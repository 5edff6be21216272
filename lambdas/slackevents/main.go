package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/ingest"
	"punchdeck.com/punchdeck/store"
)

// Serverless deployment of the Slack events webhook: API Gateway in
// front, same ingest pipeline as the web server behind.

var (
	cfg *devops.AppConfig
	st  *store.PunchStore
)

func setup(ctx context.Context) error {
	if st != nil {
		return nil
	}
	c, err := devops.LoadAppConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dm, err := core.New(c.DSN, 2)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	cfg = c
	st = store.NewPunchStore(dm)
	return nil
}

func respond(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: status, Body: body}
}

func HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if err := setup(ctx); err != nil {
		fmt.Printf("[ERROR] setup: %v\n", err)
		return respond(http.StatusInternalServerError, "setup failed"), nil
	}

	body := []byte(req.Body)

	event, err := slackevents.ParseEvent(body, slackevents.OptionNoVerifyToken())
	if err != nil {
		return respond(http.StatusBadRequest, "unable to parse event"), nil
	}

	if event.Type == slackevents.URLVerification {
		if data, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent); ok {
			return respond(http.StatusOK, data.Challenge), nil
		}
		return respond(http.StatusOK, ""), nil
	}

	header := http.Header{}
	for k, v := range req.Headers {
		header.Set(k, v)
	}
	if header.Get("X-Slack-Signature") != "" {
		verifier, err := slack.NewSecretsVerifier(header, cfg.Slack.SigningSecret)
		if err != nil {
			return respond(http.StatusUnauthorized, "invalid signature"), nil
		}
		if _, err := verifier.Write(body); err != nil {
			return respond(http.StatusInternalServerError, "signature check failed"), nil
		}
		if err := verifier.Ensure(); err != nil {
			return respond(http.StatusUnauthorized, "invalid signature"), nil
		}
	}

	if event.Type != slackevents.CallbackEvent {
		return respond(http.StatusOK, ""), nil
	}
	msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return respond(http.StatusOK, ""), nil
	}
	if cfg.Slack.PunchChannel != "" && msg.Channel != cfg.Slack.PunchChannel {
		return respond(http.StatusOK, ""), nil
	}

	if _, _, err := ingest.HandleMessageEvent(ctx, st, msg); err != nil {
		fmt.Printf("[ERROR] ingest: %v\n", err)
		return respond(http.StatusInternalServerError, "ingest failed"), nil
	}

	return respond(http.StatusOK, ""), nil
}

func main() {
	lambda.Start(HandleRequest)
}
