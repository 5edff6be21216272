package v1

import (
	"encoding/json"
	"fmt"
	"time"
)

type PunchDTO struct {
	ID         uint      `json:"id"`
	UserID     string    `json:"userId"`
	EventType  string    `json:"eventType"`
	Timestamp  time.Time `json:"timestamp"`
	ExternalID string    `json:"externalId"`
	RawText    string    `json:"rawText"`
}

type punchEnvelope struct {
	Data struct {
		Punch PunchDTO `json:"punch"`
	} `json:"data"`
}

type PunchEndpoint struct {
	transport *Transport
}

// Create records a manual punch. Timestamp is local wall time in the
// server's reference timezone, formatted 2006-01-02T15:04:05.
func (e *PunchEndpoint) Create(eventType, timestamp string) (*PunchDTO, error) {
	payload := map[string]string{"eventType": eventType, "timestamp": timestamp}

	resp, err := e.transport.Post("/api/punches", payload, nil)
	if err != nil {
		return nil, err
	}

	var result punchEnvelope
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data.Punch, nil
}

// Update corrects a punch by external id. Zero-value fields are left
// unchanged.
func (e *PunchEndpoint) Update(externalID string, eventType, timestamp string) (*PunchDTO, error) {
	payload := map[string]string{}
	if eventType != "" {
		payload["eventType"] = eventType
	}
	if timestamp != "" {
		payload["timestamp"] = timestamp
	}

	resp, err := e.transport.Put(fmt.Sprintf("/api/punches/%s", externalID), payload, nil)
	if err != nil {
		return nil, err
	}

	var result punchEnvelope
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data.Punch, nil
}

// Delete removes a punch by external id.
func (e *PunchEndpoint) Delete(externalID string) error {
	_, err := e.transport.Delete(fmt.Sprintf("/api/punches/%s", externalID), nil)
	return err
}

type StatusDTO struct {
	LastPunchID uint      `json:"last_punch_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// Status fetches the id of the most recently ingested punch.
func (e *PunchEndpoint) Status() (*StatusDTO, error) {
	resp, err := e.transport.Get("/api/status", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data StatusDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}
