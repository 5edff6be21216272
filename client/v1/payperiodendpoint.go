package v1

import (
	"encoding/json"

	"punchdeck.com/punchdeck/timesheet"
)

type PayPeriodDTO struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

type PayPeriodDataDTO struct {
	Stats timesheet.PayPeriodStats `json:"stats"`
	Days  []timesheet.DayData      `json:"days"`
}

type PayPeriodEndpoint struct {
	transport *Transport
}

func (e *PayPeriodEndpoint) get(path string, from string) (*PayPeriodDTO, error) {
	var query map[string]string
	if from != "" {
		query = map[string]string{"from": from}
	}

	resp, err := e.transport.Get(path, query)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data PayPeriodDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// Current fetches the pay period containing today.
func (e *PayPeriodEndpoint) Current() (*PayPeriodDTO, error) {
	return e.get("/api/pay-period/current", "")
}

// Previous fetches the period before the one containing from, or before
// the current one when from is empty.
func (e *PayPeriodEndpoint) Previous(from string) (*PayPeriodDTO, error) {
	return e.get("/api/pay-period/previous", from)
}

// Next fetches the period after the one containing from, or after the
// current one when from is empty.
func (e *PayPeriodEndpoint) Next(from string) (*PayPeriodDTO, error) {
	return e.get("/api/pay-period/next", from)
}

// Data fetches reconciled sessions and totals for an arbitrary range.
func (e *PayPeriodEndpoint) Data(start, end string) (*PayPeriodDataDTO, error) {
	payload := map[string]string{"start": start, "end": end}

	resp, err := e.transport.Post("/api/pay-period/data", payload, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data PayPeriodDataDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}
