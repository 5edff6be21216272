package punchdeck

import (
	"context"

	"github.com/firebase/genkit/go/core/api"
)

const providerID = "punchdeck"

type PunchdeckPlugin struct {
}

func (p *PunchdeckPlugin) Name() string {
	return providerID
}

func (m *PunchdeckPlugin) Init(ctx context.Context) []api.Action {
	return []api.Action{}
}
