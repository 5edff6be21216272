package v1

type PunchdeckClient struct {
	Transport  *Transport
	Punches    *PunchEndpoint
	PayPeriods *PayPeriodEndpoint
}

// NewPunchdeckClient initializes the API client
func NewPunchdeckClient(baseURL string, token string) *PunchdeckClient {
	t := NewTransport(baseURL, token)
	return &PunchdeckClient{
		Transport:  t,
		Punches:    &PunchEndpoint{transport: t},
		PayPeriods: &PayPeriodEndpoint{transport: t},
	}
}
