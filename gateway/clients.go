package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Clients talks to the services exposed behind the gateway.
type Clients struct {
	gatewayAddr string
	httpClient  *http.Client
}

func NewClients(gatewayAddr string) (*Clients, error) {
	if gatewayAddr == "" {
		return nil, fmt.Errorf("gateway address is empty")
	}
	if !strings.HasPrefix(gatewayAddr, "http://") && !strings.HasPrefix(gatewayAddr, "https://") {
		gatewayAddr = "http://" + gatewayAddr
	}

	return &Clients{
		gatewayAddr: strings.TrimSuffix(gatewayAddr, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}, nil
}

func (c *Clients) postJSON(ctx context.Context, path string, body any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayAddr+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Correlation-ID", log.CorrelationIDFromContext(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
