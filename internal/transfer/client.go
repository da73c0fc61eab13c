package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single transfer gateway call.
const DefaultTimeout = 10 * time.Second

// Client talks to the external value-transfer gateway. A transfer either
// fully succeeds (2xx) or is reported as an error; the gateway deduplicates
// on the reference id, so a retried call cannot double-move funds.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

type transferRequest struct {
	ToAccount string `json:"to_account"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// Transfer moves amount to toAccount via the gateway.
func (c *Client) Transfer(ctx context.Context, toAccount string, amount int64) error {
	body, err := json.Marshal(transferRequest{
		ToAccount: toAccount,
		Amount:    amount,
		Reference: uuid.New().String(),
	})
	if err != nil {
		return fmt.Errorf("marshal transfer request: %w", err)
	}

	reqURL := c.baseURL + "/v1/transfers"
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Keep a short excerpt of the gateway response for diagnostics.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, excerpt)
	}

	return nil
}
