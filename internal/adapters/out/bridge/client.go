package bridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"aos/internal/pkg/errs"
)

// HTTPTransportClient implements TransportClient against the bridge relay
// endpoint. The relay is expected to deduplicate by (channel, sequence),
// so pushing the same packet twice is harmless.
type HTTPTransportClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransportClient creates a transport client for the given bridge
// base URL.
func NewHTTPTransportClient(baseURL string, client *http.Client) (*HTTPTransportClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPTransportClient{
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Push delivers an encoded envelope to the channel's relay endpoint.
func (c *HTTPTransportClient) Push(ctx context.Context, channel string, sequence uint64, payload []byte) error {
	endpoint := fmt.Sprintf("%s/channels/%s/packets/%s",
		c.baseURL, url.PathEscape(channel), strconv.FormatUint(sequence, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("bridge relay rejected %s/%d: %s", channel, sequence, resp.Status)
	}

	return nil
}
