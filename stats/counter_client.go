package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultCounterTimeout = 5 * time.Second

// CounterClient talks to a hit counter API that answers {"value": n}.
type CounterClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewCounterClient(baseURL string) *CounterClient {
	return &CounterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			Name:                "Kubernetes-config-generator",
			MaxIdleConnDuration: time.Minute,
		},
	}
}

type counterValue struct {
	Value int64 `json:"value"`
}

// Get reads the current value of key, 0 on any failure.
func (c *CounterClient) Get(ctx context.Context, key string) int64 {
	return c.call(ctx, fasthttp.MethodGet, "/"+url.PathEscape(key), key)
}

// Hit increments key and returns the new value, 0 on any failure.
func (c *CounterClient) Hit(ctx context.Context, key string) int64 {
	return c.call(ctx, fasthttp.MethodPost, "/"+url.PathEscape(key)+"/hit", key)
}

func (c *CounterClient) call(ctx context.Context, method, path, key string) int64 {
	v, err := c.do(ctx, method, path)
	if err != nil {
		logs.WithError(err).WithField("key", key).Debug("usage counter unavailable")
		return 0
	}
	return v
}

func (c *CounterClient) do(ctx context.Context, method, path string) (int64, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	timeout := defaultCounterTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if code := resp.StatusCode(); code >= fasthttp.StatusMultipleChoices {
		return 0, fmt.Errorf("%s %s: unexpected status %d", method, path, code)
	}

	var out counterValue
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return 0, fmt.Errorf("decode counter response: %w", err)
	}
	return out.Value, nil
}
