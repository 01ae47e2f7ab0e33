package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// httpClient wraps http.Client with a request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *httpClient) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// submitComparisons pushes comparisons through a pool of submit workers.
func submitComparisons(ctx context.Context, cfg *Config, events []comparison, stats *Stats) {
	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/comparisons"

	var successful, duplicate, failed, submitted int64

	eventChan := make(chan comparison, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for event := range eventChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&submitted, 1)
				switch submitOne(ctx, client, url, event) {
				case http.StatusAccepted:
					atomic.AddInt64(&successful, 1)
				case http.StatusOK:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(eventChan)
		for _, event := range events {
			select {
			case <-ctx.Done():
				return
			case eventChan <- event:
			}
		}
	}()

	wg.Wait()

	stats.EventsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EventsSuccessful = int(atomic.LoadInt64(&successful))
	stats.EventsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.EventsFailed = int(atomic.LoadInt64(&failed))
}

// submitOne returns the HTTP status of a single submission, or 0 on
// transport failure. Backpressure (429) gets one retry after a short pause.
func submitOne(ctx context.Context, client *httpClient, url string, event comparison) int {
	for attempt := 0; attempt < 2; attempt++ {
		resp, err := client.postJSON(ctx, url, event)
		if err != nil {
			return 0
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests && attempt == 0 {
			select {
			case <-ctx.Done():
				return resp.StatusCode
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}
		return resp.StatusCode
	}
	return 0
}
