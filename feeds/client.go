package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"newbuild-aggregator/config"
	"newbuild-aggregator/models"
	"newbuild-aggregator/utils"
)

// cachedDoc is one fetched feed document kept for revalidation.
type cachedDoc struct {
	body      []byte
	fetchedAt time.Time
}

// Client fetches the configured feeds and turns them into canonical units.
// Each feed is fetched independently: a failing feed contributes zero units
// and never affects its siblings.
type Client struct {
	cfg    *config.Config
	feeds  []config.Feed
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
	http   *http.Client

	mu   sync.Mutex
	docs map[string]*cachedDoc
}

// NewClient creates a feed client over the given feed descriptors.
func NewClient(cfg *config.Config, feedList []config.Feed, logger *utils.Logger) *Client {
	return &Client{
		cfg:    cfg,
		feeds:  feedList,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
		http: &http.Client{Timeout: cfg.FeedTimeout()},
		docs: make(map[string]*cachedDoc),
	}
}

// FetchAll fetches every enabled feed concurrently and returns the parsed
// units concatenated in feed-declaration order, document order within a
// feed. Duplicate references across feeds keep the earlier-declared feed's
// unit.
func (c *Client) FetchAll(ctx context.Context) []*models.Unit {
	type job struct {
		feed    config.Feed
		adapter Adapter
	}

	var jobs []job
	for _, f := range c.feeds {
		if !f.Enabled {
			c.logger.Debug("[feeds] %s disabled — skipping", f.Name)
			continue
		}
		adapter, err := AdapterFor(f.Format, c.logger)
		if err != nil {
			c.logger.Error("[feeds] %s: %v — contributing 0 units", f.Name, err)
			continue
		}
		jobs = append(jobs, job{feed: f, adapter: adapter})
	}

	results := make([][]*models.Unit, len(jobs))
	for i, j := range jobs {
		i, j := i, j
		c.pool.Submit(func() {
			units, err := c.fetchFeed(ctx, j.feed, j.adapter)
			if err != nil {
				c.logger.Warn("[feeds] %s failed: %v — contributing 0 units", j.feed.Name, err)
				return
			}
			results[i] = units
		})
	}
	c.pool.Wait()

	seen := utils.NewRefSet()
	var all []*models.Unit
	for i, units := range results {
		kept := 0
		for _, u := range units {
			if !seen.Add(strings.ToUpper(u.Reference)) {
				c.logger.Debug("[feeds] duplicate reference %s from %s skipped",
					u.Reference, jobs[i].feed.Name)
				continue
			}
			u.Source = jobs[i].feed.Name
			all = append(all, u)
			kept++
		}
		if kept > 0 {
			c.logger.Info("[feeds] %s contributed %d units", jobs[i].feed.Name, kept)
		}
	}
	return all
}

func (c *Client) fetchFeed(ctx context.Context, f config.Feed, adapter Adapter) ([]*models.Unit, error) {
	raw, err := c.fetchDocument(ctx, f)
	if err != nil {
		return nil, err
	}
	return adapter.Parse(raw)
}

// fetchDocument returns the feed's raw bytes, reusing the previously fetched
// document while it is still within the revalidation interval.
func (c *Client) fetchDocument(ctx context.Context, f config.Feed) ([]byte, error) {
	c.mu.Lock()
	if doc, ok := c.docs[f.Name]; ok && time.Since(doc.fetchedAt) < c.cfg.RevalidateInterval() {
		body := doc.body
		c.mu.Unlock()
		c.logger.Debug("[feeds] %s: using cached document (%d bytes)", f.Name, len(body))
		return body, nil
	}
	c.mu.Unlock()

	var body []byte
	err := c.retry.Do(ctx, fmt.Sprintf("fetch %s", f.Name), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.docs[f.Name] = &cachedDoc{body: body, fetchedAt: time.Now()}
	c.mu.Unlock()

	c.logger.Info("[feeds] %s: fetched %d bytes", f.Name, len(body))
	return body, nil
}
