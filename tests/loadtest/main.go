package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type options struct {
	baseURL       string
	sessionCookie string
	token         string
	workers       int
	duration      time.Duration
	maxID         int
}

var opts options

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
	// Commands answer 303; the load is measured per request, not per hop.
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// browser is one simulated dashboard tab with its own dashboard session.
type browser struct {
	sid string
	rng *rand.Rand
}

var rootCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Drive page renders, fragments and commands against a running dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.baseURL, "url", "http://127.0.0.1:8080", "Dashboard base URL")
	f.StringVar(&opts.sessionCookie, "cookie", "session_token", "Backend session cookie name")
	f.StringVar(&opts.token, "token", "", "Backend session token forwarded on every request")
	f.IntVar(&opts.workers, "workers", 20, "Concurrent browsers")
	f.DurationVar(&opts.duration, "duration", 10*time.Second, "Length of each phase")
	f.IntVar(&opts.maxID, "max-id", 200, "Highest notification id used by mark-read commands")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	fmt.Println("=== Dashboard Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", opts.workers, opts.duration, opts.baseURL)

	fmt.Print("Waiting for server... ")
	if err := waitForHealth(ctx); err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Full page renders ---")
	if err := runPhase(ctx, func(b *browser) result {
		tabs := []string{"profiles", "posts", "notifications", "settings"}
		return b.get("GET /", "/?tab="+tabs[b.rng.Intn(len(tabs))])
	}); err != nil {
		return err
	}

	fmt.Println("\n--- Phase 2: Fragment refreshes (badge polling) ---")
	if err := runPhase(ctx, func(b *browser) result {
		r := b.rng.Float64()
		switch {
		case r < 0.60:
			return b.get("GET /views/badge", "/views/badge")
		case r < 0.80:
			return b.get("GET /views/notifications", "/views/notifications")
		default:
			return b.get("GET /views/posts", "/views/posts")
		}
	}); err != nil {
		return err
	}

	fmt.Println("\n--- Phase 3: Mixed commands and renders (20% commands) ---")
	return runPhase(ctx, func(b *browser) result {
		r := b.rng.Float64()
		switch {
		case r < 0.15:
			return b.command(url.Values{
				"command": {"notification.read"},
				"id":      {fmt.Sprint(b.rng.Intn(opts.maxID) + 1)},
				"tab":     {"notifications"},
			})
		case r < 0.20:
			return b.command(url.Values{"command": {"health.check"}, "tab": {"settings"}})
		case r < 0.60:
			return b.get("GET /", "/?tab=notifications")
		default:
			return b.get("GET /views/badge", "/views/badge")
		}
	})
}

func waitForHealth(ctx context.Context) error {
	var lastErr error
	for i := 0; i < 30; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.baseURL+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := httpClient.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server not responding: %w", lastErr)
}

func (b *browser) do(endpoint string, req *http.Request, want int) result {
	req.AddCookie(&http.Cookie{Name: "dash_sid", Value: b.sid})
	if opts.token != "" {
		req.AddCookie(&http.Cookie{Name: opts.sessionCookie, Value: opts.token})
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func (b *browser) get(endpoint, path string) result {
	req, err := http.NewRequest(http.MethodGet, opts.baseURL+path, nil)
	if err != nil {
		return result{endpoint: endpoint, err: true}
	}
	req.Header.Set("Accept-Encoding", "gzip")
	return b.do(endpoint, req, http.StatusOK)
}

func (b *browser) command(form url.Values) result {
	endpoint := "POST " + form.Get("command")
	req, err := http.NewRequest(http.MethodPost, opts.baseURL+"/commands", strings.NewReader(form.Encode()))
	if err != nil {
		return result{endpoint: endpoint, err: true}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(endpoint, req, http.StatusSeeOther)
}

func runPhase(ctx context.Context, workFn func(b *browser) result) error {
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	results := make(chan result, 10000)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.workers; i++ {
		b := &browser{sid: uuid.NewString(), rng: rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))}
		g.Go(func() error {
			for ctx.Err() == nil {
				results <- workFn(b)
			}
			return nil
		})
	}

	allResults := make(map[string]*stats)
	var collect sync.WaitGroup
	collect.Add(1)
	go func() {
		defer collect.Done()
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
	}()

	err := g.Wait()
	close(results)
	collect.Wait()

	printResults(allResults, opts.duration)
	return err
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
