package scraper

import (
	"context"
	"crypto/x509"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/use-agent/smsgrab/config"
)

const testPage = `<html><body>
<table><tbody>
<tr>
  <td data-label="From   :">Amazon</td>
  <td data-label="Message   :">Your OTP is 991122</td>
  <td data-label="Added   :">2024-03-15 14:30:00</td>
</tr>
</tbody></table>
</body></html>`

func testScraper(t *testing.T, serverURL string) *Scraper {
	t.Helper()

	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}

	return New(
		config.ProviderConfig{
			Host:        u.Hostname(),
			PathSegment: "/sms",
			PhoneParam:  "phone",
			KeyParam:    "key",
		},
		config.FetcherConfig{
			Timeout:      5 * time.Second,
			MaxBodyBytes: 10 << 20,
		},
	)
}

func TestScrape_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer ts.Close()

	sc := testScraper(t, ts.URL)
	resp := sc.Scrape(context.Background(), ts.URL+"/sms/555?phone=555&key=k")

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if len(resp.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Sender != "Amazon" || resp.Messages[0].Body != "Your OTP is 991122" {
		t.Errorf("unexpected message: %+v", resp.Messages[0])
	}
	if resp.LastScrapedAt == "" {
		t.Error("last_scraped_at not set")
	}

	di := resp.DebugInfo
	if di.HTTPStatus != http.StatusOK {
		t.Errorf("debug http status = %d, want 200", di.HTTPStatus)
	}
	if !di.ServiceAccessible {
		t.Error("service_accessible should be true after a successful fetch")
	}
	if di.ContentLength != len(testPage) {
		t.Errorf("content_length = %d, want %d", di.ContentLength, len(testPage))
	}
	if di.FetchMethod != "http" {
		t.Errorf("fetch_method = %q, want http", di.FetchMethod)
	}
}

func TestScrape_EmptyPageIsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>no messages yet</p></body></html>`))
	}))
	defer ts.Close()

	sc := testScraper(t, ts.URL)
	resp := sc.Scrape(context.Background(), ts.URL+"/sms/555?phone=555&key=k")

	if !resp.Success {
		t.Fatalf("an accessible page with zero messages must be a success, got error %q", resp.Error)
	}
	if len(resp.Messages) != 0 {
		t.Errorf("expected no messages, got %+v", resp.Messages)
	}
	if resp.Messages == nil {
		t.Error("messages must be an empty list, not nil")
	}
}

func TestScrape_ValidationFailure(t *testing.T) {
	sc := testScraper(t, "http://127.0.0.1:1")
	resp := sc.Scrape(context.Background(), "https://example.com/other?x=1")

	if resp.Success {
		t.Fatal("expected failure for a URL that does not match the provider shape")
	}
	if resp.Error == "" {
		t.Error("expected a descriptive error")
	}
	if resp.DebugInfo.HTTPStatus != 0 {
		t.Errorf("validation failures must not carry an HTTP status, got %d", resp.DebugInfo.HTTPStatus)
	}
	if len(resp.Messages) != 0 {
		t.Errorf("expected no messages, got %+v", resp.Messages)
	}
}

func TestScrape_FetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := ts.URL + "/sms/555?phone=555&key=k"
	sc := testScraper(t, ts.URL)
	ts.Close() // connection refused from here on

	resp := sc.Scrape(context.Background(), target)

	if resp.Success {
		t.Fatal("expected failure for an unreachable service")
	}
	if resp.Error == "" {
		t.Error("expected a non-empty error")
	}
	if resp.DebugInfo.ServiceAccessible {
		t.Error("service_accessible must be false on a fetch failure")
	}
	if len(resp.Messages) != 0 {
		t.Errorf("expected no messages, got %+v", resp.Messages)
	}
}

func TestScrape_Non2xxIsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	sc := testScraper(t, ts.URL)
	resp := sc.Scrape(context.Background(), ts.URL+"/sms/555?phone=555&key=k")

	if resp.Success {
		t.Fatal("expected failure for a non-2xx response")
	}
	if resp.DebugInfo.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("debug http status = %d, want 503", resp.DebugInfo.HTTPStatus)
	}
	if resp.DebugInfo.ServiceAccessible {
		t.Error("service_accessible must be false on a non-2xx response")
	}
}

// tlsFetcher builds a Fetcher trusting the test server's certificate, so
// fetches go through the fingerprinted TLS dial path end to end.
func tlsFetcher(t *testing.T, ts *httptest.Server) *Fetcher {
	t.Helper()

	pool := x509.NewCertPool()
	pool.AddCert(ts.Certificate())

	f := NewFetcher(config.FetcherConfig{
		Timeout:      5 * time.Second,
		MaxBodyBytes: 10 << 20,
	})
	f.rootCAs = pool
	return f
}

func TestFetch_TLSSequentialDials(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer ts.Close()

	f := tlsFetcher(t, ts)

	// Every fetch builds its own connection, so each iteration is a full
	// handshake. Later handshakes must not be affected by earlier ones.
	for i := 1; i <= 3; i++ {
		outcome, ferr := f.Fetch(context.Background(), ts.URL)
		if ferr != nil {
			t.Fatalf("TLS fetch %d failed: %v", i, ferr)
		}
		if outcome.Status != http.StatusOK {
			t.Fatalf("TLS fetch %d status = %d, want 200", i, outcome.Status)
		}
		if outcome.Body != testPage {
			t.Fatalf("TLS fetch %d returned unexpected body", i)
		}
	}
}

func TestFetch_TLSConcurrentDials(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer ts.Close()

	f := tlsFetcher(t, ts)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			outcome, ferr := f.Fetch(context.Background(), ts.URL)
			if ferr != nil {
				t.Errorf("concurrent TLS fetch %d failed: %v", n, ferr)
				return
			}
			if outcome.Body != testPage {
				t.Errorf("concurrent TLS fetch %d returned unexpected body", n)
			}
		}(i)
	}
	wg.Wait()
}

func TestFetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	f := NewFetcher(config.FetcherConfig{
		Timeout:      50 * time.Millisecond,
		MaxBodyBytes: 10 << 20,
	})

	outcome, ferr := f.Fetch(context.Background(), ts.URL)
	if ferr == nil {
		t.Fatalf("expected a timeout failure, got %+v", outcome)
	}
	if ferr.Status != 0 {
		t.Errorf("timed-out fetch should carry no status, got %d", ferr.Status)
	}
}
