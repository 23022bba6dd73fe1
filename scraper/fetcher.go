package scraper

import (
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"time"

	tls "github.com/refraction-networking/utls"
	"github.com/use-agent/smsgrab/config"
)

// userAgents is the pool the fetcher picks from uniformly at random. The
// upstream pages are scraped without an API and naive bot filters key on
// the UA string, so requests have to resemble ordinary browser traffic.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:132.0) Gecko/20100101 Firefox/132.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
}

// chromeH1Spec builds a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. Forcing h1 avoids the framing mismatch when utls
// negotiates h2 but Go's http.Transport only speaks h1 over the hijacked
// connection. A fresh spec is built per connection: utls mutates the
// extension objects in place during the handshake (SNI, key shares), so a
// spec must never be shared across dials.
func chromeH1Spec() (*tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return nil, err
	}
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			break
		}
	}
	return &spec, nil
}

// FetchOutcome is the successful result of one GET.
type FetchOutcome struct {
	Status    int
	Body      string
	ElapsedMs int64
}

// FetchError is a typed fetch failure carrying whatever diagnostics were
// available when the request died. Status is 0 when no response arrived.
type FetchError struct {
	Status    int
	ElapsedMs int64
	Err       error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed (HTTP %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher performs single-shot GETs with a Chrome TLS fingerprint and a
// browser-like header set. Each Fetch builds and tears down its own
// transport: no connection outlives an invocation.
type Fetcher struct {
	cfg config.FetcherConfig

	// rootCAs overrides the system certificate pool when set; tests point
	// it at a local server's certificate.
	rootCAs *x509.CertPool
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg config.FetcherConfig) *Fetcher {
	return &Fetcher{cfg: cfg}
}

// Fetch issues one GET bound by the configured timeout. It never panics
// and never retries; every failure comes back as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*FetchOutcome, *FetchError) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	transport := &http.Transport{
		DialTLSContext:    f.dialTLSChrome,
		ForceAttemptHTTP2: false,
	}
	if f.cfg.Proxy != "" {
		if proxyURL, err := url.Parse(f.cfg.Proxy); err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("build request: %w", err)}
	}
	setBrowserHeaders(req)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{
			ElapsedMs: time.Since(start).Milliseconds(),
			Err:       fmt.Errorf("request failed: %w", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Status:    resp.StatusCode,
			ElapsedMs: time.Since(start).Milliseconds(),
			Err:       fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return nil, &FetchError{
			Status:    resp.StatusCode,
			ElapsedMs: elapsed,
			Err:       fmt.Errorf("read body: %w", err),
		}
	}

	return &FetchOutcome{
		Status:    resp.StatusCode,
		Body:      string(body),
		ElapsedMs: elapsed,
	}, nil
}

// setBrowserHeaders applies the realistic header set a desktop browser
// sends on a top-level navigation. Accept-Encoding stays identity so the
// body needs no decompression step.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgents[rand.IntN(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
}

// dialTLSChrome establishes a TLS connection presenting the Chrome
// fingerprint via utls.
func (f *Fetcher) dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	spec, err := chromeH1Spec()
	if err != nil {
		return nil, fmt.Errorf("build tls fingerprint: %w", err)
	}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(rawConn, &tls.Config{ServerName: host, RootCAs: f.rootCAs}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(spec); err != nil {
		rawConn.Close()
		return nil, fmt.Errorf("apply tls fingerprint: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
