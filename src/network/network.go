package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptoboard/src/helpers"
	"cryptoboard/src/interfaces"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"
)

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 64 * 1024

// -----------------------------------------------------------------------------

// HTTPStatusError is a non-2xx answer. Body holds the raw response text.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// -----------------------------------------------------------------------------

// NetworkManager issues single-attempt GET requests. There are no retries:
// a failure goes straight back to the caller.
type NetworkManager struct {
	Config  *models.MConfig
	Client  *http.Client
	Proxies interfaces.IProxyManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	nm := &NetworkManager{
		Config: cfg,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
		Proxies: helpers.NewProxyManager(cfg.Network.Proxies, log),
		Logger:  log,
	}

	if nm.Proxies.HasProxies() {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nm.Proxies.Proxy
		nm.Client.Transport = transport
	}
	return nm
}

// -----------------------------------------------------------------------------

// Get performs a GET request bounded by ctx and the configured timeout.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	reqUrl.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if nm.Config.Network.UserAgent != "" {
		req.Header.Set("User-Agent", nm.Config.Network.UserAgent)
	}

	start := time.Now()
	resp, err := nm.Client.Do(req)
	if err != nil {
		nm.Logger.Warning("GET %s failed: %v", reqUrl.Path, err)
		// The next request goes through another proxy; this one is not retried.
		if nm.Proxies.HasProxies() && ctx.Err() == nil {
			nm.Proxies.RotateProxy()
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		nm.Logger.Warning("GET %s returned status %d", reqUrl.Path, resp.StatusCode)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	nm.Logger.Debug("GET %s -> %d bytes in %v", reqUrl.Path, len(body), time.Since(start))
	return body, nil
}
