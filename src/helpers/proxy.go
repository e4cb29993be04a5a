package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"cryptoboard/src/logger"
)

// -----------------------------------------------------------------------------

// ProxyManager hands out one outbound proxy at a time and moves to the next
// one when asked. It never retries a request itself.
type ProxyManager struct {
	proxies []*url.URL
	index   int
	mu      sync.Mutex
	logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewProxyManager(proxies []string, log *logger.Logger) *ProxyManager {
	pm := &ProxyManager{logger: log}
	for _, p := range proxies {
		if !ValidateProxy(p) {
			log.Warning("Ignoring invalid proxy %q", p)
			continue
		}
		u, _ := url.Parse(FormatProxy(p))
		pm.proxies = append(pm.proxies, u)
	}
	return pm
}

// -----------------------------------------------------------------------------

// GetCurrentProxy returns the proxy in use, or nil when none is configured.
func (pm *ProxyManager) GetCurrentProxy() *url.URL {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.proxies) == 0 {
		return nil
	}
	return pm.proxies[pm.index]
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) RotateProxy() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.proxies) <= 1 {
		return
	}

	pm.index = (pm.index + 1) % len(pm.proxies)
	pm.logger.Info("Rotating proxy to: %s", pm.proxies[pm.index].Host)
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) HasProxies() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return len(pm.proxies) > 0
}

// -----------------------------------------------------------------------------

// Proxy has the signature of http.Transport.Proxy.
func (pm *ProxyManager) Proxy(*http.Request) (*url.URL, error) {
	return pm.GetCurrentProxy(), nil
}

// -----------------------------------------------------------------------------

// ValidateProxy checks if a proxy string is roughly valid. A missing scheme
// is accepted; FormatProxy adds it.
func ValidateProxy(proxyStr string) bool {
	u, err := url.Parse(FormatProxy(proxyStr))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "socks5"
}

// -----------------------------------------------------------------------------

// FormatProxy ensures the proxy has a scheme.
func FormatProxy(proxyStr string) string {
	if !strings.Contains(proxyStr, "://") {
		return "http://" + proxyStr
	}
	return proxyStr
}

// -----------------------------------------------------------------------------

// ValidateProxies returns an error naming the first invalid entry.
func ValidateProxies(proxies []string) error {
	for _, p := range proxies {
		if !ValidateProxy(p) {
			return fmt.Errorf("invalid proxy %q", p)
		}
	}
	return nil
}
