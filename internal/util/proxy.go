// Package util holds small shared helpers: sentence splitting, proxy
// selection and robots.txt checks.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a transport proxy selector from explicit proxy
// URLs. With neither set, the standard environment variables apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
