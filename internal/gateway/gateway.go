// Package gateway implements the edge entry point: longest-prefix routing,
// path rewriting, and round-robin upstream selection by service name.
package gateway

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"
)

// Route maps a path prefix to a logical upstream service. Rewrite is a fixed
// substitution pattern; ${segment} is replaced with the path remainder after
// the prefix is stripped.
type Route struct {
	Prefix  string
	Service string
	Rewrite string
}

// DefaultRoutes carries the standard fleet routing table.
func DefaultRoutes() []Route {
	return []Route{
		{Prefix: "/waste", Service: "waste-service", Rewrite: "/api/wastes/${segment}"},
		{Prefix: "/robot", Service: "robot-service", Rewrite: "/api/robots/${segment}"},
		{Prefix: "/admin", Service: "admin-service", Rewrite: "/api/admins/${segment}"},
	}
}

// Proxy forwards requests to upstream services. No retries, no load shedding;
// a request that matches no prefix is a 404.
type Proxy struct {
	routes    []Route
	upstreams map[string][]*url.URL
	counters  map[string]*atomic.Uint64
	logger    *slog.Logger
}

// New builds a proxy from a route table and a service -> base URL map.
// Routes are matched longest prefix first.
func New(routes []Route, upstreams map[string][]string, logger *slog.Logger) (*Proxy, error) {
	sorted := make([]Route, len(routes))
	copy(sorted, routes)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})

	parsed := make(map[string][]*url.URL, len(upstreams))
	counters := make(map[string]*atomic.Uint64, len(upstreams))
	for service, bases := range upstreams {
		for _, base := range bases {
			u, err := url.Parse(base)
			if err != nil {
				return nil, err
			}
			parsed[service] = append(parsed[service], u)
		}
		counters[service] = &atomic.Uint64{}
	}

	return &Proxy{
		routes:    sorted,
		upstreams: parsed,
		counters:  counters,
		logger:    logger,
	}, nil
}

// match finds the longest-prefix route for path and returns the rewritten
// upstream path.
func (p *Proxy) match(path string) (Route, string, bool) {
	for _, route := range p.routes {
		if path == route.Prefix || strings.HasPrefix(path, route.Prefix+"/") {
			rest := strings.TrimPrefix(strings.TrimPrefix(path, route.Prefix), "/")
			rewritten := strings.ReplaceAll(route.Rewrite, "${segment}", rest)
			// A bare prefix hit leaves no segment; drop the trailing slash.
			rewritten = strings.TrimSuffix(rewritten, "/")
			return route, rewritten, true
		}
	}
	return Route{}, "", false
}

// pick selects the next upstream for a service round-robin.
func (p *Proxy) pick(service string) (*url.URL, bool) {
	targets := p.upstreams[service]
	if len(targets) == 0 {
		return nil, false
	}
	n := p.counters[service].Add(1)
	return targets[(n-1)%uint64(len(targets))], true
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, rewritten, ok := p.match(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	target, ok := p.pick(route.Service)
	if !ok {
		p.logger.ErrorContext(r.Context(), "no upstream configured",
			"service", route.Service,
		)
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = rewritten
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.logger.ErrorContext(r.Context(), "upstream request failed",
				"service", route.Service,
				"target", target.String(),
				"error", err,
			)
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	proxy.ServeHTTP(w, r)
}
