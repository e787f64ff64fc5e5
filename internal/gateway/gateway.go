// Package gateway is the single external entry point. It forwards
// requests to the platform services from a static route table and
// gates protected routes on a valid bearer token before anything is
// forwarded.
package gateway

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Yonajim/NPUPlatform/internal/config"
	"github.com/Yonajim/NPUPlatform/internal/httpapi"
	"github.com/Yonajim/NPUPlatform/internal/obs"
)

// Rule maps one route to an upstream. Protected routes require a valid
// bearer token; the request is rejected before any forwarding happens.
type Rule struct {
	Method    string
	Pattern   string
	Upstream  string
	Target    string // metric label
	Protected bool
}

// Rules is the platform route table. Everything not listed here is a
// gateway 404 and never reaches a service.
func Rules(cfg *config.Gateway) []Rule {
	auth := func(method, pattern string, protected bool) Rule {
		return Rule{Method: method, Pattern: pattern, Upstream: cfg.AuthURL, Target: "auth", Protected: protected}
	}
	creations := func(method, pattern string) Rule {
		return Rule{Method: method, Pattern: pattern, Upstream: cfg.CreationsURL, Target: "creations"}
	}
	scores := func(method, pattern string) Rule {
		return Rule{Method: method, Pattern: pattern, Upstream: cfg.ScoresURL, Target: "scores"}
	}

	return []Rule{
		auth(http.MethodPost, "/auth/register", false),
		auth(http.MethodPost, "/auth/login", false),
		auth(http.MethodPost, "/auth/logout", true),

		creations(http.MethodPost, "/creations"),
		creations(http.MethodGet, "/creations"),
		creations(http.MethodGet, "/creations/{id}"),
		creations(http.MethodPut, "/creations/{id}"),
		creations(http.MethodDelete, "/creations/{id}"),
		creations(http.MethodGet, "/creations/search/{term}"),

		scores(http.MethodPost, "/scores"),
		scores(http.MethodGet, "/scores"),
		scores(http.MethodGet, "/scores/{id}"),
		scores(http.MethodGet, "/scores/creation/{creationID}"),

		{Method: http.MethodGet, Pattern: "/search/{term}", Upstream: cfg.SearchURL, Target: "search"},
	}
}

// Gateway proxies the route table.
type Gateway struct {
	rules   []Rule
	authn   httpapi.Authenticator
	log     *slog.Logger
	probe   httpapi.ReadyProbe
	version string
	burst   int
	perSec  int

	proxies map[string]*httputil.ReverseProxy
}

func New(rules []Rule, authn httpapi.Authenticator, log *slog.Logger, version string, burst, perSec int) (*Gateway, error) {
	g := &Gateway{
		rules:   rules,
		authn:   authn,
		log:     log,
		version: version,
		burst:   burst,
		perSec:  perSec,
		proxies: make(map[string]*httputil.ReverseProxy),
	}
	for _, rule := range rules {
		if _, ok := g.proxies[rule.Upstream]; ok {
			continue
		}
		proxy, err := g.newProxy(rule.Upstream, rule.Target)
		if err != nil {
			return nil, err
		}
		g.proxies[rule.Upstream] = proxy
	}
	return g, nil
}

func (g *Gateway) newProxy(upstream, target string) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}
	proxy := httputil.NewSingleHostReverseProxy(u)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		obs.ObserveUpstream(target, "unavailable")
		g.log.Error("upstream unreachable", "target", target, "error", err)
		writeBadGateway(w)
	}
	return proxy, nil
}

func writeBadGateway(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
}

// Handler builds the routing table with the full middleware stack.
func (g *Gateway) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok","service":"npu-gateway","version":"` + g.version + `"}`))
	})
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	for _, rule := range g.rules {
		proxy := g.proxies[rule.Upstream]
		var h http.Handler = g.forward(proxy, rule.Target)
		if rule.Protected {
			h = httpapi.RequireAuth(g.authn, h)
		}
		r.Method(rule.Method, rule.Pattern, h)
	}

	var h http.Handler = r
	h = httpapi.RateLimit(h, g.burst, g.perSec)
	h = cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           600,
	})(h)
	h = httpapi.SecurityHeaders(h)
	h = httpapi.RequestLogger(g.log, h)
	h = httpapi.RequestID(h)
	return obs.Instrument(h)
}

// forward hands the request to the proxy untouched apart from the
// request id header, so a request keeps one id across hops.
func (g *Gateway) forward(proxy *httputil.ReverseProxy, target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rid := httpapi.RequestIDFromContext(r.Context()); rid != "" {
			r.Header.Set("X-Request-Id", rid)
		}
		obs.ObserveUpstream(target, "forwarded")
		proxy.ServeHTTP(w, r)
	}
}
