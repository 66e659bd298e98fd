package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// RateLimitConfig is the "ratelimit" configuration section. Reads and
// writes draw from separate per-IP buckets so a burst of theme saves cannot
// starve page loads. A zero RPS disables that bucket.
type RateLimitConfig struct {
	RPS        float64 `mapstructure:"rps"`
	Burst      int     `mapstructure:"burst"`
	WriteRPS   float64 `mapstructure:"write_rps"`
	WriteBurst int     `mapstructure:"write_burst"`
}

// Enabled reports whether any bucket limits traffic.
func (c RateLimitConfig) Enabled() bool {
	return c.RPS > 0 || c.WriteRPS > 0
}

const (
	// visitorIdle is how long an IP's bucket survives without traffic.
	visitorIdle = 10 * time.Minute
	// maxVisitors triggers an idle sweep before tracking another IP.
	maxVisitors = 10000
)

var rateLimitedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schooldesk_http_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter, by bucket.",
	},
	[]string{"bucket"},
)

func init() {
	prometheus.MustRegister(rateLimitedTotal)
}

// RateLimitMiddleware enforces per-IP budgets: state-changing requests use
// the write bucket, everything else the read bucket. Paths in exempt skip
// limiting entirely.
func RateLimitMiddleware(cfg RateLimitConfig, exempt PathSet) Middleware {
	buckets := map[string]*visitors{
		"read":  newVisitors(cfg.RPS, cfg.Burst),
		"write": newVisitors(cfg.WriteRPS, cfg.WriteBurst),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt.Has(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			name := "read"
			if isWrite(r) {
				name = "write"
			}
			if wait, ok := buckets[name].allow(clientIP(r)); !ok {
				rateLimitedTotal.WithLabelValues(name).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds()+0.999)))
				RateLimited(w, "rate limit exceeded", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// visitors holds one token bucket per client IP. A nil *visitors allows
// everything.
type visitors struct {
	mu      sync.Mutex
	byIP    map[string]*visitor
	limit   rate.Limit
	burst   int
	nowFunc func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newVisitors(rps float64, burst int) *visitors {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &visitors{
		byIP:    make(map[string]*visitor),
		limit:   rate.Limit(rps),
		burst:   burst,
		nowFunc: time.Now,
	}
}

// allow takes a token for ip. When the bucket is empty it returns the
// delay until the next token.
func (v *visitors) allow(ip string) (time.Duration, bool) {
	if v == nil {
		return 0, true
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.nowFunc()
	e, ok := v.byIP[ip]
	if !ok {
		if len(v.byIP) >= maxVisitors {
			v.sweep(now)
		}
		e = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.byIP[ip] = e
	}
	e.lastSeen = now

	res := e.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return delay, false
	}
	return 0, true
}

// sweep drops idle visitors. Must be called with v.mu held.
func (v *visitors) sweep(now time.Time) {
	cutoff := now.Add(-visitorIdle)
	for ip, e := range v.byIP {
		if e.lastSeen.Before(cutoff) {
			delete(v.byIP, ip)
		}
	}
}
