package middleware

import (
	"net"
	"net/http"
	"sync"

	"order-management/pkg/utils"

	"golang.org/x/time/rate"
)

// RateLimitPerIP token bucket per alamat IP
func RateLimitPerIP(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			mu.Lock()
			lim, ok := buckets[ip]
			if !ok {
				lim = rate.NewLimiter(rps, burst)
				buckets[ip] = lim
			}
			mu.Unlock()

			if !lim.Allow() {
				utils.ResponseTooManyRequests(w, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PerMinute helper untuk batas ala "5/minute"
func PerMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}
