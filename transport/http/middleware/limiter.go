package middleware

import (
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	"careops/transport/http/response"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per client address and user agent in Redis.
// The counter TTL restarts with every accepted request, so a client stays
// blocked until it has been quiet for a full window. Redis failures never
// block traffic.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientHost(r), userAgent(r))

			count, err := a.nextCount(r, cacheKey)
			if err != nil {
				log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			if count > limits.MaxRequests {
				w.Header().Set(constant.RequestHeaderRateLimitRemaining, "0")
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(limits.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), cacheKey, count, limits.WindowSeconds); err != nil {
				log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to store rate limit counter")
			}

			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limits.MaxRequests-count))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) nextCount(r *http.Request, cacheKey string) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), cacheKey, &count)
	if errors.Is(err, cache.Nil) {
		return 1, nil
	}

	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return count + 1, nil
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownUserAgent
}

// clientHost is RemoteAddr without the port. chi's RealIP middleware runs
// earlier and has already replaced it with the proxied client address.
func clientHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
