package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/common"
)

// Authenticator builds the authentication middleware chain. The validator
// may be nil in development, in which case requests pass through
// anonymously and ExtractUser yields no claims.
type Authenticator struct {
	validator   *auth.JWTValidator
	ipLimiter   *auth.IPRateLimiter
	userLimiter *auth.UserRateLimiter
	logger      *zap.Logger
}

// NewAuthenticator creates the middleware factory.
func NewAuthenticator(validator *auth.JWTValidator, ipLimiter *auth.IPRateLimiter, userLimiter *auth.UserRateLimiter, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		validator:   validator,
		ipLimiter:   ipLimiter,
		userLimiter: userLimiter,
		logger:      logger,
	}
}

// RateLimit rejects clients that exceed the per-IP budget.
func (a *Authenticator) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.ipLimiter != nil {
			allowed, _ := a.ipLimiter.Allow(r.Context(), clientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitUser applies the per-user budget on account routes. It runs
// after RequireAuth, so claims are always present. Tracking by user ID
// keeps the limit with the account across devices and addresses.
func (a *Authenticator) RateLimitUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.userLimiter != nil {
			if claims, err := auth.GetUserFromContext(r.Context()); err == nil {
				allowed, _ := a.userLimiter.Allow(r.Context(), claims.UserID)
				if !allowed {
					common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractUser resolves the caller's identity when a token is presented and
// stores the claims on the context. Requests without a token continue
// anonymously; storefront reads work either way.
func (a *Authenticator) ExtractUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := a.resolveClaims(r)
		if claims != nil {
			r = r.WithContext(auth.WithUser(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests that carry no valid identity. Used for the
// account-scoped routes (cart, wishlist, orders).
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.GetUserFromContext(r.Context()); err != nil {
			common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards admin routes.
func (a *Authenticator) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}
			if !claims.HasRole(role) {
				common.RespondError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveClaims checks the API Gateway authorizer headers first, then
// falls back to validating the bearer token locally. Behind the Lambda
// proxy the gateway JWT authorizer has already validated the token and
// passes the identity through headers.
func (a *Authenticator) resolveClaims(r *http.Request) *auth.Claims {
	if r.Header.Get("X-API-Gateway-Authorized") == "true" {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			return nil
		}
		roles := []string{"customer"}
		if raw := r.Header.Get("X-User-Roles"); raw != "" {
			roles = strings.Split(raw, ",")
		}
		return &auth.Claims{
			UserID: userID,
			Email:  r.Header.Get("X-User-Email"),
			Roles:  roles,
		}
	}

	if a.validator == nil {
		return nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	claims, err := a.validator.ValidateToken(parts[1])
	if err != nil {
		a.logger.Debug("token rejected", zap.Error(err))
		return nil
	}
	return claims
}

// clientIP picks the originating address, preferring the forwarding
// headers set by the load balancer.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		return host[:i]
	}
	return host
}
