package auth

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "trustmart/internal/errors"
	"trustmart/internal/response"
)

// identityContextKey is where the middleware stores the caller identity.
const identityContextKey = "auth.identity"

// SessionCookieName is the cookie carrying the signed token on page routes.
const SessionCookieName = "token"

// Identity is the decoded caller identity forwarded to handlers.
type Identity struct {
	ID    uint
	Email string
	Name  string
	Role  string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// IdentityFrom returns the identity injected by the authorizer.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityContextKey).(Identity)
	return id, ok
}

// SetIdentity stores the identity on the request context. Exported for tests.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityContextKey, id)
}

// RouteRule maps a path prefix to the set of roles allowed through it.
type RouteRule struct {
	Prefix string
	Roles  []string
}

// DefaultAPIRules is the role requirement table for the API surface.
func DefaultAPIRules() []RouteRule {
	return []RouteRule{
		{Prefix: "/api/admin", Roles: []string{"admin"}},
		{Prefix: "/api/users", Roles: []string{"user", "admin", "moderator"}},
		{Prefix: "/api/tasks", Roles: []string{"user", "admin", "moderator"}},
		{Prefix: "/api/auth/profile", Roles: []string{"user", "admin", "moderator"}},
	}
}

// DefaultPagePrefixes lists the browser routes guarded by the session cookie.
func DefaultPagePrefixes() []string {
	return []string{"/dashboard", "/business-settings"}
}

// Authorizer authenticates API requests against the role requirement
// table and page requests against the session cookie. Both paths verify
// the same signed token.
type Authorizer struct {
	jwt          *JWTService
	rules        []RouteRule
	pagePrefixes []string
	loginPath    string
}

// NewAuthorizer builds an authorizer over the given rule table. Rules
// are matched by longest prefix, so ordering of the input is irrelevant.
func NewAuthorizer(jwt *JWTService, rules []RouteRule, pagePrefixes []string) *Authorizer {
	sorted := make([]RouteRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Authorizer{
		jwt:          jwt,
		rules:        sorted,
		pagePrefixes: pagePrefixes,
		loginPath:    "/login",
	}
}

// match returns the longest-prefix rule covering path, if any.
func (a *Authorizer) match(path string) (RouteRule, bool) {
	for _, rule := range a.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return RouteRule{}, false
}

func (a *Authorizer) isPageRoute(path string) bool {
	for _, prefix := range a.pagePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware intercepts every request. Unmatched paths are public and
// pass through untouched.
func (a *Authorizer) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if rule, ok := a.match(path); ok {
				return a.authorizeAPI(c, next, rule)
			}
			if a.isPageRoute(path) {
				return a.authorizePage(c, next)
			}
			return next(c)
		}
	}
}

// authorizeAPI runs the bearer-token path. Missing tokens yield 401;
// expired or malformed tokens yield 403 so a probe cannot tell whether
// a token format was ever valid.
func (a *Authorizer) authorizeAPI(c echo.Context, next echo.HandlerFunc, rule RouteRule) error {
	token := bearerToken(c.Request())
	if token == "" {
		return response.Error(c, http.StatusUnauthorized,
			"Authorization token missing", apperrors.CodeTokenMissing, nil)
	}

	claims, err := a.jwt.Decode(token)
	if err != nil {
		code := apperrors.CodeTokenMalformed
		if err == ErrTokenExpired {
			code = apperrors.CodeTokenExpired
		}
		return response.Error(c, http.StatusForbidden, err.Error(), code, nil)
	}

	if !roleAllowed(rule.Roles, claims.Role) {
		details := fmt.Sprintf("Required roles: %s, User role: %s",
			strings.Join(rule.Roles, ", "), claims.Role)
		return response.Error(c, http.StatusForbidden,
			"Access denied: insufficient permissions",
			apperrors.CodeInsufficientPermissions, details)
	}

	SetIdentity(c, Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	})
	return next(c)
}

// authorizePage runs the browser-session path. It never answers JSON:
// any failure redirects to the login page and expires the cookie.
func (a *Authorizer) authorizePage(c echo.Context, next echo.HandlerFunc) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.Redirect(http.StatusFound, a.loginPath)
	}

	claims, err := a.jwt.Decode(cookie.Value)
	if err != nil {
		c.SetCookie(&http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
		})
		return c.Redirect(http.StatusFound, a.loginPath)
	}

	SetIdentity(c, Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	})
	return next(c)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func roleAllowed(allowed []string, role string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
