package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

var ErrMissingToken = errors.New("missing bearer token")

// Claims is the JWT payload identifying an actor. BranchID is set for
// restaurant staff only.
type Claims struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	BranchID string `json:"branchId,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 tokens and turns their claims into actors.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Issue signs a token for a. It is what the login service of the platform
// hands out and what tests use to impersonate users.
func (a *Authenticator) Issue(who actor.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: who.ID().String(),
		Role:   who.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if branch := who.BranchID(); branch != nil {
		claims.BranchID = branch.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates token and returns the actor it carries.
func (a *Authenticator) Parse(token string) (actor.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return actor.Actor{}, err
	}
	if !parsed.Valid {
		return actor.Actor{}, jwt.ErrTokenInvalidClaims
	}
	return claims.actor()
}

func (c *Claims) actor() (actor.Actor, error) {
	id, err := kernel.UUIDFromString(c.UserID)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("userId claim: %w", err)
	}
	role, err := actor.ParseRole(c.Role)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("role claim: %w", err)
	}
	var branch *kernel.UUID
	if c.BranchID != "" {
		b, err := kernel.UUIDFromString(c.BranchID)
		if err != nil {
			return actor.Actor{}, fmt.Errorf("branchId claim: %w", err)
		}
		branch = &b
	}
	return actor.NewActor(id, role, branch)
}

// tokenFrom reads "Authorization: Bearer <jwt>", falling back to the token
// query parameter used by websocket clients.
func tokenFrom(r *http.Request) (string, error) {
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return "", ErrMissingToken
		}
		return strings.TrimSpace(token), nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", ErrMissingToken
}

// Middleware authenticates the request and stores the actor in the context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFrom(c.Request())
			if err != nil {
				return unauthorized(c, "Authorization token required")
			}
			who, err := a.Parse(token)
			if err != nil {
				return unauthorized(c, "Invalid token")
			}
			c.Set(actorKey, who)
			return next(c)
		}
	}
}

// RequireRole rejects actors holding none of roles. It must run after
// Authenticator.Middleware.
func RequireRole(roles ...actor.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who, ok := actorFrom(c)
			if !ok {
				return unauthorized(c, "Authorization token required")
			}
			if !slices.Contains(roles, who.Role()) {
				return c.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: fmt.Sprintf("Role %s may not access this resource", who.Role()),
				})
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (actor.Actor, bool) {
	who, ok := c.Get(actorKey).(actor.Actor)
	return who, ok
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
