package middleware // middleware contains reusable HTTP middleware for the API

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/revocation"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
	CtxUserID   = "user_id"   // uint64 subject id
	CtxRole     = "role"      // role string from the token
	CtxTokenJTI = "jti"       // token identifier, used for revocation
	CtxTokenExp = "token_exp" // time.Time expiry of the presented token
)

// JWTAuth validates a Bearer access token and injects its claims into the
// request context. Verification is stateless — signature, expiry and the
// revocation set; no user lookup happens here, so the role is the one the
// token was issued with. Routes without this middleware are anonymous.
func JWTAuth(secret string, revoked revocation.Set) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Pin the signing method to HMAC; a token presenting any other
			// algorithm is rejected before the signature is checked.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			uid, ok := subjectID(claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			role, _ := claims["role"].(string)
			jti, _ := claims["jti"].(string)

			// A token on the revocation set is dead no matter how valid its
			// signature is. Lookup failure (e.g. Redis briefly away) fails
			// closed: claims are not trusted on an unanswerable question.
			if jti != "" && revoked != nil {
				isRevoked, err := revoked.Contains(c.Request().Context(), jti)
				if err != nil {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				if isRevoked {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token revoked"})
				}
			}

			c.Set(CtxUserID, uid)
			c.Set(CtxRole, role)
			c.Set(CtxTokenJTI, jti)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(CtxTokenExp, exp.Time)
			} else {
				c.Set(CtxTokenExp, time.Time{})
			}
			return next(c)
		}
	}
}

// subjectID extracts the numeric subject from the sub claim. JSON numbers
// decode as float64; string subjects are tolerated for forward compatibility.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
