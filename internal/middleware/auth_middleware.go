package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AdminRole = "admin"

// AdminOnly guards catalog writes with an HS256 bearer token whose role
// claim is admin. An empty secret disables the guard.
func AdminOnly(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			response.AbortError(c, apperror.ErrUnauthorized.HTTPStatus, apperror.CodeUnauthorized, msg)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		role, _ := claims["role"].(string)
		if role != AdminRole {
			abortWith(c, apperror.ErrForbidden)
			return
		}

		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set("subject", sub)
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.AbortError(c, err.HTTPStatus, err.Code, err.Message)
}
