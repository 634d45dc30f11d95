package middleware

import (
	"net/http"
	"strings"

	"github.com/Yash24242424/cloneverse-express/internal/config"
	"github.com/Yash24242424/cloneverse-express/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ゲストカートのセッションIDを送るヘッダ
const CartSessionHeader = "X-Cart-Session"

// CartSession picks the cart slot for the request. A bearer token wins and
// must be valid; without one the guest session header is used.
func CartSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//ログイン中はユーザーのカート
			if authz := c.Request().Header.Get("Authorization"); authz != "" {
				userID, role, err := parseBearer(authz, cfg.JWTSecret)
				if err != nil {
					return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
				}
				c.Set(CtxUserIDKey, userID)
				c.Set(CtxUserRoleKey, role)
				c.Set(CtxCartKey, usecase.UserKeyPrefix+userID)
				return next(c)
			}

			//ゲストはuuidのセッションIDのみ
			raw := strings.TrimSpace(c.Request().Header.Get(CartSessionHeader))
			id, err := uuid.Parse(raw)
			if raw == "" || err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("cart session required"))
			}

			c.Set(CtxCartKey, usecase.GuestKeyPrefix+id.String())
			return next(c)
		}
	}
}
