package handler

import (
	"net/http"

	"github.com/Yash24242424/cloneverse-express/internal/middleware"
	"github.com/Yash24242424/cloneverse-express/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func getRoleFromContext(c echo.Context) string {
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	return role
}

// CartSessionが入れたカートキー
func getCartKeyFromContext(c echo.Context) (string, bool) {
	key, ok := c.Get(middleware.CtxCartKey).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
