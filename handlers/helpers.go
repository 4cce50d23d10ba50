package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// string -> int with fallback
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// reads the user id set by the JWT middleware
func getUserID(c echo.Context) (uint, bool) {
	switch v := c.Get("user_id").(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		return 0, false
	}
}

// uint -> string for route param comparisons
func uitoa(u uint) string {
	return strconv.FormatUint(uint64(u), 10)
}

func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
