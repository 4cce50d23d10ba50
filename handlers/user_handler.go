package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/database"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

type updateUserReq struct {
	Name       string `json:"name"`
	RollNo     string `json:"rollNo"`
	RoomNumber string `json:"roomNumber"`
	Phone      string `json:"phone"`
}

type completeProfileReq struct {
	RollNo     string `json:"rollNo"`
	RoomNumber string `json:"roomNumber"`
	Phone      string `json:"phone"`
}

// GET /user/get-user/:userid
// The apply-leave form pre-fills identity fields from this response.
func (h *UserHandler) GetUser(c echo.Context) error {
	id := c.Param("userid")
	var u models.User
	if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": u})
}

// GET /user/me
func (h *UserHandler) Me(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	var u models.User
	if err := database.DB.First(&u, "id = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": u})
}

// PUT /user/update-user/:userid
// Students may only update themselves; admins may update anyone.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id := c.Param("userid")
	uid, _ := getUserID(c)
	if getRole(c) != "admin" && id != uitoa(uid) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var existing models.User
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if name := strings.Join(strings.Fields(req.Name), " "); name != "" {
		existing.Name = name
	}
	if v := strings.TrimSpace(req.RollNo); v != "" {
		existing.RollNo = v
	}
	if v := strings.TrimSpace(req.RoomNumber); v != "" {
		existing.RoomNumber = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		existing.Phone = v
	}

	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": existing})
}

// POST /user/complete-profile
// Backs the first-login popup: fills the hostel fields and flips the flag.
func (h *UserHandler) CompleteProfile(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	var req completeProfileReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	rollNo := strings.TrimSpace(req.RollNo)
	room := strings.TrimSpace(req.RoomNumber)
	phone := strings.TrimSpace(req.Phone)
	if rollNo == "" || room == "" || phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error"})
	}

	u.RollNo = rollNo
	u.RoomNumber = room
	u.Phone = phone
	u.ProfileComplete = true

	if err := database.DB.Save(&u).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": u})
}
