package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/database"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/models"
)

// setupTestDB points the package-global DB at a fresh sqlite file.
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func seedLeave(t *testing.T, lv models.LeaveApplication) models.LeaveApplication {
	t.Helper()
	if lv.Status == "" {
		lv.Status = models.StatusPending
	}
	if err := database.DB.Create(&lv).Error; err != nil {
		t.Fatalf("seed leave: %v", err)
	}
	return lv
}

func seedUser(t *testing.T, u models.User) models.User {
	t.Helper()
	if u.Role == "" {
		u.Role = "student"
	}
	if u.Password == "" {
		u.Password = "x"
	}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func countLeaves(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := database.DB.Model(&models.LeaveApplication{}).Count(&n).Error; err != nil {
		t.Fatalf("count leaves: %v", err)
	}
	return n
}
