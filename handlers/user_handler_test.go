package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/database"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/models"
)

func TestGetUser_Found(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, models.User{Email: "a@example.com", Name: "Alice", RoomNumber: "B-203", Phone: "9876543210"})

	h := NewUserHandler()
	c, rec := newTestContext(t, http.MethodGet, "/", "")
	c.SetParamNames("userid")
	c.SetParamValues(fmt.Sprint(u.ID))
	if err := h.GetUser(c); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body)
	}
	user := body["user"].(map[string]any)
	if user["name"] != "Alice" || user["roomNumber"] != "B-203" {
		t.Errorf("unexpected user payload: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must never be serialized")
	}
}

func TestGetUser_NotFound(t *testing.T) {
	setupTestDB(t)

	h := NewUserHandler()
	c, rec := newTestContext(t, http.MethodGet, "/", "")
	c.SetParamNames("userid")
	c.SetParamValues("404")
	if err := h.GetUser(c); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestMe(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, models.User{Email: "me@example.com", Name: "Me"})

	h := NewUserHandler()
	c, rec := newTestContext(t, http.MethodGet, "/user/me", "")
	c.Set("user_id", u.ID)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	if user["email"] != "me@example.com" {
		t.Errorf("unexpected me payload: %v", user)
	}
}

func TestCompleteProfile(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, models.User{Email: "p@example.com", Name: "Pat"})

	h := NewUserHandler()
	c, rec := newTestContext(t, http.MethodPost, "/user/complete-profile",
		`{"rollNo":"H-7","roomNumber":"C-12","phone":"9876543210"}`)
	c.Set("user_id", u.ID)
	if err := h.CompleteProfile(c); err != nil {
		t.Fatalf("CompleteProfile: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stored models.User
	if err := database.DB.First(&stored, u.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !stored.ProfileComplete || stored.RollNo != "H-7" || stored.RoomNumber != "C-12" {
		t.Errorf("profile not completed: %+v", stored)
	}
}

func TestCompleteProfile_MissingFields(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, models.User{Email: "q@example.com", Name: "Quinn"})

	h := NewUserHandler()
	c, _ := newTestContext(t, http.MethodPost, "/user/complete-profile", `{"rollNo":"H-8"}`)
	c.Set("user_id", u.ID)
	err := h.CompleteProfile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUpdateUser_SelfOnly(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, models.User{Email: "o@example.com", Name: "Owner"})
	other := seedUser(t, models.User{Email: "x@example.com", Name: "Other"})

	h := NewUserHandler()

	// a student touching someone else's profile is rejected
	c, _ := newTestContext(t, http.MethodPut, "/", `{"name":"Hacked"}`)
	c.SetParamNames("userid")
	c.SetParamValues(fmt.Sprint(other.ID))
	c.Set("user_id", owner.ID)
	c.Set("role", "student")
	err := h.UpdateUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}

	// self-update goes through
	c2, rec2 := newTestContext(t, http.MethodPut, "/", `{"name":"Renamed","phone":"9999999999"}`)
	c2.SetParamNames("userid")
	c2.SetParamValues(fmt.Sprint(owner.ID))
	c2.Set("user_id", owner.ID)
	c2.Set("role", "student")
	if err := h.UpdateUser(c2); err != nil {
		t.Fatalf("UpdateUser self: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec2.Code)
	}

	var stored models.User
	if err := database.DB.First(&stored, owner.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Renamed" || stored.Phone != "9999999999" {
		t.Errorf("update not applied: %+v", stored)
	}
}

func TestUpdateUser_AdminMayUpdateAnyone(t *testing.T) {
	setupTestDB(t)
	admin := seedUser(t, models.User{Email: "adm@example.com", Name: "Admin", Role: "admin"})
	target := seedUser(t, models.User{Email: "t@example.com", Name: "Target"})

	h := NewUserHandler()
	c, rec := newTestContext(t, http.MethodPut, "/", `{"roomNumber":"D-1"}`)
	c.SetParamNames("userid")
	c.SetParamValues(fmt.Sprint(target.ID))
	c.Set("user_id", admin.ID)
	c.Set("role", "admin")
	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("UpdateUser as admin: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
