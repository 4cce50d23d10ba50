package handlers

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/database"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/models"
)

type LeaveHandler struct {
	validate *validator.Validate
}

func NewLeaveHandler() *LeaveHandler {
	v := validator.New()
	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &LeaveHandler{validate: v}
}

type applyLeaveReq struct {
	StudentID     string `json:"studentId" validate:"required"`
	Name          string `json:"name" validate:"required"`
	RoomNumber    string `json:"roomNumber" validate:"required"`
	LeaveType     string `json:"leaveType" validate:"required"`
	Destination   string `json:"destination"`
	ContactNumber string `json:"contactNumber" validate:"required,min=10"`
	StartDate     string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason        string `json:"reason" validate:"required"`
}

func (p *applyLeaveReq) normalize() {
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.RoomNumber = strings.TrimSpace(p.RoomNumber)
	p.LeaveType = strings.TrimSpace(p.LeaveType)
	p.Destination = strings.TrimSpace(p.Destination)
	p.ContactNumber = strings.TrimSpace(p.ContactNumber)
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.EndDate = strings.TrimSpace(p.EndDate)
	p.Reason = strings.TrimSpace(p.Reason)
}

// messages mirror the apply form so both sides tell the user the same thing
var applyFieldMsgs = map[string]string{
	"studentId":     "Student ID is required",
	"name":          "Name is required",
	"roomNumber":    "Room number is required",
	"leaveType":     "Please select a leave type",
	"contactNumber": "Contact number is required",
	"startDate":     "Start date required",
	"endDate":       "End date required",
	"reason":        "Please provide a reason",
}

func validLeaveType(t string) bool {
	for _, lt := range models.LeaveTypes {
		if t == lt {
			return true
		}
	}
	return false
}

// validateApply returns one message per failing field, in struct field order.
// The date-ordering violation attaches to endDate, same as the form.
func (h *LeaveHandler) validateApply(p *applyLeaveReq) (fields map[string]string, order []string) {
	fields = map[string]string{}

	if err := h.validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				name := fe.Field()
				if _, dup := fields[name]; dup {
					continue
				}
				msg := applyFieldMsgs[name]
				if msg == "" {
					msg = "Invalid value"
				}
				fields[name] = msg
				order = append(order, name)
			}
		}
	}

	if _, bad := fields["leaveType"]; !bad && !validLeaveType(p.LeaveType) {
		fields["leaveType"] = "Please select a leave type"
		order = append(order, "leaveType")
	}

	_, badStart := fields["startDate"]
	_, badEnd := fields["endDate"]
	if !badStart && !badEnd && p.EndDate < p.StartDate {
		fields["endDate"] = "End date must be same or after start date"
		order = append(order, "endDate")
	}

	if len(fields) == 0 {
		return nil, nil
	}
	return fields, order
}

// POST /leaves/apply
// Validation is atomic: nothing is written unless every rule passes.
func (h *LeaveHandler) Apply(c echo.Context) error {
	var p applyLeaveReq
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
	}
	p.normalize()

	if fields, order := h.validateApply(&p); fields != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"message": fields[order[0]],
			"fields":  fields,
		})
	}

	leave := models.LeaveApplication{
		StudentID:     p.StudentID,
		Name:          p.Name,
		RoomNumber:    p.RoomNumber,
		ContactNumber: p.ContactNumber,
		LeaveType:     p.LeaveType,
		Destination:   p.Destination,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Reason:        p.Reason,
		Status:        models.StatusPending,
	}
	if err := database.DB.Create(&leave).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Failed to apply leave"})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Leave applied successfully",
		"leave":   leave,
	})
}

// GET /leaves?status=&type=&studentId=&from=&to=&q=&page=&size=
func (h *LeaveHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	typ := strings.TrimSpace(c.QueryParam("type"))
	studentID := strings.TrimSpace(c.QueryParam("studentId"))
	from := strings.TrimSpace(c.QueryParam("from")) // YYYY-MM-DD
	to := strings.TrimSpace(c.QueryParam("to"))     // YYYY-MM-DD
	q := strings.TrimSpace(c.QueryParam("q"))

	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	tx := database.DB.Model(&models.LeaveApplication{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if typ != "" {
		tx = tx.Where("leave_type = ?", typ)
	}
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if from != "" && to != "" {
		// range overlap: (StartDate <= to) AND (EndDate >= from)
		tx = tx.Where("start_date <= ? AND end_date >= ?", to, from)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(reason) LIKE ?", like)
	}

	var rows []models.LeaveApplication
	offset := (page - 1) * size
	if err := tx.Order("created_at DESC, id DESC").Offset(offset).Limit(size).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /leaves/my — the caller's own applications, newest first.
func (h *LeaveHandler) MyLeaves(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	var rows []models.LeaveApplication
	if err := database.DB.
		Where("student_id = ?", uitoa(uid)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /leaves/pending-count
func (h *LeaveHandler) PendingCount(c echo.Context) error {
	var n int64
	if err := database.DB.Model(&models.LeaveApplication{}).
		Where("status = ?", models.StatusPending).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

// POST /leaves/:id/approve
func (h *LeaveHandler) Approve(c echo.Context) error {
	return h.decide(c, models.StatusApproved)
}

// POST /leaves/:id/reject
func (h *LeaveHandler) Reject(c echo.Context) error {
	return h.decide(c, models.StatusRejected)
}

// Concurrent decisions on the same record are last-write-wins.
func (h *LeaveHandler) decide(c echo.Context, status string) error {
	id := c.Param("id")

	var row models.LeaveApplication
	if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	now := time.Now()
	updates := map[string]any{
		"status":     status,
		"decided_at": &now,
	}
	if uid, ok := getUserID(c); ok {
		updates["decided_by"] = uid
	}

	if err := database.DB.Model(&models.LeaveApplication{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "status": status})
}
