package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/database"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/models"
)

type AnalyticsHandler struct{}

func NewAnalyticsHandler() *AnalyticsHandler { return &AnalyticsHandler{} }

const (
	recentLimit      = 10
	topStudentsLimit = 5
)

// slim projection shared by the aggregate endpoints
type leaveRow struct {
	StudentID string
	Name      string
	LeaveType string
	StartDate string
}

type reasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type topStudent struct {
	Student    map[string]string `json:"student"`
	LeaveCount int               `json:"leaveCount"`
	LeaveTypes string            `json:"leaveTypes"`
}

// month buckets for the current year, index 0 = January
func bucketMonthly(rows []leaveRow, year string) [12]int {
	var out [12]int
	for _, r := range rows {
		// StartDate is YYYY-MM-DD; lexical prefix check is enough
		if len(r.StartDate) < 7 || r.StartDate[:4] != year {
			continue
		}
		m := atoiOr(r.StartDate[5:7], 0)
		if m >= 1 && m <= 12 {
			out[m-1]++
		}
	}
	return out
}

func bucketReasons(rows []leaveRow) []reasonCount {
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.LeaveType]++
	}
	out := make([]reasonCount, 0, len(counts))
	for reason, n := range counts {
		out = append(out, reasonCount{Reason: reason, Count: n})
	}
	// largest slice first; name breaks ties so the order is stable
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// GET /leaves/admin-summary
// stats cover applications created in the current calendar month;
// recent is the newest activity regardless of month.
func (h *AnalyticsHandler) AdminSummary(c echo.Context) error {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type statusRow struct {
		Status string
		N      int64
	}
	var byStatus []statusRow
	if err := database.DB.Model(&models.LeaveApplication{}).
		Select("status, COUNT(*) AS n").
		Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	stats := map[string]int64{"total": 0, "approved": 0, "pending": 0, "rejected": 0}
	for _, r := range byStatus {
		switch r.Status {
		case models.StatusApproved:
			stats["approved"] = r.N
		case models.StatusPending:
			stats["pending"] = r.N
		case models.StatusRejected:
			stats["rejected"] = r.N
		}
		stats["total"] += r.N
	}

	var recent []models.LeaveApplication
	if err := database.DB.
		Order("created_at DESC, id DESC").
		Limit(recentLimit).
		Find(&recent).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"stats":  stats,
		"recent": recent,
	})
}

// GET /leaves/admin-analytics
func (h *AnalyticsHandler) AdminAnalytics(c echo.Context) error {
	var rows []leaveRow
	if err := database.DB.Model(&models.LeaveApplication{}).
		Select("student_id, name, leave_type, start_date").
		Scan(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	monthly := bucketMonthly(rows, time.Now().Format("2006"))

	type acc struct {
		name  string
		count int
		types map[string]struct{}
	}
	byStudent := map[string]*acc{}
	for _, r := range rows {
		a := byStudent[r.StudentID]
		if a == nil {
			a = &acc{name: r.Name, types: map[string]struct{}{}}
			byStudent[r.StudentID] = a
		}
		a.count++
		a.types[r.LeaveType] = struct{}{}
	}

	ids := make([]string, 0, len(byStudent))
	for id := range byStudent {
		ids = append(ids, id)
	}
	// leave count desc; ties break on studentId asc to keep the ranking stable
	sort.Slice(ids, func(i, j int) bool {
		a, b := byStudent[ids[i]], byStudent[ids[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return ids[i] < ids[j]
	})
	if len(ids) > topStudentsLimit {
		ids = ids[:topStudentsLimit]
	}

	top := make([]topStudent, 0, len(ids))
	for _, id := range ids {
		a := byStudent[id]
		types := make([]string, 0, len(a.types))
		for t := range a.types {
			types = append(types, t)
		}
		sort.Strings(types)
		top = append(top, topStudent{
			Student:    map[string]string{"studentId": id, "name": a.name},
			LeaveCount: a.count,
			LeaveTypes: strings.Join(types, ", "),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"monthlyRequests": monthly[:],
		"leaveReasons":    bucketReasons(rows),
		"topStudents":     top,
	})
}

// GET /leaves/student/:studentId
// An unknown student renders as a zero state, not an error.
func (h *AnalyticsHandler) StudentAnalytics(c echo.Context) error {
	studentID := c.Param("studentId")

	student := map[string]string{}
	if uid := atoiOr(studentID, 0); uid > 0 {
		var u models.User
		err := database.DB.First(&u, "id = ?", uid).Error
		switch {
		case err == nil:
			student["name"] = u.Name
			student["rollNo"] = u.RollNo
			student["roomNo"] = u.RoomNumber
		case err == gorm.ErrRecordNotFound:
			// fall through to the empty aggregate
		default:
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
	}

	var rows []leaveRow
	if err := database.DB.Model(&models.LeaveApplication{}).
		Select("student_id, name, leave_type, start_date").
		Where("student_id = ?", studentID).
		Scan(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	monthly := bucketMonthly(rows, time.Now().Format("2006"))
	reasons := bucketReasons(rows)

	return c.JSON(http.StatusOK, map[string]any{
		"student":         student,
		"monthlyRequests": monthly[:],
		"leaveReasons":    reasons,
	})
}
