package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chxlky/onelook/internal/deadlines"
	"github.com/chxlky/onelook/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Tracker *deadlines.Tracker
	Metrics *Metrics
}

type assignmentView struct {
	models.Assignment
	DaysLeft int               `json:"daysLeft"`
	Urgency  deadlines.Urgency `json:"urgency"`
	Label    string            `json:"label"`
}

type createAssignmentRequest struct {
	Title  string `json:"title"`
	Course string `json:"course"`
	Source string `json:"source"`
	DueISO string `json:"dueISO"`
	Link   string `json:"link"`
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListAssignmentsHandler(c *gin.Context) {
	source, err := deadlines.ParseSourceFilter(c.Query("source"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next7 := true
	if raw := c.Query("next7"); raw != "" {
		next7, err = strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "next7 must be true or false"})
			return
		}
	}

	rows := h.Tracker.View(deadlines.Filter{
		Search:    c.Query("q"),
		Source:    source,
		Next7Only: next7,
	})

	now := h.Tracker.Now()
	items := make([]assignmentView, 0, len(rows))
	for _, a := range rows {
		days := deadlines.DaysLeft(a.Due, now)
		items = append(items, assignmentView{
			Assignment: a,
			DaysLeft:   days,
			Urgency:    deadlines.UrgencyFor(days),
			Label:      deadlines.DaysLeftLabel(days),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}

func (h *Handler) CreateAssignmentHandler(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	source, err := models.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": deadlines.ErrInvalidSource.Error()})
		return
	}

	var due models.DueTime
	if req.DueISO != "" {
		due, err = models.ParseDue(req.DueISO)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dueISO must be YYYY-MM-DDTHH:mm"})
			return
		}
	}

	created, err := h.Tracker.Create(deadlines.NewAssignment{
		Title:  req.Title,
		Course: req.Course,
		Source: source,
		Due:    due,
		Link:   req.Link,
	})
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Error saving assignment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assignment"})
		return
	}

	h.Metrics.incCreated()
	h.Metrics.setStored(h.Tracker.Len())
	zap.L().Info("Assignment created", zap.String("id", created.ID), zap.String("course", created.Course))
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) DeleteAssignmentHandler(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.Tracker.Remove(id)
	if err != nil {
		zap.L().Error("Error removing assignment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove assignment"})
		return
	}

	if removed {
		h.Metrics.incRemoved()
		zap.L().Info("Assignment removed", zap.String("id", id))
	}
	h.Metrics.setStored(h.Tracker.Len())
	c.Status(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, deadlines.ErrTitleRequired) ||
		errors.Is(err, deadlines.ErrCourseRequired) ||
		errors.Is(err, deadlines.ErrInvalidSource) ||
		errors.Is(err, deadlines.ErrDueRequired)
}
