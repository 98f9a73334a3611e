package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smart-campus/internal/app"
	"smart-campus/internal/transport/http/response"
)

type AnalyticsHandler struct {
	activityService *app.ActivityService
}

func NewAnalyticsHandler(activityService *app.ActivityService) *AnalyticsHandler {
	return &AnalyticsHandler{activityService: activityService}
}

func (h *AnalyticsHandler) RecentActivity(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	events, err := h.activityService.ListRecent(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list activity failed")
		return
	}

	response.OK(c, events)
}
