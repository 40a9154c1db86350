package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/sleepcatalyst/internal/service"
)

func PostSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.SleepLogRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSleepLogRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := app.Tracker().Append(c.Request.Context(), body.BedTime, body.WakeTime)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to record sleep")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func GetSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), app.Tracker().Entries(), nil)
	}
}

func DeleteSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid entry id")
			return
		}

		// Unknown ids are a no-op, deletion is idempotent.
		app.Tracker().Remove(c.Request.Context(), id)
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}

func GetSleepStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		// One snapshot so stats, goal and count describe the same state.
		ov := app.Tracker().Overview()
		meta := map[string]any{
			"goal_hours":         ov.GoalHours,
			"entry_count":        ov.EntryCount,
			"goal_deficit_hours": ov.GoalDeficitHours,
		}
		HandleSuccess(c, app.Logger(), ov.Stats, meta)
	}
}

func GetSleepTrend(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		trend := app.Tracker().Trend()
		HandleSuccess(c, app.Logger(), trend, nil)
	}
}
