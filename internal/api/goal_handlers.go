package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/sleepcatalyst/internal"
	"github.com/yourname/sleepcatalyst/internal/service"
)

func PostGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: hours required")
			return
		}

		if err := service.ValidateGoalRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Goal validation failed")
			return
		}

		app.Tracker().SetGoal(c.Request.Context(), req.Hours)
		HandleSuccess(c, app.Logger(), internal.GoalConfig{Hours: req.Hours}, nil)
	}
}

func GetGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), internal.GoalConfig{Hours: app.Tracker().Goal()}, nil)
	}
}
