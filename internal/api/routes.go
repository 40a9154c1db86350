package api

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the sleep and goal endpoints onto the router. The
// middlewares run in front of every route, auth included.
func RegisterRoutes(r *gin.Engine, app App, middlewares ...gin.HandlerFunc) {
	r.Use(RequestIDMiddleware())
	r.Use(middlewares...)

	r.POST("/sleep", PostSleep(app))
	r.GET("/sleep", GetSleep(app))
	r.DELETE("/sleep/:id", DeleteSleep(app))
	r.GET("/sleep/stats", GetSleepStats(app))
	r.GET("/sleep/trend", GetSleepTrend(app))
	r.POST("/api/goals", PostGoal(app))
	r.GET("/api/goals", GetGoal(app))
}
