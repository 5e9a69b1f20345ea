package routes

import (
	"civicfix-be/controllers"
	"civicfix-be/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// IssueRoutes sets up the issue lifecycle routes
func IssueRoutes(r *gin.Engine, db *mongo.Database, rdb *redis.Client) {
	ic := controllers.NewIssueController(db)

	issue := r.Group("/issues")
	{
		issue.GET("", ic.GetAllIssues)
		issue.GET("/:id", ic.GetIssue)
		issue.POST("", middlewares.VerifyToken(), middlewares.IssueRateLimiter(rdb, 10), ic.CreateIssue)
		issue.PATCH("/:id", middlewares.VerifyToken(), ic.UpdateIssue)
		issue.PATCH("/:id/status", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), ic.UpdateIssueStatus)
		issue.PATCH("/:id/assign", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), ic.AssignIssue)
		issue.PATCH("/:id/upvote", middlewares.VerifyToken(), ic.UpvoteIssue)
		issue.DELETE("/:id", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), ic.DeleteIssue)
	}

	r.GET("/staff-issues", middlewares.VerifyToken(), middlewares.VerifyStaff(db), ic.GetStaffIssues)
}
