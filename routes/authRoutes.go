package routes

import (
	"civicfix-be/controllers"
	"civicfix-be/middlewares"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, db *mongo.Database) {
	ac := controllers.NewAuthController(db)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.GET("/me", middlewares.VerifyToken(), ac.Me)
	}
}
