package routes

import (
	"civicfix-be/controllers"
	"civicfix-be/middlewares"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRoutes sets up the user management routes
func UserRoutes(r *gin.Engine, db *mongo.Database) {
	uc := controllers.NewUserController(db)

	user := r.Group("/users")
	{
		user.POST("", uc.CreateUser)
		user.GET("/:email", middlewares.VerifyToken(), uc.GetUser)
		user.GET("/:email/role", middlewares.VerifyToken(), uc.GetUserRole)
		user.PATCH("/:id/role", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), uc.UpdateUserRole)
		user.PATCH("/:id/status", uc.UpdateUserStatus)
	}

	r.PATCH("/subscribe/:email", uc.SubscribeUser)
}
