package routes

import (
	"civicfix-be/controllers"
	"civicfix-be/middlewares"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// StaffRoutes sets up the staff management routes
func StaffRoutes(r *gin.Engine, db *mongo.Database) {
	sc := controllers.NewStaffController(db)

	staff := r.Group("/staffs")
	{
		staff.GET("", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), sc.GetAllStaffs)
		staff.POST("", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), sc.CreateStaff)
		staff.PATCH("/:id", sc.UpdateStaff)
		staff.DELETE("/:id", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), sc.DeleteStaff)
	}
}
