package routes

import (
	"civicfix-be/controllers"
	"civicfix-be/middlewares"
	"civicfix-be/payments"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentRoutes sets up checkout initiation and reconciliation routes
func PaymentRoutes(r *gin.Engine, db *mongo.Database, gateway payments.Gateway, clientURL string) {
	pc := controllers.NewPaymentController(db, gateway, clientURL)

	r.POST("/create-checkout-session", middlewares.VerifyToken(), pc.CreateCheckoutSession)
	r.POST("/create-boost-checkout-session", middlewares.VerifyToken(), pc.CreateBoostCheckoutSession)
	r.PATCH("/payment-success", middlewares.VerifyToken(), pc.PaymentSuccess)
	r.PATCH("/boost-payment-success", middlewares.VerifyToken(), pc.BoostPaymentSuccess)
	r.GET("/payments", middlewares.VerifyToken(), middlewares.VerifyAdmin(db), pc.GetAllPayments)
	r.GET("/payments/:email", middlewares.VerifyToken(), pc.GetPaymentsByEmail)
}
