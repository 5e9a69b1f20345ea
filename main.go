package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"civicfix-be/config"
	"civicfix-be/models"
	"civicfix-be/payments"
	"civicfix-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx := context.Background()

	db, err := config.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("MongoDB connection established successfully!")

	if err := models.EnsurePaymentIndex(db.Collection("payments")); err != nil {
		log.Printf("Failed to ensure payment index: %v", err)
	}

	rdb, err := config.ConnectRedis(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	gateway := payments.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"))

	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:5173"
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r, db)
	routes.UserRoutes(r, db)
	routes.IssueRoutes(r, db, rdb)
	routes.StaffRoutes(r, db)
	routes.PaymentRoutes(r, db, gateway, clientURL)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
