package controllers

import (
	"context"
	"net/http"
	"time"

	"civicfix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StaffController struct {
	staffs *mongo.Collection
}

func NewStaffController(db *mongo.Database) *StaffController {
	return &StaffController{staffs: db.Collection("staffs")}
}

// GetAllStaffs lists every staff record
func (sc *StaffController) GetAllStaffs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.staffs.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve staffs"})
		return
	}
	defer cursor.Close(ctx)

	staffs := []models.Staff{}
	if err := cursor.All(ctx, &staffs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode staffs"})
		return
	}

	c.JSON(http.StatusOK, staffs)
}

// CreateStaff registers a new staff member, available by default
func (sc *StaffController) CreateStaff(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required,max=50"`
		Email   string `json:"email" binding:"required,email"`
		Contact string `json:"contact" binding:"required"`
		Photo   string `json:"photo"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff := models.Staff{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Contact:   input.Contact,
		Photo:     input.Photo,
		Status:    models.Available,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := sc.staffs.InsertOne(ctx, staff); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff"})
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// UpdateStaff updates a staff member's profile and availability
func (sc *StaffController) UpdateStaff(c *gin.Context) {
	staffID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	var input struct {
		Name    *string `json:"name,omitempty"`
		Contact *string `json:"contact,omitempty"`
		Photo   *string `json:"photo,omitempty"`
		Status  *string `json:"status,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Contact != nil {
		update["contact"] = *input.Contact
	}
	if input.Photo != nil {
		update["photo"] = *input.Photo
	}
	if input.Status != nil {
		update["status"] = *input.Status
	}

	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.staffs.UpdateOne(ctx, bson.M{"_id": staffID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// DeleteStaff removes a staff record
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	staffID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.staffs.DeleteOne(ctx, bson.M{"_id": staffID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}
