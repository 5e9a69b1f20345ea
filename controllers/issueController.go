package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"civicfix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IssueController owns the issue lifecycle: creation, content updates,
// status transitions, staff assignment, upvoting and deletion.
type IssueController struct {
	issues *mongo.Collection
}

func NewIssueController(db *mongo.Database) *IssueController {
	return &IssueController{issues: db.Collection("issues")}
}

// CreateIssue persists a new issue reported by the authenticated citizen.
// Status, priority and vote state always start from their defaults no
// matter what the client sends.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	email, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title         string `json:"title" binding:"required,max=200"`
		Description   string `json:"description" binding:"required,max=1000"`
		Category      string `json:"category" binding:"required"`
		Location      string `json:"location" binding:"required,max=200"`
		Date          string `json:"date"`
		Image         string `json:"image"`
		ReporterEmail string `json:"reporterEmail"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	reporterEmail := input.ReporterEmail
	if reporterEmail == "" {
		reporterEmail = email.(string)
	}

	issue := models.Issue{
		ID:            primitive.NewObjectID(),
		Title:         input.Title,
		Description:   input.Description,
		Category:      models.IssueCategory(input.Category),
		Location:      input.Location,
		Date:          input.Date,
		ReporterEmail: reporterEmail,
		Image:         input.Image,
		Status:        models.Pending,
		Priority:      models.NormalPriority,
		VoteCount:     0,
		UpvotedBy:     []string{},
		CreatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ic.issues.InsertOne(ctx, issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// buildIssueFilter constructs the list query from the optional reporter
// email and the free-text search across title, location and category.
func buildIssueFilter(email, searchText string) bson.M {
	filter := bson.M{}

	if email != "" {
		filter["reporterEmail"] = email
	}

	if searchText != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": searchText, "$options": "i"}},
			{"location": bson.M{"$regex": searchText, "$options": "i"}},
			{"category": bson.M{"$regex": searchText, "$options": "i"}},
		}
	}

	return filter
}

// rankIn returns the position of value in the fixed order, or -1 when the
// value is not listed. Unlisted values therefore sort ahead of listed ones.
func rankIn(order []string, value string) int {
	for i, v := range order {
		if v == value {
			return i
		}
	}
	return -1
}

// sortIssuePage reorders the already-paginated page in place by the fixed
// order for the given key. The sort is stable and an unknown key leaves
// the page untouched. Sorting happens after pagination, so ordering is
// only meaningful within a page.
func sortIssuePage(issues []models.Issue, sortKey string) {
	var order []string
	var field func(models.Issue) string

	switch strings.ToLower(sortKey) {
	case "priority":
		order = models.PriorityOrder
		field = func(i models.Issue) string { return string(i.Priority) }
	case "status":
		order = models.StatusOrder
		field = func(i models.Issue) string { return string(i.Status) }
	case "category":
		order = models.CategoryOrder
		field = func(i models.Issue) string { return string(i.Category) }
	default:
		return
	}

	sort.SliceStable(issues, func(a, b int) bool {
		return rankIn(order, field(issues[a])) < rankIn(order, field(issues[b]))
	})
}

// GetAllIssues lists issues with filtering, pagination and the fixed-order
// page sort. The total is counted over the filter before skip/limit.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := c.Query("email")
	searchText := c.Query("searchText")
	sortKey := c.Query("filter")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	if limit < 0 {
		limit = 0
	}
	if skip < 0 {
		skip = 0
	}

	filter := buildIssueFilter(email, searchText)

	total, err := ic.issues.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	findOptions := options.Find().SetSkip(int64(skip))
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := ic.issues.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	sortIssuePage(issues, sortKey)

	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"total":  total,
	})
}

// GetIssue retrieves a single issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssue replaces the content fields of an issue. Status, priority
// and assignment are not mutable through this path.
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Image       string `json:"image"`
		Location    string `json:"location"`
		Date        string `json:"date"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Category != "" && !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
		"image":       input.Image,
		"location":    input.Location,
		"date":        input.Date,
	}}

	result, err := ic.issues.UpdateOne(ctx, bson.M{"_id": issueID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// UpdateIssueStatus sets the issue status unconditionally. Any status is
// reachable from any other; only the value itself is validated.
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$set": bson.M{"status": input.Status}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// AssignIssue records the staff assignment and timestamp. Assignment and
// status are independent axes; assigning never touches status.
func (ic *IssueController) AssignIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		StaffID    string `json:"staffId" binding:"required"`
		StaffEmail string `json:"staffEmail" binding:"required,email"`
		StaffName  string `json:"staffName" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$set": bson.M{
			"assignedStaffId":    input.StaffID,
			"assignedStaffEmail": input.StaffEmail,
			"assignedStaffName":  input.StaffName,
			"assignedAt":         time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// UpvoteIssue registers an at-most-once endorsement per voter email. The
// pre-update snapshot answers the 404 and fast 409 paths; the update itself
// is filtered on the voter not yet being in upvotedBy, so concurrent votes
// from the same email cannot desync voteCount from the set. Only the
// reported count can be momentarily stale under cross-voter races.
func (ic *IssueController) UpvoteIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if issue.HasUpvoted(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already upvoted this issue"})
		return
	}

	// The $ne guard makes check-and-mutate a single atomic operation: a
	// racing duplicate vote matches zero documents instead of incrementing
	// voteCount past the size of the upvotedBy set.
	result, err := ic.issues.UpdateOne(ctx,
		bson.M{"_id": issueID, "upvotedBy": bson.M{"$ne": input.Email}},
		bson.M{
			"$inc":      bson.M{"voteCount": 1},
			"$addToSet": bson.M{"upvotedBy": input.Email},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote issue"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already upvoted this issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Upvoted successfully",
		"voteCount": issue.VoteCount + 1,
	})
}

// DeleteIssue removes an issue. A zero-match delete is a soft no-op; the
// caller sees the deleted count rather than a 404.
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.issues.DeleteOne(ctx, bson.M{"_id": issueID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}

// GetStaffIssues lists issues filtered by assigned staff email and/or status.
func (ic *IssueController) GetStaffIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["assignedStaffEmail"] = email
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := ic.issues.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}
