package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"civicfix-be/models"
	"civicfix-be/payments"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// checkoutKind distinguishes the two reconciliation flows: a subscription
// upgrades the paying user to Premium, a boost raises an issue's priority.
type checkoutKind string

const (
	subscriptionCheckout checkoutKind = "subscription"
	boostCheckout        checkoutKind = "boost"
)

// PaymentController turns completed checkout sessions into durable state
// changes exactly once per transaction id.
type PaymentController struct {
	users     *mongo.Collection
	issues    *mongo.Collection
	payments  *mongo.Collection
	gateway   payments.Gateway
	clientURL string
}

func NewPaymentController(db *mongo.Database, gateway payments.Gateway, clientURL string) *PaymentController {
	return &PaymentController{
		users:     db.Collection("users"),
		issues:    db.Collection("issues"),
		payments:  db.Collection("payments"),
		gateway:   gateway,
		clientURL: clientURL,
	}
}

type checkoutInput struct {
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	SubscriptionType string  `json:"subscriptionType"`
	BoostType        string  `json:"boostType"`
	Name             string  `json:"name"`
	Email            string  `json:"email" binding:"required,email"`
	IssueID          string  `json:"issueId"`
	IssueName        string  `json:"issueName"`
}

// subscriptionCheckoutParams builds the gateway parameters for a Premium
// subscription purchase. The metadata carries everything reconciliation
// needs to find the user later.
func subscriptionCheckoutParams(in checkoutInput, clientURL string) payments.CheckoutParams {
	return payments.CheckoutParams{
		ProductName:   in.SubscriptionType + " Subscription",
		UnitAmount:    payments.ToMinorUnits(in.Amount),
		Currency:      "usd",
		CustomerEmail: in.Email,
		SuccessURL:    clientURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     clientURL + "/payment-cancelled",
		Metadata: map[string]string{
			"name":             in.Name,
			"email":            in.Email,
			"subscriptionType": in.SubscriptionType,
		},
	}
}

// boostCheckoutParams builds the gateway parameters for an issue boost.
// Reconciliation locates the issue through the metadata issueId.
func boostCheckoutParams(in checkoutInput, clientURL string) payments.CheckoutParams {
	return payments.CheckoutParams{
		ProductName:   "Issue Boost: " + in.IssueName,
		UnitAmount:    payments.ToMinorUnits(in.Amount),
		Currency:      "usd",
		CustomerEmail: in.Email,
		SuccessURL:    clientURL + "/boost-payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     clientURL + "/payment-cancelled",
		Metadata: map[string]string{
			"name":      in.Name,
			"email":     in.Email,
			"boostType": in.BoostType,
			"issueId":   in.IssueID,
			"issueName": in.IssueName,
		},
	}
}

// paymentFromSession builds the audit record inserted after a successful
// reconciliation. The amount is the gateway total back in major units.
func paymentFromSession(sess *payments.Session, kind checkoutKind, paidAt time.Time) models.Payment {
	p := models.Payment{
		TransactionID: sess.TransactionID,
		Amount:        payments.ToMajorUnits(sess.AmountTotal),
		Currency:      sess.Currency,
		CustomerName:  sess.Metadata["name"],
		CustomerEmail: sess.Metadata["email"],
		Status:        sess.PaymentStatus,
		PaidAt:        paidAt,
	}
	if kind == boostCheckout {
		p.BoostType = sess.Metadata["boostType"]
		p.IssueID = sess.Metadata["issueId"]
		p.IssueName = sess.Metadata["issueName"]
	} else {
		p.SubscriptionType = sess.Metadata["subscriptionType"]
	}
	return p
}

// CreateCheckoutSession starts a hosted checkout for a Premium subscription.
// No local state is written; the session is the only artifact.
func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.SubscriptionType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subscriptionType is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := pc.gateway.CreateSession(ctx, subscriptionCheckoutParams(input, pc.clientURL))
	if err != nil {
		log.Println("Error creating checkout session:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}

// CreateBoostCheckoutSession starts a hosted checkout for an issue boost.
func (pc *PaymentController) CreateBoostCheckoutSession(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.BoostType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "boostType is required"})
		return
	}
	if input.IssueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issueId is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := pc.gateway.CreateSession(ctx, boostCheckoutParams(input, pc.clientURL))
	if err != nil {
		log.Println("Error creating boost checkout session:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}

// PaymentSuccess reconciles a completed subscription checkout: the user
// named by the session metadata becomes Premium and one Payment record is
// written. The transaction id deduplicates repeat invocations.
func (pc *PaymentController) PaymentSuccess(c *gin.Context) {
	pc.reconcile(c, subscriptionCheckout)
}

// BoostPaymentSuccess reconciles a completed boost checkout: the issue
// named by the session metadata is raised to High priority.
func (pc *PaymentController) BoostPaymentSuccess(c *gin.Context) {
	pc.reconcile(c, boostCheckout)
}

func (pc *PaymentController) reconcile(c *gin.Context, kind checkoutKind) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := pc.gateway.GetSession(ctx, sessionID)
	if err != nil {
		log.Println("Error retrieving checkout session:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checkout session"})
		return
	}

	// Idempotency guard: a Payment already recorded for this transaction
	// means reconciliation ran before. Report success without mutating.
	count, err := pc.payments.CountDocuments(ctx, bson.M{"transactionId": sess.TransactionID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing payment"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "alreadyProcessed": true})
		return
	}

	if !sess.Paid() {
		c.JSON(http.StatusOK, gin.H{"success": false, "paymentStatus": sess.PaymentStatus})
		return
	}

	// Entity mutation first, audit record second. The mutation is a value
	// set, so a crash before the insert converges on retry.
	var mutation *mongo.UpdateResult
	switch kind {
	case boostCheckout:
		issueID, err := primitive.ObjectIDFromHex(sess.Metadata["issueId"])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue reference in session"})
			return
		}
		mutation, err = pc.issues.UpdateOne(ctx,
			bson.M{"_id": issueID},
			bson.M{"$set": bson.M{"priority": models.HighPriority}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to boost issue"})
			return
		}
	default:
		mutation, err = pc.users.UpdateOne(ctx,
			bson.M{"email": sess.Metadata["email"]},
			bson.M{"$set": bson.M{"status": models.Premium}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade user"})
			return
		}
	}

	payment := paymentFromSession(sess, kind, time.Now())
	inserted, err := pc.payments.InsertOne(ctx, payment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"modifiedCount": mutation.ModifiedCount,
		"paymentId":     inserted.InsertedID,
	})
}

// GetPaymentsByEmail lists payments for one customer. Non-admin callers may
// only list their own.
func (pc *PaymentController) GetPaymentsByEmail(c *gin.Context) {
	email := c.Param("email")

	callerEmail, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if callerEmail.(string) != email && !pc.isAdmin(ctx, callerEmail.(string)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You may only view your own payments"})
		return
	}

	cursor, err := pc.payments.Find(ctx, bson.M{"customerEmail": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments"})
		return
	}
	defer cursor.Close(ctx)

	records := []models.Payment{}
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetAllPayments lists every payment record
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.payments.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments"})
		return
	}
	defer cursor.Close(ctx)

	records := []models.Payment{}
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (pc *PaymentController) isAdmin(ctx context.Context, email string) bool {
	var user models.User
	if err := pc.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return false
	}
	return user.Role == models.RoleAdmin
}
