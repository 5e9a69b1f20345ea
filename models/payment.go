package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Payment is the audit record written once per completed checkout session.
// TransactionID is the gateway's payment-intent id and deduplicates
// reconciliation: at most one Payment exists per transaction.
type Payment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TransactionID    string             `bson:"transactionId" json:"transactionId"`
	Amount           float64            `bson:"amount" json:"amount"`
	Currency         string             `bson:"currency" json:"currency"`
	SubscriptionType string             `bson:"subscriptionType,omitempty" json:"subscriptionType,omitempty"`
	BoostType        string             `bson:"boostType,omitempty" json:"boostType,omitempty"`
	CustomerName     string             `bson:"customerName" json:"customerName"`
	CustomerEmail    string             `bson:"customerEmail" json:"customerEmail"`
	IssueID          string             `bson:"issueId,omitempty" json:"issueId,omitempty"`
	IssueName        string             `bson:"issueName,omitempty" json:"issueName,omitempty"`
	Status           string             `bson:"status" json:"status"`
	PaidAt           time.Time          `bson:"paidAt" json:"paidAt"`
}

// EnsurePaymentIndex creates a unique index on transactionId so duplicate
// reconciliations cannot insert a second audit record even under a race.
func EnsurePaymentIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
