package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"

	"civicfix-be/payments"

	"github.com/gin-gonic/gin"
)

// fakeGateway serves checkout sessions from memory so reconciliation can
// run without the real payment provider.
type fakeGateway struct {
	sessions map[string]*payments.Session
	created  []payments.CheckoutParams
}

func (f *fakeGateway) CreateSession(_ context.Context, p payments.CheckoutParams) (*payments.Session, error) {
	f.created = append(f.created, p)
	return &payments.Session{ID: "cs_test", URL: "https://checkout.example.com/cs_test"}, nil
}

func (f *fakeGateway) GetSession(_ context.Context, id string) (*payments.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

// newTestContext builds a gin context around an httptest request, with a
// JSON body when one is given.
func newTestContext(w *httptest.ResponseRecorder, method, target string, body []byte) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	if body != nil {
		c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c
}
