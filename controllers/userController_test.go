package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateUser_NewEmailInserts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown email is inserted", func(mt *mtest.T) {
		uc := NewUserController(mt.Client.Database("civicfix"))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "civicfix.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		w := httptest.NewRecorder()
		uc.CreateUser(newTestContext(w, http.MethodPost, "/users",
			[]byte(`{"name":"Jamie Doe","email":"jamie@example.com"}`)))

		assert.Equal(mt, http.StatusCreated, w.Code)
		assert.Contains(mt, w.Body.String(), `"insertedId"`)
	})
}

func TestCreateUser_ExistingEmailIsNoOp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email skips the insert", func(mt *mtest.T) {
		uc := NewUserController(mt.Client.Database("civicfix"))

		// Only the existence lookup is answered; an attempted insert would
		// find no queued response and fail the request.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "civicfix.users", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: 1}}),
		)

		w := httptest.NewRecorder()
		uc.CreateUser(newTestContext(w, http.MethodPost, "/users",
			[]byte(`{"name":"Jamie Doe","email":"jamie@example.com"}`)))

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "user already exists")
	})
}
