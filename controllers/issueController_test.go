package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"civicfix-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func issueWith(title string, priority models.IssuePriority, status models.IssueStatus, category models.IssueCategory) models.Issue {
	return models.Issue{
		Title:    title,
		Priority: priority,
		Status:   status,
		Category: category,
	}
}

func TestBuildIssueFilter(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		filter := buildIssueFilter("", "")
		assert.Empty(t, filter)
	})

	t.Run("ReporterEmail", func(t *testing.T) {
		filter := buildIssueFilter("x@y.com", "")
		assert.Equal(t, "x@y.com", filter["reporterEmail"])
		assert.NotContains(t, filter, "$or")
	})

	t.Run("SearchText", func(t *testing.T) {
		filter := buildIssueFilter("", "leak")
		or, ok := filter["$or"].([]bson.M)
		assert.True(t, ok)
		assert.Len(t, or, 3)

		fields := []string{}
		for _, clause := range or {
			for field, cond := range clause {
				fields = append(fields, field)
				regex, ok := cond.(bson.M)
				assert.True(t, ok)
				assert.Equal(t, "leak", regex["$regex"])
				assert.Equal(t, "i", regex["$options"])
			}
		}
		assert.ElementsMatch(t, []string{"title", "location", "category"}, fields)
	})

	t.Run("Both", func(t *testing.T) {
		filter := buildIssueFilter("x@y.com", "pothole")
		assert.Equal(t, "x@y.com", filter["reporterEmail"])
		assert.Contains(t, filter, "$or")
	})
}

func TestRankIn(t *testing.T) {
	assert.Equal(t, 0, rankIn(models.PriorityOrder, "High"))
	assert.Equal(t, 1, rankIn(models.PriorityOrder, "Normal"))
	assert.Equal(t, -1, rankIn(models.PriorityOrder, "Urgent"))
	assert.Equal(t, 4, rankIn(models.StatusOrder, "Closed"))
}

func TestSortIssuePage_Priority(t *testing.T) {
	page := []models.Issue{
		issueWith("a", models.NormalPriority, models.Pending, models.RoadDamage),
		issueWith("b", models.HighPriority, models.Pending, models.RoadDamage),
		issueWith("c", models.NormalPriority, models.Pending, models.RoadDamage),
	}

	sortIssuePage(page, "priority")

	// High first, then the Normals in their original relative order.
	assert.Equal(t, "b", page[0].Title)
	assert.Equal(t, "a", page[1].Title)
	assert.Equal(t, "c", page[2].Title)
}

func TestSortIssuePage_Status(t *testing.T) {
	page := []models.Issue{
		issueWith("a", models.NormalPriority, models.Closed, models.RoadDamage),
		issueWith("b", models.NormalPriority, models.Working, models.RoadDamage),
		issueWith("c", models.NormalPriority, models.Pending, models.RoadDamage),
		issueWith("d", models.NormalPriority, models.Resolved, models.RoadDamage),
		issueWith("e", models.NormalPriority, models.InProgress, models.RoadDamage),
	}

	sortIssuePage(page, "status")

	got := []string{page[0].Title, page[1].Title, page[2].Title, page[3].Title, page[4].Title}
	assert.Equal(t, []string{"c", "e", "b", "d", "a"}, got)
}

func TestSortIssuePage_Category(t *testing.T) {
	page := []models.Issue{
		issueWith("a", models.NormalPriority, models.Pending, models.OtherIssue),
		issueWith("b", models.NormalPriority, models.Pending, models.RoadDamage),
		issueWith("c", models.NormalPriority, models.Pending, models.GarbageOverflow),
	}

	sortIssuePage(page, "category")

	assert.Equal(t, "b", page[0].Title)
	assert.Equal(t, "c", page[1].Title)
	assert.Equal(t, "a", page[2].Title)
}

func TestSortIssuePage_UnknownKeyLeavesOrder(t *testing.T) {
	page := []models.Issue{
		issueWith("a", models.NormalPriority, models.Pending, models.RoadDamage),
		issueWith("b", models.HighPriority, models.Pending, models.RoadDamage),
	}

	sortIssuePage(page, "votes")

	assert.Equal(t, "a", page[0].Title)
	assert.Equal(t, "b", page[1].Title)
}

func TestSortIssuePage_UnlistedValueSortsFirst(t *testing.T) {
	// A value missing from the fixed order ranks at -1 and lands ahead
	// of every listed value.
	page := []models.Issue{
		issueWith("a", models.HighPriority, models.Pending, models.RoadDamage),
		issueWith("b", "Urgent", models.Pending, models.RoadDamage),
	}

	sortIssuePage(page, "priority")

	assert.Equal(t, "b", page[0].Title)
	assert.Equal(t, "a", page[1].Title)
}

func TestSortIssuePage_CaseInsensitiveKey(t *testing.T) {
	page := []models.Issue{
		issueWith("a", models.NormalPriority, models.Pending, models.RoadDamage),
		issueWith("b", models.HighPriority, models.Pending, models.RoadDamage),
	}

	sortIssuePage(page, "Priority")

	assert.Equal(t, "b", page[0].Title)
}

func issueDoc(id primitive.ObjectID, title string, voteCount int, upvotedBy bson.A) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: "desc"},
		{Key: "category", Value: "Road Damage"},
		{Key: "location", Value: "5th Ave"},
		{Key: "reporterEmail", Value: "x@y.com"},
		{Key: "status", Value: "Pending"},
		{Key: "priority", Value: "Normal"},
		{Key: "voteCount", Value: voteCount},
		{Key: "upvotedBy", Value: upvotedBy},
	}
}

func upvoteContext(w *httptest.ResponseRecorder, id primitive.ObjectID, email string) *gin.Context {
	c := newTestContext(w, http.MethodPatch, "/issues/"+id.Hex()+"/upvote",
		[]byte(`{"email":"`+email+`"}`))
	c.Params = gin.Params{{Key: "id", Value: id.Hex()}}
	return c
}

func TestUpvoteIssue_FirstVoteSucceeds(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new voter increments the pre-read count", func(mt *mtest.T) {
		ic := NewIssueController(mt.Client.Database("civicfix"))
		id := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "civicfix.issues", mtest.FirstBatch,
				issueDoc(id, "pothole", 0, bson.A{})),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		w := httptest.NewRecorder()
		ic.UpvoteIssue(upvoteContext(w, id, "voter1@x.com"))

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), `"voteCount":1`)
	})
}

func TestUpvoteIssue_SecondVoteBySameEmailConflicts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("voter already in upvotedBy", func(mt *mtest.T) {
		ic := NewIssueController(mt.Client.Database("civicfix"))
		id := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "civicfix.issues", mtest.FirstBatch,
				issueDoc(id, "pothole", 1, bson.A{"voter1@x.com"})),
		)

		w := httptest.NewRecorder()
		ic.UpvoteIssue(upvoteContext(w, id, "voter1@x.com"))

		assert.Equal(mt, http.StatusConflict, w.Code)
	})
}

func TestUpvoteIssue_RacingDuplicateVoteConflicts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate committed between read and update", func(mt *mtest.T) {
		ic := NewIssueController(mt.Client.Database("civicfix"))
		id := primitive.NewObjectID()

		// The snapshot read says the voter is new, but by update time a
		// concurrent request with the same email has committed. The guarded
		// update matches zero documents, so voteCount is never incremented
		// past the size of the upvotedBy set.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "civicfix.issues", mtest.FirstBatch,
				issueDoc(id, "pothole", 0, bson.A{})),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		w := httptest.NewRecorder()
		ic.UpvoteIssue(upvoteContext(w, id, "voter1@x.com"))

		assert.Equal(mt, http.StatusConflict, w.Code)
	})
}

func TestGetAllIssues_TotalCountedBeforePagination(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("total reflects the whole filter, page honors the limit", func(mt *mtest.T) {
		ic := NewIssueController(mt.Client.Database("civicfix"))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "civicfix.issues", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: 5}}),
			mtest.CreateCursorResponse(0, "civicfix.issues", mtest.FirstBatch,
				issueDoc(primitive.NewObjectID(), "a", 0, bson.A{}),
				issueDoc(primitive.NewObjectID(), "b", 0, bson.A{})),
		)

		w := httptest.NewRecorder()
		ic.GetAllIssues(newTestContext(w, http.MethodGet, "/issues?limit=2&skip=0", nil))

		assert.Equal(mt, http.StatusOK, w.Code)

		var resp struct {
			Issues []models.Issue `json:"issues"`
			Total  int64          `json:"total"`
		}
		assert.NoError(mt, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(mt, int64(5), resp.Total)
		assert.Len(mt, resp.Issues, 2)
	})
}
