package drives_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slopepool/slopepool/internal/app/features/drives"
	"github.com/slopepool/slopepool/internal/app/system/dateval"
	"github.com/slopepool/slopepool/internal/domain/models"
	"github.com/slopepool/slopepool/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateval.Layout)
}

func driveBody(seats int) map[string]any {
	return map[string]any{
		"leaving_date": futureDate(7),
		"leaving_time": "07:00",
		"resort":       "Brighton",
		"seats":        seats,
		"description":  "Early start up the canyon",
	}
}

func withDrive(r *http.Request, userID primitive.ObjectID, driveID string) *http.Request {
	r = testutil.WithUser(r, userID)
	return testutil.WithChiURLParam(r, "id", driveID)
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	testutil.DecodeJSON(t, rec, &body)
	return body.Msg
}

func TestCreateDrive_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	profile := fixtures.CreateProfile(ctx, owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/drives", driveBody(3))
	rec := httptest.NewRecorder()
	h.HandleCreateDrive(rec, testutil.WithUser(req, owner.ID))

	if rec.Code != http.StatusOK {
		t.Fatalf("create status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var created models.Drive
	testutil.DecodeJSON(t, rec, &created)
	if created.UserID != owner.ID || created.Name != owner.Name || created.Avatar != owner.Avatar {
		t.Errorf("owner snapshot wrong: %+v", created)
	}
	if created.Seats != 3 || created.Resort != "Brighton" || created.LeavingTime != "07:00" {
		t.Errorf("trip fields wrong: %+v", created)
	}
	if len(created.Group) != 1 {
		t.Fatalf("group: got %d entries, want 1", len(created.Group))
	}
	first := created.Group[0]
	if first.UserID != owner.ID || first.Name != owner.Name || first.Phone != owner.Phone {
		t.Errorf("group[0] user snapshot wrong: %+v", first)
	}
	if first.Grade != profile.Grade || first.Type != profile.Type {
		t.Errorf("group[0] profile snapshot wrong: %+v", first)
	}

	// GET by id returns the same record.
	getReq := withDrive(httptest.NewRequest("GET", "/drives/"+created.ID.Hex(), nil), owner.ID, created.ID.Hex())
	getRec := httptest.NewRecorder()
	h.ServeDrive(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("get status: got %d, want 200", getRec.Code)
	}
	var got models.Drive
	testutil.DecodeJSON(t, getRec, &got)
	if got.ID != created.ID || got.Seats != created.Seats || got.Description != created.Description {
		t.Errorf("round trip mismatch: %+v vs %+v", got, created)
	}
	if !got.LeavingDate.Equal(created.LeavingDate) {
		t.Errorf("leaving date: got %v, want %v", got.LeavingDate, created.LeavingDate)
	}
}

func TestCreateDrive_DateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")

	cases := []struct {
		name   string
		date   string
		wantOK bool
	}{
		{"month 13 rejected", "13/01/2025", false},
		{"yesterday rejected", time.Now().AddDate(0, 0, -1).Format(dateval.Layout), false},
		{"today accepted", time.Now().Format(dateval.Layout), true},
		{"future accepted", futureDate(30), true},
		{"not zero padded rejected", "1/02/2030", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := driveBody(3)
			body["leaving_date"] = tc.date
			req := testutil.NewJSONRequest(t, "POST", "/drives", body)
			rec := httptest.NewRecorder()
			h.HandleCreateDrive(rec, testutil.WithUser(req, owner.ID))

			if tc.wantOK && rec.Code != http.StatusOK {
				t.Fatalf("got %d, want 200 (body %s)", rec.Code, rec.Body.String())
			}
			if !tc.wantOK && rec.Code != http.StatusBadRequest {
				t.Fatalf("got %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateDrive_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/drives", map[string]any{
		"leaving_date": futureDate(7),
	})
	rec := httptest.NewRecorder()
	h.HandleCreateDrive(rec, testutil.WithUser(req, owner.ID))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Errors []struct {
			Param string `json:"param"`
		} `json:"errors"`
	}
	testutil.DecodeJSON(t, rec, &body)
	want := map[string]bool{"leaving_time": true, "resort": true, "seats": true, "description": true}
	if len(body.Errors) != len(want) {
		t.Fatalf("got %d errors, want %d: %+v", len(body.Errors), len(want), body.Errors)
	}
	for _, e := range body.Errors {
		if !want[e.Param] {
			t.Errorf("unexpected error param %q", e.Param)
		}
	}
}

func TestUpdateDrive_OwnerOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	stranger := fixtures.CreateUser(ctx, "Sam", "sam@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	body := driveBody(2)
	body["resort"] = "Snowbird"

	// Non-owner: 401 and the record unchanged.
	req := testutil.NewJSONRequest(t, "PUT", "/drives/"+drive.ID.Hex(), body)
	rec := httptest.NewRecorder()
	h.HandleUpdateDrive(rec, withDrive(req, stranger.ID, drive.ID.Hex()))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-owner status: got %d, want 401", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Not authorized" {
		t.Errorf("msg: got %q", msg)
	}
	unchanged := fixtures.GetDrive(ctx, drive.ID)
	if unchanged.Resort != drive.Resort || unchanged.Seats != drive.Seats {
		t.Errorf("record changed by rejected update: %+v", unchanged)
	}

	// Owner: 200 and the trip fields replaced, group untouched.
	req = testutil.NewJSONRequest(t, "PUT", "/drives/"+drive.ID.Hex(), body)
	rec = httptest.NewRecorder()
	h.HandleUpdateDrive(rec, withDrive(req, owner.ID, drive.ID.Hex()))

	if rec.Code != http.StatusOK {
		t.Fatalf("owner status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var updated models.Drive
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Resort != "Snowbird" || updated.Seats != 2 {
		t.Errorf("fields not updated: %+v", updated)
	}
	if len(updated.Group) != 1 || updated.Group[0].UserID != owner.ID {
		t.Errorf("group changed by update: %+v", updated.Group)
	}
}

func TestUpdateDrive_NegativeSeats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	req := testutil.NewJSONRequest(t, "PUT", "/drives/"+drive.ID.Hex(), driveBody(-1))
	rec := httptest.NewRecorder()
	h.HandleUpdateDrive(rec, withDrive(req, owner.ID, drive.ID.Hex()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Seats cannot be negative" {
		t.Errorf("msg: got %q", msg)
	}
}

func TestUpdateDrive_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")

	// Well-formed but absent id.
	req := testutil.NewJSONRequest(t, "PUT", "/drives/x", driveBody(2))
	rec := httptest.NewRecorder()
	h.HandleUpdateDrive(rec, withDrive(req, owner.ID, primitive.NewObjectID().Hex()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("absent id: got %d, want 404", rec.Code)
	}

	// Malformed id reads the same as absent.
	req = testutil.NewJSONRequest(t, "PUT", "/drives/x", driveBody(2))
	rec = httptest.NewRecorder()
	h.HandleUpdateDrive(rec, withDrive(req, owner.ID, "not-a-hex-id"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed id: got %d, want 404", rec.Code)
	}
}

func TestDeleteDrive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	stranger := fixtures.CreateUser(ctx, "Sam", "sam@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	// Non-owner: 401, record stays.
	rec := httptest.NewRecorder()
	h.HandleDeleteDrive(rec, withDrive(httptest.NewRequest("DELETE", "/drives/x", nil), stranger.ID, drive.ID.Hex()))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-owner status: got %d, want 401", rec.Code)
	}
	fixtures.GetDrive(ctx, drive.ID) // fails the test if the record vanished

	// Owner: 200 with the confirmation message.
	rec = httptest.NewRecorder()
	h.HandleDeleteDrive(rec, withDrive(httptest.NewRequest("DELETE", "/drives/x", nil), owner.ID, drive.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("owner status: got %d, want 200", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Drive removed" {
		t.Errorf("msg: got %q", msg)
	}

	// Gone now.
	rec = httptest.NewRecorder()
	h.HandleDeleteDrive(rec, withDrive(httptest.NewRequest("DELETE", "/drives/x", nil), owner.ID, drive.ID.Hex()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted drive: got %d, want 404", rec.Code)
	}
}

func TestJoinLeave_SeatAccounting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	riders := make([]models.User, 3)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		riders[i] = fixtures.CreateUser(ctx, "Rider", email)
		fixtures.CreateProfile(ctx, riders[i].ID)
	}

	join := func(u models.User) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.HandleJoinDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/join/x", nil), u.ID, drive.ID.Hex()))
		return rec
	}
	leave := func(u models.User) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.HandleLeaveDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/leave/x", nil), u.ID, drive.ID.Hex()))
		return rec
	}

	// Three joins fill the drive.
	for i, u := range riders {
		rec := join(u)
		if rec.Code != http.StatusOK {
			t.Fatalf("join %d: got %d (body %s)", i, rec.Code, rec.Body.String())
		}
	}
	got := fixtures.GetDrive(ctx, drive.ID)
	if got.Seats != 0 {
		t.Errorf("seats after 3 joins: got %d, want 0", got.Seats)
	}
	if len(got.Group) != 4 {
		t.Errorf("group after 3 joins: got %d, want 4", len(got.Group))
	}

	// Full drive rejects a fourth rider.
	extra := fixtures.CreateUser(ctx, "Extra", "extra@example.com")
	fixtures.CreateProfile(ctx, extra.ID)
	rec := join(extra)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("join full: got %d, want 400", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Drive is full" {
		t.Errorf("msg: got %q", msg)
	}
	if after := fixtures.GetDrive(ctx, drive.ID); after.Seats != 0 || len(after.Group) != 4 {
		t.Errorf("rejected join changed state: seats=%d group=%d", after.Seats, len(after.Group))
	}

	// Two leaves free two seats.
	for i, u := range riders[:2] {
		rec := leave(u)
		if rec.Code != http.StatusOK {
			t.Fatalf("leave %d: got %d (body %s)", i, rec.Code, rec.Body.String())
		}
	}
	got = fixtures.GetDrive(ctx, drive.ID)
	if got.Seats != 2 {
		t.Errorf("seats after 3 joins, 2 leaves: got %d, want 2", got.Seats)
	}
	if len(got.Group) != 2 {
		t.Errorf("group after 3 joins, 2 leaves: got %d, want 2", len(got.Group))
	}
	// The driver never left.
	found := false
	for _, e := range got.Group {
		if e.UserID == owner.ID {
			found = true
		}
	}
	if !found {
		t.Error("driver missing from group")
	}
}

func TestJoinDrive_Twice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)
	rider := fixtures.CreateUser(ctx, "Sam", "sam@example.com")
	fixtures.CreateProfile(ctx, rider.ID)

	rec := httptest.NewRecorder()
	h.HandleJoinDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/join/x", nil), rider.ID, drive.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("first join: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleJoinDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/join/x", nil), rider.ID, drive.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second join: got %d, want 400", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Already joined this drive" {
		t.Errorf("msg: got %q", msg)
	}

	got := fixtures.GetDrive(ctx, drive.ID)
	count := 0
	for _, e := range got.Group {
		if e.UserID == rider.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("rider appears %d times in group, want 1", count)
	}
}

func TestJoinDrive_RequiresProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)
	rider := fixtures.CreateUser(ctx, "Sam", "sam@example.com") // no profile

	rec := httptest.NewRecorder()
	h.HandleJoinDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/join/x", nil), rider.ID, drive.ID.Hex()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Create a profile before joining a drive" {
		t.Errorf("msg: got %q", msg)
	}
	if got := fixtures.GetDrive(ctx, drive.ID); len(got.Group) != 1 || got.Seats != 3 {
		t.Errorf("rejected join changed state: %+v", got)
	}
}

func TestLeaveDrive_NotMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)
	outsider := fixtures.CreateUser(ctx, "Sam", "sam@example.com")

	rec := httptest.NewRecorder()
	h.HandleLeaveDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/leave/x", nil), outsider.ID, drive.ID.Hex()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Not a member of this drive" {
		t.Errorf("msg: got %q", msg)
	}
	if got := fixtures.GetDrive(ctx, drive.ID); len(got.Group) != 1 || got.Seats != 3 {
		t.Errorf("rejected leave changed state: %+v", got)
	}
}

func TestLeaveDrive_DriverMayLeave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	rec := httptest.NewRecorder()
	h.HandleLeaveDrive(rec, withDrive(httptest.NewRequest("PUT", "/drives/leave/x", nil), owner.ID, drive.ID.Hex()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	got := fixtures.GetDrive(ctx, drive.ID)
	if len(got.Group) != 0 || got.Seats != 4 {
		t.Errorf("unexpected state after driver leave: %+v", got)
	}
	// Ownership is unchanged.
	if got.UserID != owner.ID {
		t.Errorf("owner changed: %s", got.UserID.Hex())
	}
}

func TestComments_AddAndRemove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	author := fixtures.CreateUser(ctx, "Sam", "sam@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	addComment := func(u models.User, text string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "POST", "/drives/comment/x", map[string]string{"text": text})
		rec := httptest.NewRecorder()
		h.HandleAddComment(rec, withDrive(req, u.ID, drive.ID.Hex()))
		return rec
	}

	// The author leaves two comments, the owner one.
	if rec := addComment(author, "First!"); rec.Code != http.StatusOK {
		t.Fatalf("add comment: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if rec := addComment(owner, "Welcome aboard"); rec.Code != http.StatusOK {
		t.Fatalf("add comment: got %d", rec.Code)
	}
	rec := addComment(author, "What time at the park and ride?")
	if rec.Code != http.StatusOK {
		t.Fatalf("add comment: got %d", rec.Code)
	}
	var comments []models.Comment
	testutil.DecodeJSON(t, rec, &comments)
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	// Newest first.
	if comments[0].Text != "What time at the park and ride?" {
		t.Errorf("comments not prepended: %+v", comments[0])
	}
	target := comments[2] // the author's first comment

	// A non-author cannot remove it.
	req := withDrive(httptest.NewRequest("DELETE", "/drives/comment/x/y", nil), owner.ID, drive.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", target.ID)
	recDel := httptest.NewRecorder()
	h.HandleRemoveComment(recDel, req)
	if recDel.Code != http.StatusUnauthorized {
		t.Fatalf("non-author remove: got %d, want 401", recDel.Code)
	}
	if msg := decodeMsg(t, recDel); msg != "Not authorized" {
		t.Errorf("msg: got %q", msg)
	}

	// The author removes exactly the addressed comment.
	req = withDrive(httptest.NewRequest("DELETE", "/drives/comment/x/y", nil), author.ID, drive.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", target.ID)
	recDel = httptest.NewRecorder()
	h.HandleRemoveComment(recDel, req)
	if recDel.Code != http.StatusOK {
		t.Fatalf("author remove: got %d (body %s)", recDel.Code, recDel.Body.String())
	}
	var remaining []models.Comment
	testutil.DecodeJSON(t, recDel, &remaining)
	if len(remaining) != 2 {
		t.Fatalf("got %d comments, want 2", len(remaining))
	}
	for _, c := range remaining {
		if c.ID == target.ID {
			t.Error("target comment still present")
		}
	}
	// The author's other comment survives.
	if remaining[0].Text != "What time at the park and ride?" {
		t.Errorf("wrong comment removed: %+v", remaining)
	}
}

func TestRemoveComment_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	req := withDrive(httptest.NewRequest("DELETE", "/drives/comment/x/y", nil), owner.ID, drive.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", "no-such-comment")
	rec := httptest.NewRecorder()
	h.HandleRemoveComment(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "Comment not found" {
		t.Errorf("msg: got %q", msg)
	}
}

func TestAddComment_SanitizedEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	drive := fixtures.CreateDrive(ctx, owner, dateval.StartOfDay(time.Now()).AddDate(0, 0, 7), 3)

	// Markup-only text sanitizes to nothing.
	req := testutil.NewJSONRequest(t, "POST", "/drives/comment/x", map[string]string{"text": "<script>alert(1)</script>"})
	rec := httptest.NewRecorder()
	h.HandleAddComment(rec, withDrive(req, owner.ID, drive.ID.Hex()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestServeActiveDrives_FiltersAndSorts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	today := dateval.StartOfDay(time.Now())

	soon := fixtures.CreateDrive(ctx, owner, today.AddDate(0, 0, 1), 2)
	later := fixtures.CreateDrive(ctx, owner, today.AddDate(0, 0, 9), 2)
	fixtures.CreateDrive(ctx, owner, today.AddDate(0, 0, -2), 2) // departed

	req := testutil.WithUser(httptest.NewRequest("GET", "/drives", nil), owner.ID)
	rec := httptest.NewRecorder()
	h.ServeActiveDrives(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got []models.Drive
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 2 {
		t.Fatalf("got %d drives, want 2", len(got))
	}
	if got[0].ID != later.ID || got[1].ID != soon.ID {
		t.Errorf("wrong order: %s, %s", got[0].ID.Hex(), got[1].ID.Hex())
	}
}

func TestServeMyDrives(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := drives.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Dana", "dana@example.com")
	other := fixtures.CreateUser(ctx, "Sam", "sam@example.com")
	today := dateval.StartOfDay(time.Now())

	mine := fixtures.CreateDrive(ctx, owner, today.AddDate(0, 0, 3), 3)
	joined := fixtures.CreateDrive(ctx, other, today.AddDate(0, 0, 5), 3)
	fixtures.AddGroupEntry(ctx, joined, owner)
	fixtures.CreateDrive(ctx, other, today.AddDate(0, 0, 8), 3) // not mine

	req := testutil.WithUser(httptest.NewRequest("GET", "/drives/dashboard/me", nil), owner.ID)
	rec := httptest.NewRecorder()
	h.ServeMyDrives(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got []models.Drive
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 2 {
		t.Fatalf("got %d drives, want 2", len(got))
	}
	ids := map[primitive.ObjectID]bool{got[0].ID: true, got[1].ID: true}
	if !ids[mine.ID] || !ids[joined.ID] {
		t.Errorf("wrong drives: %+v", ids)
	}
}
