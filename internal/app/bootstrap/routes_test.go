package bootstrap

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slopepool/slopepool/internal/testutil"
	"go.uber.org/zap"
)

func testAppConfig() AppConfig {
	return AppConfig{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, nil, testAppConfig(), deps, zap.NewNop()); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}
}

// TestBuildHandler_FullFlow drives the mounted router end to end:
// register, log in, create a drive, and have a second user join it,
// with real bearer tokens flowing through the middleware.
func TestBuildHandler_FullFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	if err := EnsureSchema(ctx, nil, testAppConfig(), deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	handler, err := BuildHandler(nil, testAppConfig(), deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	do := func(method, path, token string, body any) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, method, path, body)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}
	register := func(name, email string) string {
		t.Helper()
		rec := do("POST", "/users", "", map[string]string{
			"name": name, "email": email, "phone": "555-0100", "password": "hunter22",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("register %s: got %d (body %s)", email, rec.Code, rec.Body.String())
		}
		var body struct {
			Token string `json:"token"`
		}
		testutil.DecodeJSON(t, rec, &body)
		return body.Token
	}

	driverToken := register("Dana Driver", "dana@example.com")
	riderToken := register("Sam Rider", "sam@example.com")

	// Unauthenticated requests are rejected at the middleware.
	if rec := do("GET", "/drives", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: got %d, want 401", rec.Code)
	}

	// Login returns a working token too.
	rec := do("POST", "/auth", "", map[string]string{
		"email": "dana@example.com", "password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d (body %s)", rec.Code, rec.Body.String())
	}

	// The rider needs a profile before joining.
	rec = do("POST", "/profiles", riderToken, map[string]any{
		"grade": "intermediate", "type": "snowboard",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: got %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = do("POST", "/drives", driverToken, map[string]any{
		"leaving_date": time.Now().AddDate(0, 0, 7).Format("01/02/2006"),
		"leaving_time": "07:00",
		"resort":       "Brighton",
		"seats":        2,
		"description":  "Early start up the canyon",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create drive: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var drive struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec, &drive)

	rec = do("PUT", fmt.Sprintf("/drives/join/%s", drive.ID), riderToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("join: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var group []struct {
		Name string `json:"name"`
	}
	testutil.DecodeJSON(t, rec, &group)
	if len(group) != 2 || group[0].Name != "Sam Rider" {
		t.Errorf("unexpected group after join: %+v", group)
	}

	// The listing shows the drive with one seat left.
	rec = do("GET", "/drives", riderToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var drives []struct {
		Seats int `json:"seats"`
	}
	testutil.DecodeJSON(t, rec, &drives)
	if len(drives) != 1 || drives[0].Seats != 1 {
		t.Errorf("unexpected listing: %+v", drives)
	}
}
