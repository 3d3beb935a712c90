package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"audioathlete/internal/data/repository/repotest"
	"audioathlete/pkg/token"
	"audioathlete/pkg/utils"

	"go.uber.org/zap/zaptest"
)

type testAPI struct {
	t      *testing.T
	router http.Handler
	store  *repotest.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	config := &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "wire-test-secret",
			Issuer:      "audioathlete-test",
			Audience:    "audioathlete-test-app",
			ExpiryHours: 8,
		},
		CORS: utils.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	store := repotest.NewStore()
	app := Wiring(store.Repository(), config, token.NewIssuer(config.JWT), zaptest.NewLogger(t))

	return &testAPI{t: t, router: app.Router, store: store}
}

// do sends body as JSON and decodes the reply into out when out is non-nil
func (a *testAPI) do(method, path, body string, out any, headers ...string) int {
	a.t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

type createUserReply struct {
	Message        string `json:"message"`
	UserID         int64  `json:"user_id"`
	AssignedTeamID *int64 `json:"assigned_team_id"`
}

func TestRegistrationScenario(t *testing.T) {
	api := newTestAPI(t)

	var coach createUserReply
	code := api.do(http.MethodPost, "/api/users",
		`{"name":"A","username":"a","password":"p","userType":"coach","email":"a@x.com","teamName":"T"}`, &coach)
	if code != http.StatusOK {
		t.Fatalf("coach status = %d", code)
	}
	if coach.UserID == 0 || coach.AssignedTeamID == nil {
		t.Fatalf("coach reply = %+v", coach)
	}

	var player createUserReply
	body := `{"name":"B","username":"b","password":"p","userType":"player","coachId":` + itoa(coach.UserID) + `}`
	code = api.do(http.MethodPost, "/api/users", body, &player)
	if code != http.StatusOK {
		t.Fatalf("player status = %d", code)
	}
	if player.AssignedTeamID == nil || *player.AssignedTeamID != *coach.AssignedTeamID {
		t.Fatalf("player team = %v, want %d", player.AssignedTeamID, *coach.AssignedTeamID)
	}

	var team struct {
		TeamName  string  `json:"teamName"`
		CoachName string  `json:"coachName"`
		PlayerIDs []int64 `json:"playerIds"`
	}
	code = api.do(http.MethodGet, "/api/teams/"+itoa(*coach.AssignedTeamID), "", &team)
	if code != http.StatusOK || team.TeamName != "T" || team.CoachName != "A" {
		t.Fatalf("team %d = %+v", code, team)
	}
	if len(team.PlayerIDs) != 1 || team.PlayerIDs[0] != player.UserID {
		t.Fatalf("playerIds = %v", team.PlayerIDs)
	}
}

func TestRegistrationErrors(t *testing.T) {
	api := newTestAPI(t)

	var errBody utils.ErrorResponse
	code := api.do(http.MethodPost, "/api/users",
		`{"name":"B","username":"b","password":"p","userType":"player","coachId":42}`, &errBody)
	if code != http.StatusBadRequest || errBody.Error != "Invalid coach or coach has no team." {
		t.Fatalf("bad coach: %d %+v", code, errBody)
	}
	if api.store.CountUsers() != 0 {
		t.Fatalf("users = %d after rejected registration", api.store.CountUsers())
	}

	code = api.do(http.MethodPost, "/api/users", `{"name":"B"}`, &errBody)
	if code != http.StatusBadRequest || errBody.Fields["username"] == "" {
		t.Fatalf("missing fields: %d %+v", code, errBody)
	}

	var tooLong utils.ErrorResponse
	code = api.do(http.MethodPost, "/api/users",
		`{"name":"A","username":"a","password":"`+strings.Repeat("é", 40)+`","userType":"coach","email":"a@x.com","teamName":"T"}`, &tooLong)
	if code != http.StatusBadRequest || tooLong.Fields["password"] == "" || tooLong.Fields["name"] != "" {
		t.Fatalf("multibyte password: %d %+v", code, tooLong)
	}

	code = api.do(http.MethodPost, "/api/users", `{not json`, &errBody)
	if code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", code)
	}

	body := `{"name":"A","username":"a","password":"p","userType":"coach","email":"a@x.com","teamName":"T"}`
	if code := api.do(http.MethodPost, "/api/users", body, nil); code != http.StatusOK {
		t.Fatalf("first coach status = %d", code)
	}
	if code := api.do(http.MethodPost, "/api/users", body, &errBody); code != http.StatusConflict {
		t.Fatalf("duplicate username status = %d", code)
	}
}

func TestLoginAndMe(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodPost, "/api/users",
		`{"name":"A","username":"a","password":"secret","userType":"coach","email":"a@x.com","teamName":"T"}`, nil)

	var errBody utils.ErrorResponse
	code := api.do(http.MethodPost, "/api/login", `{"username":"a","password":"wrong"}`, &errBody)
	if code != http.StatusUnauthorized || errBody.Error != "Invalid username or password." {
		t.Fatalf("wrong password: %d %+v", code, errBody)
	}

	code = api.do(http.MethodPost, "/api/login", `{"username":"","password":""}`, &errBody)
	if code != http.StatusBadRequest || errBody.Error != "Username and password are required." {
		t.Fatalf("blank login: %d %+v", code, errBody)
	}

	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID       int64   `json:"id"`
			Username string  `json:"username"`
			Password *string `json:"password"`
		} `json:"user"`
	}
	code = api.do(http.MethodPost, "/api/login", `{"username":"a","password":"secret"}`, &login)
	if code != http.StatusOK || login.Message != "Login successful!" || login.Token == "" {
		t.Fatalf("login: %d %+v", code, login)
	}
	if login.User.Password != nil {
		t.Fatal("login response leaked the password")
	}

	var me struct {
		ID       int64  `json:"id"`
		UserType string `json:"userType"`
	}
	code = api.do(http.MethodGet, "/api/users/me", "", &me, "Authorization", "Bearer "+login.Token)
	if code != http.StatusOK || me.ID != login.User.ID || me.UserType != "coach" {
		t.Fatalf("me: %d %+v", code, me)
	}

	if code := api.do(http.MethodGet, "/api/users/me", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("me without token status = %d", code)
	}
}

func TestWorkoutAndPromptFlow(t *testing.T) {
	api := newTestAPI(t)

	var coach createUserReply
	api.do(http.MethodPost, "/api/users",
		`{"name":"A","username":"a","password":"p","userType":"coach","email":"a@x.com","teamName":"T"}`, &coach)
	teamID, coachID := itoa(*coach.AssignedTeamID), itoa(coach.UserID)

	// missing scheduledDate inserts nothing
	var errBody utils.ErrorResponse
	code := api.do(http.MethodPost, "/api/workouts",
		`{"teamId":`+teamID+`,"coachId":`+coachID+`,"title":"Intervals"}`, &errBody)
	if code != http.StatusBadRequest || errBody.Error != "Missing or invalid required fields." {
		t.Fatalf("missing date: %d %+v", code, errBody)
	}
	code = api.do(http.MethodPost, "/api/workouts",
		`{"teamId":`+teamID+`,"coachId":`+coachID+`,"title":"Intervals","scheduledDate":"soon"}`, &errBody)
	if code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", code)
	}
	if api.store.CountWorkouts() != 0 {
		t.Fatalf("workouts = %d", api.store.CountWorkouts())
	}

	var workout struct {
		WorkoutID int64 `json:"workout_id"`
	}
	code = api.do(http.MethodPost, "/api/workouts",
		`{"teamId":`+teamID+`,"coachId":`+coachID+`,"title":"Intervals","scheduledDate":"2025-04-01"}`, &workout)
	if code != http.StatusOK || workout.WorkoutID == 0 {
		t.Fatalf("create workout: %d %+v", code, workout)
	}
	workoutID := itoa(workout.WorkoutID)

	for _, minutes := range []string{"4", "6"} {
		code = api.do(http.MethodPost, "/api/prompts",
			`{"workoutId":`+workoutID+`,"blockLength":`+minutes+`,"instruction":"run"}`, nil)
		if code != http.StatusOK {
			t.Fatalf("add prompt status = %d", code)
		}
	}

	var listing struct {
		WorkoutID          int64 `json:"workoutId"`
		TotalLengthMinutes int   `json:"totalLengthMinutes"`
		Prompts            []struct {
			ID          int64 `json:"id"`
			BlockLength int   `json:"blockLength"`
		} `json:"prompts"`
	}
	code = api.do(http.MethodGet, "/api/prompts/"+workoutID, "", &listing)
	if code != http.StatusOK || listing.TotalLengthMinutes != 10 || len(listing.Prompts) != 2 {
		t.Fatalf("prompts: %d %+v", code, listing)
	}

	var stored struct {
		TotalLengthSec int `json:"totalLengthSec"`
	}
	api.do(http.MethodGet, "/api/workouts/"+workoutID, "", &stored)
	if stored.TotalLengthSec != 600 {
		t.Fatalf("totalLengthSec = %d, want 600", stored.TotalLengthSec)
	}

	// prompts on an unknown workout are a 404 here
	code = api.do(http.MethodPost, "/api/prompts", `{"workoutId":999,"blockLength":1,"instruction":"x"}`, &errBody)
	if code != http.StatusNotFound || errBody.Error != "Workout not found." {
		t.Fatalf("prompt for missing workout: %d %+v", code, errBody)
	}

	// restricted team delete while the workout exists
	if code := api.do(http.MethodDelete, "/api/teams/"+teamID, "", nil); code != http.StatusConflict {
		t.Fatalf("delete team with workouts status = %d", code)
	}

	var msg utils.MessageResponse
	code = api.do(http.MethodDelete, "/api/prompts/"+itoa(listing.Prompts[0].ID), "", &msg)
	if code != http.StatusOK || msg.Message != "Prompt deleted successfully!" {
		t.Fatalf("delete prompt: %d %+v", code, msg)
	}

	code = api.do(http.MethodDelete, "/api/workouts/"+workoutID, "", &msg)
	if code != http.StatusOK || msg.Message != "Workout deleted successfully!" {
		t.Fatalf("delete workout: %d %+v", code, msg)
	}
	if api.store.CountPrompts() != 0 {
		t.Fatalf("prompts = %d after workout delete", api.store.CountPrompts())
	}

	code = api.do(http.MethodDelete, "/api/workouts/"+workoutID, "", &errBody)
	if code != http.StatusNotFound || errBody.Error != "Workout not found." {
		t.Fatalf("second delete: %d %+v", code, errBody)
	}

	code = api.do(http.MethodDelete, "/api/teams/"+teamID, "", &msg)
	if code != http.StatusOK || msg.Message != "Team deleted successfully!" {
		t.Fatalf("delete team: %d %+v", code, msg)
	}
}

func TestInvalidIDs(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/teams/0", "/api/teams/abc", "/api/workouts/-1", "/api/users/x"} {
		if code := api.do(http.MethodGet, path, "", nil); code != http.StatusBadRequest {
			t.Fatalf("GET %s status = %d, want 400", path, code)
		}
	}

	var errBody utils.ErrorResponse
	code := api.do(http.MethodGet, "/api/teams/5", "", &errBody)
	if code != http.StatusNotFound || errBody.Error != "Team not found." {
		t.Fatalf("missing team: %d %+v", code, errBody)
	}
	if code := api.do(http.MethodDelete, "/api/users/5", "", nil); code != http.StatusNotFound {
		t.Fatalf("delete missing user status = %d", code)
	}
}

func TestListsAreArrays(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/users", "/api/teams", "/api/workouts?page=2&per_page=5"} {
		var list []json.RawMessage
		if code := api.do(http.MethodGet, path, "", &list); code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, code)
		}
		if list == nil || len(list) != 0 {
			t.Fatalf("GET %s = %v, want empty array", path, list)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	api := newTestAPI(t)

	var probe struct {
		Test int `json:"test"`
	}
	if code := api.do(http.MethodGet, "/api/test", "", &probe); code != http.StatusOK || probe.Test != 1 {
		t.Fatalf("probe: %d %+v", code, probe)
	}

	var msg utils.MessageResponse
	if code := api.do(http.MethodPost, "/api/test", `{"message":"hi"}`, &msg); code != http.StatusOK || msg.Message != "Received: hi" {
		t.Fatalf("echo: %d %+v", code, msg)
	}

	var errBody utils.ErrorResponse
	if code := api.do(http.MethodPost, "/api/test", `{"message":""}`, &errBody); code != http.StatusBadRequest || errBody.Error != "Message is required." {
		t.Fatalf("blank echo: %d %+v", code, errBody)
	}

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "OK" {
		t.Fatalf("health: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header missing")
	}
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
