package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"audioathlete/pkg/token"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

var testJWT = utils.JWTConfig{
	Secret:      "middleware-test-secret",
	Issuer:      "audioathlete-test",
	Audience:    "audioathlete-test-app",
	ExpiryHours: 8,
}

// whoami echoes the identity the auth middleware stored
func whoami(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := r.Context().Value(utils.RoleKey).(string)
	utils.ResponseSuccess(w, map[string]any{"userId": userID, "role": role})
}

func TestAuthJWTAcceptsValidToken(t *testing.T) {
	issuer := token.NewIssuer(testJWT)
	raw, _, err := issuer.Issue(7, "coach")
	if err != nil {
		t.Fatal(err)
	}

	handler := AuthJWT(issuer, zaptest.NewLogger(t))(http.HandlerFunc(whoami))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		UserID int64  `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.UserID != 7 || body.Role != "coach" {
		t.Fatalf("identity = %+v", body)
	}
}

func TestAuthJWTRejects(t *testing.T) {
	issuer := token.NewIssuer(testJWT)
	past := issuer.WithClock(func() time.Time { return time.Now().Add(-9 * time.Hour) })
	expired, _, err := past.Issue(7, "coach")
	if err != nil {
		t.Fatal(err)
	}
	valid, _, err := issuer.Issue(7, "coach")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "Missing authorization token"},
		{"wrong scheme", "Basic " + valid, "Invalid token format. Use: Bearer <token>"},
		{"no token", "Bearer ", "Invalid token format. Use: Bearer <token>"},
		{"garbage", "Bearer not.a.jwt", "Invalid token"},
		{"expired", "Bearer " + expired, "Token expired"},
	}

	handler := AuthJWT(issuer, zaptest.NewLogger(t))(http.HandlerFunc(whoami))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body utils.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tt.want {
				t.Fatalf("error = %q, want %q", body.Error, tt.want)
			}
		})
	}
}

func TestRecoverWritesJSONError(t *testing.T) {
	handler := Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if got := rec.Body.String(); got != "{\"error\":\"Internal server error\"}\n" {
		t.Fatalf("body = %q", got)
	}
}

func TestLoggerAssignsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var seen string
	handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/teams", nil))

	id := rec.Header().Get(RequestIDHeader)
	if !utils.ValidRequestID(id) || id != seen {
		t.Fatalf("header id %q, context id %q", id, seen)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["request_id"] != id {
		t.Fatalf("log fields = %v", fields)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("level = %s, want warn for 4xx", entries[0].Level)
	}
}

func TestLoggerReusesValidRequestID(t *testing.T) {
	handler := Logger(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	incoming := utils.GenerateRequestID()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Fatalf("request id = %q, want %q", got, incoming)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Allow-Origin for unknown origin = %q", got)
	}
}
