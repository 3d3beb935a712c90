package utils

import (
	"context"
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("StrongPass1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "StrongPass1" {
		t.Fatal("expected hash to differ from the plaintext")
	}
	if !CheckPasswordHash("StrongPass1", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("WrongPass1", hash) {
		t.Fatal("expected wrong password to be rejected")
	}

	other, err := HashPassword("StrongPass1")
	if err != nil {
		t.Fatalf("hash password again: %v", err)
	}
	if other == hash {
		t.Fatal("expected salted hashes to differ")
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]struct {
		id int64
		ok bool
	}{
		"12":  {12, true},
		" 3 ": {3, true},
		"0":   {0, false},
		"-4":  {0, false},
		"abc": {0, false},
		"":    {0, false},
	}

	for raw, want := range cases {
		id, ok := ParseID(raw)
		if id != want.id || ok != want.ok {
			t.Fatalf("ParseID(%q) = (%d, %v), want (%d, %v)", raw, id, ok, want.id, want.ok)
		}
	}
}

func TestParseIntFallsBackToDefault(t *testing.T) {
	if got := ParseInt("", 10); got != 10 {
		t.Fatalf("expected default for empty, got %d", got)
	}
	if got := ParseInt("x", 10); got != 10 {
		t.Fatalf("expected default for garbage, got %d", got)
	}
	if got := ParseInt("0", 10); got != 10 {
		t.Fatalf("expected default for zero, got %d", got)
	}
	if got := ParseInt("25", 10); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type payload struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
		Kind  string `json:"userType" validate:"required,oneof=coach player"`
	}

	errs := ValidateStruct(payload{Email: "nope", Kind: "admin"})
	if errs["name"] != "This field is required" {
		t.Fatalf("expected required message for name, got %q", errs["name"])
	}
	if errs["email"] != "Invalid email format" {
		t.Fatalf("expected email message, got %q", errs["email"])
	}
	if errs["userType"] != "Must be one of: coach, player" {
		t.Fatalf("expected oneof message, got %q", errs["userType"])
	}

	if got := FormatValidationErrors(errs); got != "email: Invalid email format; name: This field is required; userType: Must be one of: coach, player" {
		t.Fatalf("unexpected formatted errors: %q", got)
	}

	if !HasRequiredError(errs) {
		t.Fatal("expected missing name to count as a required error")
	}
	if HasRequiredError(ValidateStruct(payload{Name: "A", Email: "nope", Kind: "coach"})) {
		t.Fatal("expected a bad email alone not to count as a required error")
	}

	if errs := ValidateStruct(payload{Name: "A", Kind: "coach"}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Port: "8080"},
		JWT: JWTConfig{Secret: "s", Issuer: "api", Audience: "app", ExpiryHours: 8},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	noAudience := *cfg
	noAudience.JWT.Audience = ""
	if err := noAudience.Validate(); err == nil || !strings.Contains(err.Error(), "JWT_AUDIENCE") {
		t.Fatalf("expected audience error, got %v", err)
	}
	noIssuer := *cfg
	noIssuer.JWT.Issuer = ""
	if err := noIssuer.Validate(); err == nil || !strings.Contains(err.Error(), "JWT_ISSUER") {
		t.Fatalf("expected issuer error, got %v", err)
	}

	cfg.JWT.Secret = ""
	cfg.JWT.ExpiryHours = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty secret and zero expiry")
	}
}

func TestDatabaseConnString(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "app", SSLMode: "disable"}
	if got := cfg.ConnString(); got != "host=db port=5432 user=u password=p dbname=app sslmode=disable" {
		t.Fatalf("unexpected conn string %q", got)
	}

	cfg.URL = "postgres://u:p@db:5432/app"
	if got := cfg.ConnString(); got != cfg.URL {
		t.Fatalf("expected DATABASE_URL to win, got %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserContext(context.Background(), 9, "player")

	id, ok := GetUserIDFromContext(ctx)
	if !ok || id != 9 {
		t.Fatalf("expected user id 9, got %d (%v)", id, ok)
	}
	if role, _ := ctx.Value(RoleKey).(string); role != "player" {
		t.Fatalf("expected role player, got %q", role)
	}

	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Fatal("expected no user id on empty context")
	}
}

func TestValidRequestID(t *testing.T) {
	if !ValidRequestID(GenerateRequestID()) {
		t.Fatal("expected generated id to be valid")
	}
	if ValidRequestID("") || ValidRequestID("drop table users") {
		t.Fatal("expected junk ids to be rejected")
	}
}
