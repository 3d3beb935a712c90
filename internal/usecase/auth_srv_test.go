package usecase

import (
	"context"
	"testing"
	"time"

	"audioathlete/internal/dto/request"
	"audioathlete/pkg/token"
)

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)
	coachID, teamID := mustCoach(t, svc, "a")

	resp, err := svc.Auth.Login(context.Background(), &request.LoginRequest{Username: "a", Password: "p"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.Message != "Login successful!" || resp.Token == "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.User.ID != coachID || resp.User.TeamID == nil || *resp.User.TeamID != teamID {
		t.Fatalf("user summary = %+v", resp.User)
	}

	identity, err := token.NewIssuer(testJWTConfig).Verify(resp.Token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if identity.UserID != coachID || identity.Role != "coach" {
		t.Fatalf("identity = %+v", identity)
	}

	ttl := time.Until(resp.ExpiresAt)
	if ttl <= 7*time.Hour || ttl > 8*time.Hour {
		t.Fatalf("token lifetime = %v, want about 8h", ttl)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	mustCoach(t, svc, "a")

	for _, req := range []*request.LoginRequest{
		{Username: "a", Password: "wrong"},
		{Username: "nobody", Password: "p"},
	} {
		resp, err := svc.Auth.Login(context.Background(), req)
		svcErr := requireKind(t, err, KindAuthentication)
		if svcErr.Message != "Invalid username or password." {
			t.Fatalf("message = %q", svcErr.Message)
		}
		if resp != nil {
			t.Fatal("token issued on failed login")
		}
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Auth.Login(context.Background(), &request.LoginRequest{Username: "  ", Password: "p"})
	svcErr := requireKind(t, err, KindValidation)
	if svcErr.Message != "Username and password are required." {
		t.Fatalf("message = %q", svcErr.Message)
	}
}
