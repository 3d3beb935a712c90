package usecase

import (
	"context"
	"errors"
	"testing"

	"audioathlete/internal/dto/request"
)

func TestProbe(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Diagnostics.Probe(context.Background())
	if err != nil || resp.Test != 1 {
		t.Fatalf("Probe = %+v, %v", resp, err)
	}

	store.Fail("health.probe", errors.New("connection refused"))
	_, err = svc.Diagnostics.Probe(context.Background())
	svcErr := requireKind(t, err, KindStore)
	if svcErr.Message != "health.probe: connection refused" {
		t.Fatalf("message = %q, want raw store error", svcErr.Message)
	}
}

func TestEcho(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Diagnostics.Echo(&request.EchoRequest{Message: "ping"})
	if err != nil || resp.Message != "Received: ping" {
		t.Fatalf("Echo = %+v, %v", resp, err)
	}

	_, err = svc.Diagnostics.Echo(&request.EchoRequest{Message: "  "})
	svcErr := requireKind(t, err, KindValidation)
	if svcErr.Message != "Message is required." {
		t.Fatalf("message = %q", svcErr.Message)
	}
}
