package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func newTestContext(t *testing.T) *StepContext {
	t.Helper()

	req := NewRequest(http.MethodGet, "http://test.invalid/").WithStatusCodes(200)
	sc, err := NewStepContext(context.Background(), req)
	if err != nil {
		t.Fatalf("NewStepContext failed: %v", err)
	}
	return sc
}

func TestNewStepContext(t *testing.T) {
	sc := newTestContext(t)

	if sc.ID == "" {
		t.Fatal("context should carry an execution ID")
	}
	if sc.Requester == nil {
		t.Fatal("context should carry a configured requester")
	}
	if len(sc.StatusCodes) != 1 || sc.StatusCodes[0] != 200 {
		t.Fatalf("accepted codes not copied from the descriptor: %v", sc.StatusCodes)
	}
	if _, ok := sc.NextStep(); ok {
		t.Fatal("next step should default to absent")
	}
	if sc.Elapsed() != 0 {
		t.Fatal("elapsed should start at zero")
	}
}

func TestStepContext_TakeRequestConsumesOnce(t *testing.T) {
	sc := newTestContext(t)

	hr, err := sc.TakeRequest()
	if err != nil {
		t.Fatalf("first take failed: %v", err)
	}
	if hr == nil {
		t.Fatal("expected a request handle")
	}

	if _, err := sc.TakeRequest(); !errors.Is(err, ErrRequestConsumed) {
		t.Fatalf("second take should fail with ErrRequestConsumed, got %v", err)
	}
}

func TestStepContext_NextStepAccessors(t *testing.T) {
	sc := newTestContext(t)

	sc.SetNextStep("Checkout")
	next, ok := sc.NextStep()
	if !ok || next != "Checkout" {
		t.Fatalf("unexpected next step %q (set=%v)", next, ok)
	}

	sc.ClearNextStep()
	if _, ok := sc.NextStep(); ok {
		t.Fatal("ClearNextStep should remove the hint")
	}
}

func TestStepContext_BodyBytesSnapshot(t *testing.T) {
	sc := newTestContext(t)

	if sc.BodyBytes() != nil {
		t.Fatal("no response means no bytes")
	}

	sc.SetResponse(200, []byte("hello"), "")
	first := sc.BodyBytes()
	first[0] = 'x'

	if string(sc.BodyBytes()) != "hello" {
		t.Fatal("BodyBytes must return an independent copy")
	}
}

func TestStepContext_BodyText(t *testing.T) {
	sc := newTestContext(t)

	if sc.BodyText() != "" {
		t.Fatal("no response should decode to the empty string")
	}

	sc.SetResponse(200, []byte("héllo"), "")
	if sc.BodyText() != "héllo" {
		t.Fatalf("unexpected utf-8 decode %q", sc.BodyText())
	}
}

func TestStepContext_BodyTextCharsetHint(t *testing.T) {
	sc := newTestContext(t)

	// "café" in ISO 8859-1: é is a single 0xE9 byte.
	sc.SetResponse(200, []byte{'c', 'a', 'f', 0xE9}, "iso-8859-1")
	if sc.BodyText() != "café" {
		t.Fatalf("charset hint not honored, got %q", sc.BodyText())
	}

	// An unknown label falls back to UTF-8.
	sc.SetResponse(200, []byte("plain"), "no-such-charset")
	if sc.BodyText() != "plain" {
		t.Fatalf("unknown charset should fall back to utf-8, got %q", sc.BodyText())
	}
}

func TestStepContext_BodyJSON(t *testing.T) {
	sc := newTestContext(t)

	var out map[string]int
	if err := sc.BodyJSON(&out); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}

	sc.SetResponse(200, []byte(`{"a":1}`), "")
	if err := sc.BodyJSON(&out); err != nil {
		t.Fatalf("BodyJSON failed: %v", err)
	}
	if out["a"] != 1 {
		t.Fatalf("unexpected decode %v", out)
	}

	sc.SetResponse(200, []byte("not json"), "")
	if err := sc.BodyJSON(&out); err == nil {
		t.Fatal("invalid JSON should fail")
	}
}

func TestStepContext_ClearResponse(t *testing.T) {
	sc := newTestContext(t)

	sc.SetResponse(204, []byte("gone soon"), "")
	sc.ClearResponse()

	if sc.BodyBytes() != nil {
		t.Fatal("cleared response should not be readable")
	}
	if sc.StatusCode() != 204 {
		t.Fatal("status code should survive ClearResponse")
	}
}
