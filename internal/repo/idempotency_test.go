package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdempotency_ScopedBySessionAndRoute(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	body := []byte(`{"reply":"안녕","status":"continue"}`)

	if _, err := CreateIdempotency(ctx, db, "s1", "/api/v1/quiz/talk", "k1", 200, body, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := GetIdempotency(ctx, db, "s1", "/api/v1/quiz/talk", "k1", time.Now())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != 200 || string(got.Response) != string(body) {
		t.Fatalf("unexpected record: status=%d body=%s", got.Status, got.Response)
	}

	misses := []struct{ session, route, key string }{
		{"s2", "/api/v1/quiz/talk", "k1"},
		{"s1", "/api/v1/conversation/talk", "k1"},
		{"s1", "/api/v1/quiz/talk", "k2"},
		{"", "/api/v1/quiz/talk", "k1"},
	}
	for _, m := range misses {
		if _, err := GetIdempotency(ctx, db, m.session, m.route, m.key, time.Now()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%+v: expected ErrNotFound, got %v", m, err)
		}
	}
}

func TestIdempotency_CreateGetAndExpiry(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	if _, err := GetIdempotency(ctx, db, "", "/quiz/talk", "k", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty session should be ErrNotFound, got %v", err)
	}

	rec, err := CreateIdempotency(ctx, db, "s1", "/quiz/talk", "k1", 200, []byte(`{"reply":"ok"}`), time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	got, err := GetIdempotency(ctx, db, "s1", "/quiz/talk", "k1", time.Now())
	if err != nil || got.ID != rec.ID || string(got.Response) != `{"reply":"ok"}` {
		t.Fatalf("unexpected get: %+v err=%v", got, err)
	}
	if _, err := GetIdempotency(ctx, db, "s1", "/quiz/talk", "k1", time.Now().Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record should be ErrNotFound, got %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "s1", "/quiz/talk", "k1", 200, []byte(`{}`), time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateIdempotency_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, err := CreateIdempotency(context.Background(), db, "s", "/r", "k", 200, []byte(`{}`), time.Minute); err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected raw DB error, got %v", err)
	}
}

func TestMapDuplicate(t *testing.T) {
	plain := errors.New("disk I/O error")
	cases := []struct {
		in   error
		want error
	}{
		{nil, nil},
		{errors.New("UNIQUE constraint failed: analyses.talk_id"), ErrDuplicate},
		{errors.New(`ERROR: duplicate key value violates unique constraint "ux_profile_week"`), ErrDuplicate},
		{plain, plain},
	}
	for _, tc := range cases {
		if got := mapDuplicate(tc.in); got != tc.want {
			t.Fatalf("mapDuplicate(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
