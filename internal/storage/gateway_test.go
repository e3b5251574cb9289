package storage

import (
	"context"
	"errors"
	"testing"

	"slidedeck/internal/domain"
)

func sampleDeck() domain.SlideList {
	return domain.SlideList{
		{ID: 1, Title: "Hello", Content: "world", Type: domain.KindHero, Tags: []string{"a", "b"}, AccentColor: "#fff"},
		{ID: 2, Title: "Second", Subtitle: "sub", Content: "body", Type: domain.KindSplit, ImageURL: "https://example.org/x.png", AccentColor: "#000"},
	}
}

func TestGatewaySaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			kv, err := OpenKV(Options{Backend: backend, Dir: t.TempDir(), MaxBackups: 2})
			if err != nil {
				t.Fatalf("OpenKV: %v", err)
			}
			defer func() { _ = kv.Close() }()
			gw := NewGateway(kv, "")
			if gw.Slot() != DefaultSlot {
				t.Fatalf("Slot() = %q", gw.Slot())
			}
			if _, ok, err := gw.LoadRaw(ctx); ok || err != nil {
				t.Fatalf("empty slot: ok=%v err=%v", ok, err)
			}
			want := sampleDeck()
			if err := gw.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			raw, ok, err := gw.LoadRaw(ctx)
			if err != nil || !ok {
				t.Fatalf("LoadRaw: ok=%v err=%v", ok, err)
			}
			got, err := Decode(raw)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Equal(want) {
				t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
			}
			if err := gw.Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, ok, err := gw.LoadRaw(ctx); ok || err != nil {
				t.Fatalf("after Clear: ok=%v err=%v", ok, err)
			}
			if err := gw.Clear(ctx); err != nil {
				t.Fatalf("Clear of empty slot: %v", err)
			}
		})
	}
}

type brokenKV struct{ err error }

func (b brokenKV) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenKV) Put(context.Context, string, []byte) error   { return b.err }
func (b brokenKV) Delete(context.Context, string) error        { return b.err }
func (b brokenKV) Close() error                                { return nil }

func TestGatewayWrapsBackendErrors(t *testing.T) {
	boom := errors.New("disk full")
	gw := NewGateway(brokenKV{err: boom}, "deck")
	if err := gw.Save(context.Background(), sampleDeck()); !errors.Is(err, boom) {
		t.Fatalf("Save should wrap backend error, got %v", err)
	}
	if _, ok, err := gw.LoadRaw(context.Background()); ok || !errors.Is(err, boom) {
		t.Fatalf("LoadRaw should wrap backend error, got ok=%v err=%v", ok, err)
	}
	if err := gw.Clear(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Clear should wrap backend error, got %v", err)
	}
}
