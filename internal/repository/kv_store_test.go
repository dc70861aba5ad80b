package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idealmente/idealmente/internal/model"
)

func newTestKV(t *testing.T) *KVStore {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "test.db"), NewHub())
	if err != nil {
		t.Fatalf("OpenKV: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestKVRoundTripPreservesValue(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	idea := model.NewIdea("Marketplace B2B", "per PMI", "🚀", "", "", "Marco")
	kv.Save(ctx, Ideas, idea.ID, mustMarshal(t, idea))

	docs := kv.LoadAll(ctx, Ideas)
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(docs))
	}
	var got model.Idea
	if err := json.Unmarshal(docs[0].Data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Equal by value: empty comments and ratings must survive the trip.
	if !reflect.DeepEqual(got, idea) {
		t.Errorf("round trip changed the record:\n got %+v\nwant %+v", got, idea)
	}
}

func TestKVOrderingNewestIdeaFirst(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	kv.Save(ctx, Ideas, "old", json.RawMessage(`{"id":"old","createdAt":1000}`))
	kv.Save(ctx, Ideas, "new", json.RawMessage(`{"id":"new","createdAt":2000}`))

	docs := kv.LoadAll(ctx, Ideas)
	if len(docs) != 2 || docs[0].ID != "new" || docs[1].ID != "old" {
		t.Errorf("order = %v", docs)
	}
}

func TestKVOrderingMeetingsDateAscending(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	kv.Save(ctx, Meetings, "b", json.RawMessage(`{"id":"b","date":"2026-09-15"}`))
	kv.Save(ctx, Meetings, "a", json.RawMessage(`{"id":"a","date":"2026-09-01"}`))

	docs := kv.LoadAll(ctx, Meetings)
	if len(docs) != 2 || docs[0].ID != "a" || docs[1].ID != "b" {
		t.Errorf("order = %v", docs)
	}
}

func TestKVSaveOverwritesByID(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	kv.Save(ctx, Ideas, "x", json.RawMessage(`{"id":"x","createdAt":1,"title":"prima"}`))
	kv.Save(ctx, Ideas, "x", json.RawMessage(`{"id":"x","createdAt":1,"title":"dopo"}`))

	docs := kv.LoadAll(ctx, Ideas)
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(docs))
	}
	if string(docs[0].Data) != `{"id":"x","createdAt":1,"title":"dopo"}` {
		t.Errorf("data = %s", docs[0].Data)
	}
}

func TestKVDeleteOnlyRecordLeavesEmpty(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	kv.Save(ctx, Ideas, "x", json.RawMessage(`{"id":"x","createdAt":1}`))
	kv.Delete(ctx, Ideas, "x")

	if docs := kv.LoadAll(ctx, Ideas); len(docs) != 0 {
		t.Errorf("docs = %v, want empty", docs)
	}
}

func TestKVLoadMissingCollection(t *testing.T) {
	kv := newTestKV(t)
	if docs := kv.LoadAll(context.Background(), Reports); docs == nil || len(docs) != 0 {
		t.Errorf("docs = %v, want empty slice", docs)
	}
}

func TestKVSubscribeEchoesWrites(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	var snapshots [][]Document
	unsubscribe := kv.Subscribe(Ideas, func(docs []Document) {
		snapshots = append(snapshots, docs)
	})
	defer unsubscribe()

	// Immediate snapshot on subscribe, then one per mutation.
	if len(snapshots) != 1 || len(snapshots[0]) != 0 {
		t.Fatalf("initial snapshots = %v", snapshots)
	}
	kv.Save(ctx, Ideas, "x", json.RawMessage(`{"id":"x","createdAt":1}`))
	if len(snapshots) != 2 || len(snapshots[1]) != 1 {
		t.Fatalf("snapshots after save = %d", len(snapshots))
	}
	kv.Delete(ctx, Ideas, "x")
	if len(snapshots) != 3 || len(snapshots[2]) != 0 {
		t.Fatalf("snapshots after delete = %d", len(snapshots))
	}

	unsubscribe()
	kv.Save(ctx, Ideas, "y", json.RawMessage(`{"id":"y","createdAt":2}`))
	if len(snapshots) != 3 {
		t.Error("unsubscribed callback still invoked")
	}
}

func TestKVPrefsRoundTrip(t *testing.T) {
	kv := newTestKV(t)

	if _, ok, err := kv.Get("anthropic_key"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}
	if err := kv.Set("anthropic_key", "sk-ant-test"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := kv.Get("anthropic_key")
	if err != nil || !ok || got != "sk-ant-test" {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}
}
