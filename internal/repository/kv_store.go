package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite"
)

// KVStore is the flat key-value variant: each collection is one JSON
// blob under a fixed key, rewritten whole on every mutation. Backed by
// a local SQLite file so it survives restarts without a server.
type KVStore struct {
	db  *sql.DB
	hub *Hub
}

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// OpenKV opens (creating if needed) the SQLite file at path.
func OpenKV(path string, hub *Hub) (*KVStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if hub == nil {
		hub = NewHub()
	}
	return &KVStore{db: db, hub: hub}, nil
}

func (s *KVStore) Close() error { return s.db.Close() }

// Get returns the raw string stored under key, with ok=false when the
// key is absent.
func (s *KVStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KVStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// LoadAll deserializes the collection blob. Any failure degrades to an
// empty collection.
func (s *KVStore) LoadAll(_ context.Context, col Collection) []Document {
	raw, ok, err := s.Get(col.BlobKey)
	if err != nil {
		log.Printf("kv: reading %s: %v", col.BlobKey, err)
		return []Document{}
	}
	if !ok {
		return []Document{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("kv: decoding %s: %v", col.BlobKey, err)
		return []Document{}
	}
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		docs = append(docs, Document{ID: gjson.GetBytes(item, "id").String(), Data: item})
	}
	sortDocuments(docs, col)
	return docs
}

// Save upserts one record and rewrites the whole blob. Failures are
// logged and swallowed.
func (s *KVStore) Save(ctx context.Context, col Collection, id string, data json.RawMessage) {
	docs := s.LoadAll(ctx, col)
	replaced := false
	for i := range docs {
		if docs[i].ID == id {
			docs[i].Data = data
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, Document{ID: id, Data: data})
	}
	sortDocuments(docs, col)
	s.writeBlob(ctx, col, docs)
}

// Delete removes the record with the given id, if present.
func (s *KVStore) Delete(ctx context.Context, col Collection, id string) {
	docs := s.LoadAll(ctx, col)
	kept := docs[:0]
	for _, d := range docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.writeBlob(ctx, col, kept)
}

func (s *KVStore) writeBlob(ctx context.Context, col Collection, docs []Document) {
	items := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		items[i] = d.Data
	}
	blob, err := json.Marshal(items)
	if err != nil {
		log.Printf("kv: encoding %s: %v", col.BlobKey, err)
		return
	}
	if err := s.Set(col.BlobKey, string(blob)); err != nil {
		log.Printf("kv: writing %s: %v", col.BlobKey, err)
		return
	}
	s.hub.Publish(col, docs)
}

// Subscribe delivers the current snapshot immediately, then again on
// every local mutation. This variant has no remote writers, so the
// feed only ever echoes this process's own saves.
func (s *KVStore) Subscribe(col Collection, fn func([]Document)) func() {
	unsub := s.hub.Subscribe(col, fn)
	fn(s.LoadAll(context.Background(), col))
	return unsub
}
