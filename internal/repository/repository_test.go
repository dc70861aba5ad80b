package repository

import (
	"encoding/json"
	"testing"
)

func TestSortDocumentsDescending(t *testing.T) {
	docs := []Document{
		{ID: "old", Data: json.RawMessage(`{"id":"old","createdAt":1000}`)},
		{ID: "mid", Data: json.RawMessage(`{"id":"mid","createdAt":1500}`)},
		{ID: "new", Data: json.RawMessage(`{"id":"new","createdAt":2000}`)},
	}
	sortDocuments(docs, Ideas)
	if docs[0].ID != "new" || docs[1].ID != "mid" || docs[2].ID != "old" {
		t.Errorf("order = %s %s %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}
}

func TestSortDocumentsDescendingEqualValues(t *testing.T) {
	// Numerically equal order fields in different textual forms must
	// compare equal, keeping the stable input order.
	docs := []Document{
		{ID: "a", Data: json.RawMessage(`{"id":"a","createdAt":1e3}`)},
		{ID: "b", Data: json.RawMessage(`{"id":"b","createdAt":1000}`)},
		{ID: "c", Data: json.RawMessage(`{"id":"c","createdAt":2000}`)},
	}
	sortDocuments(docs, Ideas)
	if docs[0].ID != "c" {
		t.Errorf("first = %s, want c", docs[0].ID)
	}
	if docs[1].ID != "a" || docs[2].ID != "b" {
		t.Errorf("equal values reordered: %s %s", docs[1].ID, docs[2].ID)
	}
}

func TestSortDocumentsDateAscending(t *testing.T) {
	docs := []Document{
		{ID: "b", Data: json.RawMessage(`{"id":"b","date":"2026-09-15"}`)},
		{ID: "a", Data: json.RawMessage(`{"id":"a","date":"2026-09-01"}`)},
	}
	sortDocuments(docs, Meetings)
	if docs[0].ID != "a" || docs[1].ID != "b" {
		t.Errorf("order = %s %s", docs[0].ID, docs[1].ID)
	}
}
