package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/tidwall/gjson"
)

// Collection describes one stored record set and the single field its
// snapshots are ordered by.
type Collection struct {
	Name       string
	OrderField string
	Descending bool
	// BlobKey is the key the key-value variant stores the whole
	// collection under.
	BlobKey string
}

var (
	Ideas    = Collection{Name: "ideas", OrderField: "createdAt", Descending: true, BlobKey: "ideas_v1"}
	Meetings = Collection{Name: "meetings", OrderField: "date", BlobKey: "meetings_v1"}
	Reports  = Collection{Name: "reports", OrderField: "uploadedAt", Descending: true, BlobKey: "reports_v1"}
)

// Document is one whole record as stored: opaque JSON plus its id.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Store is the persistence adapter shared by both backends. Writes
// swallow failures by design: they are logged inside the adapter and
// never surfaced, so a failed save silently loses the write. Reads
// degrade to an empty collection. Subscribe delivers the full current
// ordered collection immediately and again after every mutation; the
// returned func tears the subscription down.
type Store interface {
	LoadAll(ctx context.Context, col Collection) []Document
	Save(ctx context.Context, col Collection, id string, data json.RawMessage)
	Delete(ctx context.Context, col Collection, id string)
	Subscribe(col Collection, fn func([]Document)) (unsubscribe func())
}

// sortDocuments orders docs by the collection's declared field.
// Numeric fields (epoch millis) compare numerically, everything else
// lexically, which is correct for ISO dates.
func sortDocuments(docs []Document, col Collection) {
	sort.SliceStable(docs, func(i, j int) bool {
		a := gjson.GetBytes(docs[i].Data, col.OrderField)
		b := gjson.GetBytes(docs[j].Data, col.OrderField)
		if a.Type == gjson.Number && b.Type == gjson.Number {
			if col.Descending {
				return a.Float() > b.Float()
			}
			return a.Float() < b.Float()
		}
		if col.Descending {
			return a.String() > b.String()
		}
		return a.String() < b.String()
	})
}
