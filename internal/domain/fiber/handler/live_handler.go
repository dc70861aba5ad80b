package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/idealmente/idealmente/internal/repository"
)

// LiveHandler streams collection snapshots over websocket: the full
// ordered collection on connect, then again after every mutation. This
// is the document-variant subscription contract; on the key-value
// variant it only echoes local writes.
type LiveHandler struct {
	store repository.Store
}

func NewLiveHandler(store repository.Store) *LiveHandler {
	return &LiveHandler{store: store}
}

var liveCollections = map[string]repository.Collection{
	repository.Ideas.Name:    repository.Ideas,
	repository.Meetings.Name: repository.Meetings,
	repository.Reports.Name:  repository.Reports,
}

func (h *LiveHandler) RegisterRoutes(app *fiber.App) {
	app.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/live/:collection", websocket.New(h.stream))
}

func (h *LiveHandler) stream(c *websocket.Conn) {
	defer c.Close()

	col, ok := liveCollections[c.Params("collection")]
	if !ok {
		c.WriteJSON(map[string]string{"error": "unknown collection"})
		return
	}

	// Buffered so a slow socket never blocks the publishing writer;
	// intermediate snapshots may be dropped, the latest always lands.
	snapshots := make(chan []repository.Document, 8)
	unsubscribe := h.store.Subscribe(col, func(docs []repository.Document) {
		select {
		case snapshots <- docs:
		default:
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case docs := <-snapshots:
			payload := make([]json.RawMessage, len(docs))
			for i, d := range docs {
				payload[i] = d.Data
			}
			if err := c.WriteJSON(payload); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
