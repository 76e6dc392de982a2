package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"tastygram/mq"
	"tastygram/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Feed pushes engagement events from the redis channel to connected
// websocket clients. Counts delivered this way are eventually
// consistent: a client may see a value that lags the write set by one
// notification cycle.
type Feed struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]string // conn -> recipeID filter ("" = all)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func NewFeed() *Feed {
	return &Feed{clients: make(map[*websocket.Conn]string)}
}

// Run consumes the engagement channel until ctx is done. Call in a
// goroutine from main.
func (f *Feed) Run(ctx context.Context) {
	sub := rdx.Subscribe(ctx, mq.EngagementChannel)
	if sub == nil {
		log.Println("live: redis unavailable, feed disabled")
		return
	}
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev mq.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("live: bad event payload: %v", err)
				continue
			}
			f.broadcast(ev, []byte(msg.Payload))
		}
	}
}

func (f *Feed) broadcast(ev mq.Event, payload []byte) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for conn, filter := range f.clients {
		if filter != "" && filter != ev.RecipeID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Read loop will drop the client.
			log.Printf("live: write failed: %v", err)
		}
	}
}

func (f *Feed) register(conn *websocket.Conn, recipeID string) {
	f.mu.Lock()
	f.clients[conn] = recipeID
	f.mu.Unlock()
}

func (f *Feed) unregister(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
}

// HandleWebSocket upgrades the connection and streams events until the
// client goes away. `?recipe=<id>` narrows the feed to one recipe.
func (f *Feed) HandleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	f.register(conn, r.URL.Query().Get("recipe"))

	go func() {
		defer func() {
			f.unregister(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
