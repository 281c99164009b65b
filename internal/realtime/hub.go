package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/imincognito/socialhub/internal/logs"
)

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"

	channelPrefix = "realtime:"
)

// Tables observables par les clients
var knownTables = map[string]bool{
	"posts":    true,
	"profiles": true,
	"likes":    true,
	"comments": true,
}

// Event décrit un changement sur une table. Aucun payload de diff : les
// clients rechargent intégralement à la réception, quel que soit le type.
type Event struct {
	Table string `json:"table"`
	Event string `json:"event"`
}

// Hub relaie les évènements de changement entre le pub/sub Redis et les
// abonnés SSE locaux. Avec plusieurs réplicas du serveur, Redis garantit
// que chaque réplica voit les mutations faites par les autres.
type Hub struct {
	rdb *redis.Client

	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		rdb:  rdb,
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Run consomme les canaux realtime:* et diffuse aux abonnés locaux.
// Bloquant : à lancer dans une goroutine depuis main.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		<-ctx.Done()
		return
	}

	pubsub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logs.LogJSON("WARN", "Malformed realtime payload", map[string]interface{}{
					"channel": msg.Channel,
					"payload": msg.Payload,
				})
				continue
			}
			if ev.Table == "" {
				ev.Table = strings.TrimPrefix(msg.Channel, channelPrefix)
			}
			h.broadcast(ev)
		}
	}
}

// Publish annonce un changement sur une table via Redis. Sans client Redis
// (réplica unique, tests), la diffusion reste locale.
func (h *Hub) Publish(ctx context.Context, table, event string) {
	ev := Event{Table: table, Event: event}
	if h.rdb == nil {
		h.broadcast(ev)
		return
	}
	payload, _ := json.Marshal(ev)
	if err := h.rdb.Publish(ctx, channelPrefix+table, payload).Err(); err != nil {
		logs.LogJSON("ERROR", "Realtime publish failed", map[string]interface{}{
			"error": err.Error(),
			"table": table,
			"event": event,
		})
	}
}

// Subscribe enregistre un abonné local sur une table. La fonction retournée
// désinscrit et ferme le canal.
func (h *Hub) Subscribe(table string) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	if h.subs[table] == nil {
		h.subs[table] = make(map[chan Event]struct{})
	}
	h.subs[table][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[table][ch]; ok {
			delete(h.subs[table], ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// broadcast distribue un évènement aux abonnés locaux de la table.
// Envoi non bloquant : un abonné saturé perd des évènements, le rechargement
// suivant le resynchronise de toute façon.
func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.Table] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// KnownTable indique si la table peut être observée
func KnownTable(table string) bool {
	return knownTables[table]
}

var defaultHub *Hub

// Init installe le hub global utilisé par les handlers
func Init(rdb *redis.Client) *Hub {
	defaultHub = NewHub(rdb)
	return defaultHub
}

// Publish annonce un changement via le hub global. Sans hub initialisé
// (tests unitaires), l'appel est un no-op.
func Publish(table, event string) {
	if defaultHub == nil {
		return
	}
	defaultHub.Publish(context.Background(), table, event)
}
