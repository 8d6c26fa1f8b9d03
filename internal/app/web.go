// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/gps_fix/internal/config"
	"github.com/relabs-tech/gps_fix/internal/gps"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// fixHub keeps the latest fix and fans new ones out to websocket clients.
type fixHub struct {
	mu      sync.RWMutex
	last    gps.Fix
	haveFix bool
	clients map[chan gps.Fix]struct{}
}

func newFixHub() *fixHub {
	return &fixHub{clients: make(map[chan gps.Fix]struct{})}
}

func (h *fixHub) publish(f gps.Fix) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = f
	h.haveFix = true
	for ch := range h.clients {
		select {
		case ch <- f:
		default:
			// Slow client; it will catch up with the next fix.
		}
	}
}

func (h *fixHub) subscribe() chan gps.Fix {
	ch := make(chan gps.Fix, 8)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ch] = struct{}{}
	if h.haveFix {
		ch <- h.last
	}
	return ch
}

func (h *fixHub) unsubscribe(ch chan gps.Fix) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// handleLatest serves the latest fix as JSON.
func (h *fixHub) handleLatest(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.haveFix {
		http.Error(w, "no fix yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.last); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

// handleWS streams every fix to the client, starting with the latest one.
func (h *fixHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	// The client never sends; reading only detects that it went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("web: websocket error: %v", err)
				}
				h.unsubscribe(ch)
				return
			}
		}
	}()

	for f := range ch {
		if err := conn.WriteJSON(f); err != nil {
			return
		}
	}
}

func (h *fixHub) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gps", h.handleLatest)
	mux.HandleFunc("/ws/gps", h.handleWS)
	// Static files from ./web as the root
	mux.Handle("/", http.FileServer(http.Dir("web")))
	return mux
}

func RunWeb() error {
	cfg := config.Get()
	hub := newFixHub()

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to the fix topic and fan each fix out
	token := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("web: MQTT payload unmarshal error: %v", err)
			return
		}
		hub.publish(f)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicGPS)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: listening on %s", addr)
	return http.ListenAndServe(addr, hub.routes())
}
