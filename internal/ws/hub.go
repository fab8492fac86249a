// Package ws porte le canal de notifications temps réel : un hub qui indexe
// les sessions websocket par utilisateur et leur pousse les notifications.
package ws

import (
	"encoding/json"
	"sync"

	"tsena-be/internal/logger"
	"tsena-be/internal/model"

	"go.uber.org/zap"
)

type Hub struct {
	mu sync.RWMutex

	// Un utilisateur peut avoir plusieurs sessions ouvertes (onglets).
	sessions map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*Client]bool)}
}

func (h *Hub) attacher(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[c.userID] == nil {
		h.sessions[c.userID] = make(map[*Client]bool)
	}
	h.sessions[c.userID][c] = true
}

// detacher libère la session de façon déterministe : appelé une seule fois,
// à la fermeture du socket, quel que soit le côté qui ferme.
func (h *Hub) detacher(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[c.userID]
	if !ok {
		return
	}
	if clients[c] {
		delete(clients, c)
		close(c.envoi)
	}
	if len(clients) == 0 {
		delete(h.sessions, c.userID)
	}
}

// Diffuser pousse la notification vers toutes les sessions du destinataire.
// Une session saturée est fermée plutôt que de bloquer les autres.
//
// L'envoi se fait sous le verrou de lecture : detacher ferme le canal sous le
// verrou exclusif, donc fermeture et envoi ne se croisent jamais.
func (h *Hub) Diffuser(destinataireID string, n *model.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		logger.L().Error("sérialisation notification impossible", zap.Error(err))
		return
	}

	h.mu.RLock()
	var satures []*Client
	for c := range h.sessions[destinataireID] {
		select {
		case c.envoi <- payload:
		default:
			satures = append(satures, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range satures {
		h.detacher(c)
	}
}

// NbSessions sert aux tests et au diagnostic.
func (h *Hub) NbSessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}
