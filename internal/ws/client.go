package ws

import (
	"net/http"
	"time"

	"tsena-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Le contrôle d'origine est délégué au reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	envoi  chan []byte
}

// ServeWS promeut la requête HTTP en websocket et attache la session au hub.
// L'appelant a déjà authentifié l'utilisateur.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Warn("upgrade websocket refusé", zap.Error(err))
		return
	}

	c := &Client{
		hub:    hub,
		userID: userID,
		conn:   conn,
		envoi:  make(chan []byte, 16),
	}
	hub.attacher(c)

	go c.pompeEcriture()
	go c.pompeLecture()
}

// pompeLecture ne consomme que les pongs ; le canal est descendant. Sa sortie
// déclenche le détachement, donc la libération de la session.
func (c *Client) pompeLecture() {
	defer func() {
		c.hub.detacher(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) pompeEcriture() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.envoi:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
