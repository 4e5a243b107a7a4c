package http

import (
	"encoding/json"
	"net/http"

	"github.com/Wyydra/dial/internal/core/service"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// maxMessageSize bounds inbound frames; SDP payloads fit comfortably.
const maxMessageSize = 64 * 1024

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: only for dev
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSClient implements port.Client over a gorilla websocket connection.
type WSClient struct {
	id   string
	conn *websocket.Conn
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) Send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(Envelope{Event: event, Data: raw})
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}
	conn.SetReadLimit(maxMessageSize)

	client := &WSClient{
		id:   uuid.New().String(),
		conn: conn,
	}

	l := log.With().Str("client_id", client.id).Logger()
	l.Info().Msg("New client connected")

	h.Relay.Attach(client)

	defer func() {
		l.Info().Msg("Client disconnected")
		h.Relay.Detach(client)
		conn.Close()
	}()

	// listening for browser
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		if env.Event == "" {
			l.Warn().Msg("Frame without event name, dropping")
			continue
		}

		h.Relay.Dispatch(service.Event{
			Sender: client,
			Name:   env.Event,
			Data:   env.Data,
		})
	}
}
