package realtime

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// UpgradeRequired rejects plain HTTP requests on the realtime endpoint.
func UpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler upgrades the connection and ties it into the hub for the lifetime
// of the socket. Connections are unauthenticated: the broadcast carries all
// ticket mutations and clients filter by ownership locally.
func Handler(hub *Hub, sendBuffer int) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient(conn, sendBuffer)
		hub.Register(client)
		go client.WritePump()
		client.ReadPump(hub)
	})
}
