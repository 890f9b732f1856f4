package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/imanmaris99/amimum-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// OrderWebSocketHandler streams order events (creation and status changes)
// to connected clients.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

type orderEvent struct {
	OrderID string             `json:"order_id"`
	UserID  string             `json:"user_id"`
	Status  models.OrderStatus `json:"status"`
}

// BroadcastOrder pushes an order's current state to all websocket clients.
// Called after order creation and after payment reconciliation commits.
func BroadcastOrder(order *models.Order) {
	if order == nil {
		return
	}
	data, err := json.Marshal(orderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
	})
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
