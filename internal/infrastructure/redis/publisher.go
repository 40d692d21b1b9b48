// Package redis publica eventos de stock confirmados en un canal Redis (pub/sub).
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/pos-stock/internal/application/inventory"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var _ inventory.EventPublisher = (*Publisher)(nil)

// Tipos de evento publicados.
const (
	EventMovementRecorded = "stock.movement_recorded"
	EventLowStock         = "stock.low_stock"
)

// Event sobre publicado en el canal.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type movementPayload struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	MovementType    string          `json:"movement_type"`
	Quantity        int             `json:"quantity"`
	PreviousStock   int             `json:"previous_stock"`
	NewStock        int             `json:"new_stock"`
	ReferenceNumber string          `json:"reference_number"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ProcessedBy     string          `json:"processed_by"`
}

type lowStockPayload struct {
	InventoryID  string `json:"inventory_id"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimum_stock"`
	Location     string `json:"location,omitempty"`
}

// Publisher implementa EventPublisher sobre go-redis.
type Publisher struct {
	client  *goredis.Client
	channel string
	now     func() time.Time
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewPublisher construye el publicador sobre el canal dado.
func NewPublisher(client *goredis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel, now: time.Now}
}

// PublishMovement publica un movimiento ya confirmado.
func (p *Publisher) PublishMovement(ctx context.Context, m *entity.StockMovement) error {
	return p.publish(ctx, MovementEvent(m, p.now()))
}

// PublishLowStock publica una alerta de stock bajo.
func (p *Publisher) PublishLowStock(ctx context.Context, inv *entity.Inventory) error {
	return p.publish(ctx, LowStockEvent(inv, p.now()))
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// MovementEvent arma el evento de un movimiento registrado.
func MovementEvent(m *entity.StockMovement, at time.Time) Event {
	return Event{
		Type:       EventMovementRecorded,
		OccurredAt: at,
		Payload: movementPayload{
			ID:              m.ID,
			ProductID:       m.ProductID,
			MovementType:    string(m.Type),
			Quantity:        m.Quantity,
			PreviousStock:   m.PreviousStock,
			NewStock:        m.NewStock,
			ReferenceNumber: m.ReferenceNumber,
			UnitCost:        m.UnitCost,
			ProcessedBy:     m.ProcessedBy,
		},
	}
}

// LowStockEvent arma la alerta de stock bajo.
func LowStockEvent(inv *entity.Inventory, at time.Time) Event {
	return Event{
		Type:       EventLowStock,
		OccurredAt: at,
		Payload: lowStockPayload{
			InventoryID:  inv.ID,
			ProductID:    inv.ProductID,
			Quantity:     inv.Quantity,
			MinimumStock: inv.MinimumStock,
			Location:     inv.Location,
		},
	}
}
