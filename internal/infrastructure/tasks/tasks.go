// Package tasks define los tipos de tarea asíncrona y el cliente que las
// encola en Redis (asynq).
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/chcomputer/almacen-api/internal/application/inventory"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
)

// Tipos de tarea registrados en el worker.
const (
	TypeLowStockAlert = "alerts:low_stock"
)

// LowStockPayload datos de la alerta de stock bajo.
type LowStockPayload struct {
	ProductID   string `json:"productId"`
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	MinStock    int    `json:"minStock"`
	Location    string `json:"location,omitempty"`
}

var _ inventory.LowStockNotifier = (*Client)(nil)

// Client encola tareas en Redis. Implementa inventory.LowStockNotifier.
type Client struct {
	client *asynq.Client
}

// NewClient construye el cliente de tareas sobre la conexión Redis dada.
func NewClient(redisOpt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpt)}
}

// NotifyLowStock encola una alerta de stock bajo para el producto. Las
// alertas del mismo producto dentro de la ventana de retención se deduplican
// por TaskID.
func (c *Client) NotifyLowStock(ctx context.Context, product *entity.Product) error {
	payload, err := json.Marshal(LowStockPayload{
		ProductID:   product.ID,
		ProductCode: product.Code,
		ProductName: product.Name,
		Quantity:    product.Quantity,
		MinStock:    product.MinStock,
		Location:    product.Location,
	})
	if err != nil {
		return fmt.Errorf("tasks: serializar alerta: %w", err)
	}
	task := asynq.NewTask(TypeLowStockAlert, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.TaskID("low_stock:"+product.ID),
		asynq.Queue("alerts"),
		asynq.MaxRetry(3),
		asynq.Retention(time.Hour),
	)
	if err != nil {
		// La tarea del mismo producto ya está en cola: no es un error.
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("tasks: encolar alerta: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *Client) Close() error {
	return c.client.Close()
}
