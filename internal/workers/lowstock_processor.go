// Package workers contiene los procesadores de tareas asíncronas (asynq).
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/chcomputer/almacen-api/internal/infrastructure/tasks"
	"github.com/chcomputer/almacen-api/pkg/config"
)

// LowStockProcessor envía por correo las alertas de stock bajo encoladas
// por el motor de movimientos.
type LowStockProcessor struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewLowStockProcessor construye el procesador.
func NewLowStockProcessor(cfg *config.Config, logger zerolog.Logger) *LowStockProcessor {
	return &LowStockProcessor{
		cfg:    cfg,
		logger: logger.With().Str("processor", "low_stock").Logger(),
	}
}

// ProcessAlert maneja una tarea TypeLowStockAlert. En development solo
// registra el correo; en otros entornos lo envía por SMTP.
func (p *LowStockProcessor) ProcessAlert(ctx context.Context, t *asynq.Task) error {
	var payload tasks.LowStockPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("deserializar alerta: %w", err)
	}

	subject := fmt.Sprintf("Stock bajo: %s (%s)", payload.ProductName, payload.ProductCode)
	body := fmt.Sprintf(
		"El producto %s (%s) quedó en %d unidades, con stock mínimo de %d.",
		payload.ProductName, payload.ProductCode, payload.Quantity, payload.MinStock,
	)
	if payload.Location != "" {
		body += fmt.Sprintf(" Ubicación: %s.", payload.Location)
	}

	p.logger.Info().
		Str("product_id", payload.ProductID).
		Str("product_code", payload.ProductCode).
		Int("quantity", payload.Quantity).
		Int("min_stock", payload.MinStock).
		Msg("procesando alerta de stock bajo")

	if p.cfg.App.Env == "development" || p.cfg.SMTP.Host == "" || p.cfg.SMTP.AlertsTo == "" {
		p.logger.Info().
			Str("subject", subject).
			Str("body", body).
			Msg("correo de alerta (no enviado en development)")
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		p.cfg.SMTP.From, p.cfg.SMTP.AlertsTo, subject, body,
	))
	auth := smtp.PlainAuth("", p.cfg.SMTP.User, p.cfg.SMTP.Password, p.cfg.SMTP.Host)
	if err := smtp.SendMail(p.cfg.SMTP.Addr(), auth, p.cfg.SMTP.From, []string{p.cfg.SMTP.AlertsTo}, msg); err != nil {
		return fmt.Errorf("enviar correo de alerta: %w", err)
	}

	p.logger.Info().Str("to", p.cfg.SMTP.AlertsTo).Msg("alerta de stock bajo enviada")
	return nil
}
