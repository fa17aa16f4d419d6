package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "ENTRADA" // entrada: suma stock
	MovementTypeSalida  = "SALIDA"  // salida: resta stock
)

// ValidMovementType verifica que el tipo sea uno de los dos enumerados.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// MovementBatch agrupa uno o más movimientos registrados en una sola
// operación atómica. Es inmutable una vez creado: no existe update ni delete;
// junto con sus líneas forma la pista de auditoría del stock.
type MovementBatch struct {
	ID            string
	Code          string // código único legible (MOV-000001)
	Type          string // ENTRADA | SALIDA
	TotalQuantity int    // suma de las cantidades de sus líneas
	Reason        string
	Notes         string
	UserID        string
	CreatedAt     time.Time
}

// Movement es una línea de un lote: atribuye una cantidad a un producto.
// Pertenece a exactamente un MovementBatch y es inmutable.
type Movement struct {
	ID        string
	BatchID   string
	ProductID string
	Quantity  int // siempre > 0; el signo lo da el tipo del lote
}
