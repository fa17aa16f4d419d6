// Package codegen genera códigos legibles para productos, lotes de
// movimiento, marcas y modelos (servicio de dominio, sin estado propio).
//
// Dos esquemas:
//   - secuencial PREFIX-000001 para Product y MovementBatch: la secuencia se
//     consulta en el almacén, no hay contador en memoria;
//   - aleatorio PREFIX-XXXX para Brand y Model, con reintentos acotados y
//     fallback a un sufijo derivado del timestamp.
//
// El código propuesto es consultivo: no se reserva. La unicidad la garantiza
// el constraint único de la BD y el caller reintenta ante una colisión.
package codegen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Prefijos por tipo de entidad.
const (
	PrefixProduct  = "PROD"
	PrefixMovement = "MOV"
	PrefixBrand    = "BRD"
	PrefixModel    = "MOD"
)

const (
	randomLen   = 4
	maxAttempts = 100
	alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// CodeIndex consulta los códigos ya usados de un tipo de entidad.
// Lo implementan los repositorios PostgreSQL.
type CodeIndex interface {
	// MaxSequence devuelve la mayor secuencia numérica usada con el prefijo
	// (0 si no hay ninguna).
	MaxSequence(prefix string) (int, error)
	// Exists indica si el código ya está en uso.
	Exists(code string) (bool, error)
}

// Sequential propone el siguiente código PREFIX-NNNNNN según la secuencia
// máxima persistida. Dos callers concurrentes pueden recibir el mismo
// candidato: el insert debe tratar la violación de unicidad como reintentable.
func Sequential(idx CodeIndex, prefix string) (string, error) {
	max, err := idx.MaxSequence(prefix)
	if err != nil {
		return "", fmt.Errorf("codegen: secuencia de %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%06d", prefix, max+1), nil
}

// Random propone un código PREFIX-XXXX con 4 alfanuméricos aleatorios,
// reintentando hasta maxAttempts si el candidato ya existe. Si se agotan los
// intentos cae a un sufijo derivado del timestamp.
func Random(idx CodeIndex, prefix string) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := prefix + "-" + randomPart()
		exists, err := idx.Exists(code)
		if err != nil {
			return "", fmt.Errorf("codegen: verificar %s: %w", code, err)
		}
		if !exists {
			return code, nil
		}
	}
	return prefix + "-" + timestampPart(), nil
}

func randomPart() string {
	var b strings.Builder
	for i := 0; i < randomLen; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

// timestampPart devuelve los últimos 4 caracteres del timestamp en base36.
func timestampPart() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	if len(ts) <= randomLen {
		return ts
	}
	return ts[len(ts)-randomLen:]
}
