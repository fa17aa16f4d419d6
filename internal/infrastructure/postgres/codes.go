package postgres

import (
	"context"
	"fmt"
)

// Las tablas con código propio comparten el mismo índice: secuencia máxima
// para PREFIX-NNNNNN y existencia exacta. table viene de constantes propias,
// nunca de entrada del usuario.

func maxSequence(q Querier, table, prefix string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM LENGTH($1) + 2) AS INTEGER)), 0)
		FROM %s
		WHERE code ~ ('^' || $1 || '-[0-9]+$')`, table)
	var max int
	if err := q.QueryRow(context.Background(), query, prefix).Scan(&max); err != nil {
		return 0, fmt.Errorf("max sequence %s: %w", table, err)
	}
	return max, nil
}

func codeExists(q Querier, table, code string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE code = $1)`, table)
	var exists bool
	if err := q.QueryRow(context.Background(), query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("code exists %s: %w", table, err)
	}
	return exists, nil
}
