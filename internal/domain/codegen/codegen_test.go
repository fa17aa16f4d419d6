package codegen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chcomputer/almacen-api/internal/domain/codegen"
)

// fakeIndex implementa CodeIndex sobre un set en memoria.
type fakeIndex struct {
	max    int
	maxErr error
	used   map[string]bool
}

func (f *fakeIndex) MaxSequence(prefix string) (int, error) { return f.max, f.maxErr }

func (f *fakeIndex) Exists(code string) (bool, error) { return f.used[code], nil }

func TestSequential_PrimerCodigo(t *testing.T) {
	idx := &fakeIndex{max: 0}
	code, err := codegen.Sequential(idx, codegen.PrefixProduct)
	require.NoError(t, err)
	assert.Equal(t, "PROD-000001", code)
}

func TestSequential_ContinuaDesdeElMaximo(t *testing.T) {
	idx := &fakeIndex{max: 41}
	code, err := codegen.Sequential(idx, codegen.PrefixMovement)
	require.NoError(t, err)
	assert.Equal(t, "MOV-000042", code)
}

func TestSequential_NoMutatEstado(t *testing.T) {
	// Generar sin insertar nunca cambia lo persistido: dos llamadas
	// consecutivas proponen el mismo candidato.
	idx := &fakeIndex{max: 7}
	first, err := codegen.Sequential(idx, codegen.PrefixProduct)
	require.NoError(t, err)
	second, err := codegen.Sequential(idx, codegen.PrefixProduct)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSequential_PropagaErrorDelIndice(t *testing.T) {
	idx := &fakeIndex{maxErr: errors.New("db caída")}
	_, err := codegen.Sequential(idx, codegen.PrefixProduct)
	assert.Error(t, err)
}

func TestRandom_FormatoYPrefijo(t *testing.T) {
	idx := &fakeIndex{used: map[string]bool{}}
	code, err := codegen.Random(idx, codegen.PrefixBrand)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "BRD-"), "código generado: %s", code)
	assert.Len(t, code, len("BRD-")+4)
}

func TestRandom_EvitaCodigosUsados(t *testing.T) {
	idx := &fakeIndex{used: map[string]bool{}}
	first, err := codegen.Random(idx, codegen.PrefixModel)
	require.NoError(t, err)

	// Marcar el primero como usado y verificar que nuevas propuestas nunca
	// lo repiten.
	idx.used[first] = true
	for i := 0; i < 50; i++ {
		code, err := codegen.Random(idx, codegen.PrefixModel)
		require.NoError(t, err)
		assert.NotEqual(t, first, code)
	}
}
