package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales
// ──────────────────────────────────────────────────────────────────────────────

// Caso: conteo físico encuentra 70 unidades donde el sistema dice 100.
func TestAdjust_ConteoFisico(t *testing.T) {
	e := newEngine()
	e.store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 0))
	e.store.SeedBalance(idTornillo, 100)

	entry, err := e.stockUC.Adjust(context.Background(), idTornillo, -30, "conteo físico de bodega", idActor)
	require.NoError(t, err)

	assert.Equal(t, entity.EntryTypeOut, entry.Type)
	assert.Equal(t, int64(30), entry.Quantity)
	assert.Equal(t, int64(-30), entry.Change)
	assert.Equal(t, int64(70), entry.BalanceAfter)
	assert.Equal(t, entity.SourceManualAdjustment, entry.SourceType)
	assert.Equal(t, idActor, entry.SourceID, "el actor queda como origen del movimiento")
	assert.Equal(t, "conteo físico de bodega", entry.Note)

	entries := e.store.EntriesFor(idTornillo)
	require.Len(t, entries, 2, "el ajuste agrega una entrada, nunca modifica las previas")
	assert.Equal(t, int64(100), entries[0].BalanceAfter, "la entrada anterior queda intacta")
}

func TestAdjust_EntradaPositiva(t *testing.T) {
	e := newEngine()
	e.store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 0))

	entry, err := e.stockUC.Adjust(context.Background(), idTornillo, 25, "devolución de producción", idActor)
	require.NoError(t, err)
	assert.Equal(t, entity.EntryTypeIn, entry.Type)
	assert.Equal(t, int64(25), entry.BalanceAfter)
}

func TestAdjust_SinMotivo_Rechazado(t *testing.T) {
	e := newEngine()
	e.store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 0))

	_, err := e.stockUC.Adjust(context.Background(), idTornillo, -5, "", idActor)
	require.Error(t, err)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "reason", validation.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, e.store.EntriesFor(idTornillo), "nada debe persistirse")
}

func TestAdjust_SinActor_Rechazado(t *testing.T) {
	e := newEngine()
	e.store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 0))

	_, err := e.stockUC.Adjust(context.Background(), idTornillo, -5, "merma", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_SobregiroRechazado(t *testing.T) {
	e := newEngine()
	e.store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 0))
	e.store.SeedBalance(idTornillo, 5)

	_, err := e.stockUC.Adjust(context.Background(), idTornillo, -10, "merma detectada", idActor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el ajuste manual está sujeto al mismo invariante de balance no negativo")
	assert.Equal(t, int64(5), lastBalanceOf(t, e, idTornillo))
}
