package stock_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/stock"
	"github.com/jhoicas/Produccion-api/internal/testutil"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Notificador sin sink: la alerta queda solo en el log
// ──────────────────────────────────────────────────────────────────────────────

func TestNotifier_SinPublisher_DejaLaAlertaEnElLog(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 20))
	store.SeedBalance(idTornillo, 15)

	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))
	notifier := stock.NewLowStockNotifier(store.ProductRepo(), store.EntryRepo(), nil, log)

	notifier.Notify(context.Background(), idTornillo)

	out := buf.String()
	require.NotEmpty(t, out, "sin sink configurado, la alerta debe quedar en el log")
	assert.Contains(t, out, idTornillo)
	assert.Contains(t, out, "MAT-001")
	assert.Contains(t, out, `"current_stock":15`)
	assert.Contains(t, out, `"min_stock_level":20`)
}

func TestNotifier_SinPublisher_SobreUmbralNoLoguea(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct(material(idTornillo, "MAT-001", "Tornillo", 20))
	store.SeedBalance(idTornillo, 50)

	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))
	notifier := stock.NewLowStockNotifier(store.ProductRepo(), store.EntryRepo(), nil, log)

	notifier.Notify(context.Background(), idTornillo)

	assert.Empty(t, buf.String(), "sobre el umbral no hay nada que alertar")
}
