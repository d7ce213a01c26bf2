package cache_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/cache"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

func newTestCache(t *testing.T) (*cache.ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewReportCache(client, time.Minute, nil), mr
}

func TestFetchJSON_SegundaLecturaDesdeCache(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"facturas_hoy": 3}, nil
	}

	key, err := c.BuildKey(ctx, "reportes", "stats")
	require.NoError(t, err)
	assert.Equal(t, "reportes:stats:1", key)

	var first, second map[string]int
	require.NoError(t, c.FetchJSON(ctx, key, &first, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, second["facturas_hoy"])
}

func TestBump_CambiaLaClave(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before, err := c.BuildKey(ctx, "reportes", "ventas", "2024")
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	after, err := c.BuildKey(ctx, "reportes", "ventas", "2024")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	assert.Equal(t, "reportes:ventas:2024:2", after)
}

func TestFetchJSON_ErrorDelLoaderNoSeGuarda(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	boom := errors.New("sin conexión")

	var out map[string]int
	err := c.FetchJSON(ctx, "reportes:x:1", &out, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("reportes:x:1"))
}

func TestReportCache_SinClienteEsPasoDirecto(t *testing.T) {
	var c *cache.ReportCache
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", key)
	assert.NoError(t, c.Bump(ctx))

	calls := 0
	var out []int
	for range 2 {
		require.NoError(t, c.FetchJSON(ctx, key, &out, func(context.Context) (any, error) {
			calls++
			return []int{1, 2}, nil
		}))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{1, 2}, out)
}

func TestReportCache_RedisCaidoUsaElLoader(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	c := cache.NewReportCache(client, time.Minute, log)
	ctx := context.Background()
	mr.Close()

	key, err := c.BuildKey(ctx, "reportes", "stats")
	require.NoError(t, err)
	assert.Empty(t, key, "sin versión no se arma clave")

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"facturas_hoy": 2}, nil
	}
	var out map[string]int
	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, 2, out["facturas_hoy"])

	require.NoError(t, c.FetchJSON(ctx, "reportes:stats:1", &out, loader), "una clave ya armada tampoco falla")
	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), "reporte sin caché")
	assert.Contains(t, buf.String(), "se consulta la base")
}
