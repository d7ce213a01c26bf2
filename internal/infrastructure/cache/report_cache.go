// Package cache guarda en Redis los reportes ya calculados. Las claves llevan un número de versión
// global; al crear o borrar facturas se incrementa y todo lo anterior queda huérfano hasta su TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

const (
	versionKey  = "reportes:version"
	bumpChannel = "facturas.bump"
)

// ReportCache caché versionado. Con cliente nil funciona como paso directo al loader.
// Si Redis falla el reporte se calcula igual; el error solo se registra.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewReportCache construye el caché. log puede ser nil.
func NewReportCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ReportCache {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportCache{client: client, ttl: ttl, log: log.Component("cache")}
}

// Version devuelve la versión vigente; la inicializa en 1 si no existe.
func (c *ReportCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) || (err == nil && ver <= 0) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey arma la clave con la versión vigente al final. Sin versión legible devuelve
// clave vacía, que FetchJSON interpreta como "no usar caché".
func (c *ReportCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("clave", joined).Msg("versión de caché no disponible, reporte sin caché")
		return "", nil
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON lee dest del caché o lo llena con loader y lo guarda.
func (c *ReportCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	useCache := c != nil && c.client != nil && key != ""
	if useCache {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(payload, dest); err == nil {
				return nil
			}
			c.log.Warn().Str("clave", key).Msg("entrada de caché ilegible, se recalcula")
		case errors.Is(err, redis.Nil):
		default:
			c.log.Warn().Err(err).Str("clave", key).Msg("lectura de caché fallida, se consulta la base")
			useCache = false
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if useCache {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("clave", key).Msg("no se pudo guardar en caché")
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todos los reportes y avisa a las demás instancias.
func (c *ReportCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// ListenForInvalidation adopta las versiones publicadas por otras instancias hasta que ctx termine.
func (c *ReportCache) ListenForInvalidation(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	pubsub := c.client.Subscribe(ctx, bumpChannel)
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				ver, err := strconv.ParseInt(msg.Payload, 10, 64)
				if err != nil {
					continue
				}
				current, err := c.client.Get(ctx, versionKey).Int64()
				if err != nil || current < ver {
					_ = c.client.Set(ctx, versionKey, ver, 0).Err()
				}
			}
		}
	}()
}
