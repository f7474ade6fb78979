// Package rediscache implementa el caché cache-aside del catálogo de reglas
// de precio sobre Redis. Un Redis caído degrada a leer siempre de la base:
// los errores del caché se loguean y se tratan como miss, nunca como falla
// del caso de uso.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jhoicas/Almacen-api/internal/application/pricing"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ pricing.RuleCache = (*RuleCache)(nil)

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RuleCache caché de reglas por empresa+material con TTL.
// El TTL acota la ventana de consistencia eventual del catálogo: una regla
// recién creada se ve como muy tarde al expirar la clave (las escrituras
// además invalidan explícitamente).
type RuleCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRuleCache construye el caché.
func NewRuleCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RuleCache {
	return &RuleCache{client: client, ttl: ttl, log: log}
}

func cacheKey(tenantID, materialName string) string {
	return "price_rules:" + tenantID + ":" + materialName
}

// Get devuelve las reglas cacheadas y si hubo hit. Cualquier error es miss.
func (c *RuleCache) Get(ctx context.Context, tenantID, materialName string) ([]*entity.PriceRule, bool) {
	raw, err := c.client.Get(ctx, cacheKey(tenantID, materialName)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("material", materialName).Msg("lectura de caché de reglas falló")
		}
		return nil, false
	}
	var rules []*entity.PriceRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		c.log.Warn().Err(err).Str("material", materialName).Msg("caché de reglas corrupto, descartando")
		return nil, false
	}
	return rules, true
}

// Set guarda las reglas del material. Cachear la lista vacía también vale:
// "material sin reglas" es una respuesta frecuente que no queremos re-consultar.
func (c *RuleCache) Set(ctx context.Context, tenantID, materialName string, rules []*entity.PriceRule) {
	raw, err := json.Marshal(rules)
	if err != nil {
		c.log.Warn().Err(err).Str("material", materialName).Msg("serialización de reglas falló")
		return
	}
	if err := c.client.Set(ctx, cacheKey(tenantID, materialName), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("material", materialName).Msg("escritura de caché de reglas falló")
	}
}

// Invalidate borra la clave del material tras una escritura del catálogo.
func (c *RuleCache) Invalidate(ctx context.Context, tenantID, materialName string) {
	if err := c.client.Del(ctx, cacheKey(tenantID, materialName)).Err(); err != nil {
		c.log.Warn().Err(err).Str("material", materialName).Msg("invalidación de caché de reglas falló")
	}
}
