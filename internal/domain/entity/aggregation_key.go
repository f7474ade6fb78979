package entity

import "strings"

// Dimension es un valor opcional dentro de la clave de agregación.
// La ausencia es un valor de clave en sí mismo: un movimiento sin bodega NO es
// equivalente a uno con bodega "" (la comparación ad-hoc de strings opcionales
// era una fuente de colisiones de clave en versiones anteriores).
type Dimension struct {
	Value string
	Set   bool
}

// Dim construye una dimensión presente.
func Dim(value string) Dimension {
	return Dimension{Value: value, Set: true}
}

// NoDim construye una dimensión ausente (el zero value también lo es).
func NoDim() Dimension {
	return Dimension{}
}

// AggregationKey identifica una línea de estado de stock:
// empresa + material y dimensiones opcionales bodega/SKU/variante/ubicación.
// Es comparable (==) y usable como clave de map.
type AggregationKey struct {
	TenantID     string
	MaterialName string
	Warehouse    Dimension
	SKU          Dimension
	Variant      Dimension
	BinCode      Dimension
}

// escapeDim escapa los separadores del encoding canónico dentro del valor.
func escapeDim(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "|", `\|`)
}

func encodeDim(d Dimension) string {
	if !d.Set {
		return "-"
	}
	return "=" + escapeDim(d.Value)
}

// Canonical devuelve la representación de texto canónica de la clave, estable
// entre procesos y apta como clave primaria en la tabla de estado de stock.
// Distingue ausente ("-") de presente vacío ("=").
func (k AggregationKey) Canonical() string {
	var b strings.Builder
	b.WriteString(escapeDim(k.TenantID))
	b.WriteString("|")
	b.WriteString(escapeDim(k.MaterialName))
	b.WriteString("|w")
	b.WriteString(encodeDim(k.Warehouse))
	b.WriteString("|s")
	b.WriteString(encodeDim(k.SKU))
	b.WriteString("|v")
	b.WriteString(encodeDim(k.Variant))
	b.WriteString("|b")
	b.WriteString(encodeDim(k.BinCode))
	return b.String()
}
