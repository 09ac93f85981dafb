// Package aggregate agrupa filas por una etiqueta y reduce sus valores.
//
// Los agrupamientos se devuelven como slices ordenados por clave ascendente,
// de modo que el recorrido es determinista. SortDesc usa un sort estable:
// ante valores iguales se conserva el orden por clave.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Entry par clave/valor de un agrupamiento.
type Entry[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// Group agrupa items por key y combina sus valores con add.
// Los items cuya key devuelve ok=false se descartan del agrupamiento.
func Group[T, V any](
	items []T,
	key func(T) (string, bool),
	value func(T) V,
	add func(V, V) V,
) []Entry[V] {
	acc := make(map[string]V)
	for _, it := range items {
		k, ok := key(it)
		if !ok {
			continue
		}
		if cur, exists := acc[k]; exists {
			acc[k] = add(cur, value(it))
		} else {
			acc[k] = value(it)
		}
	}

	entries := make([]Entry[V], 0, len(acc))
	for k, v := range acc {
		entries = append(entries, Entry[V]{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// SortDesc ordena de mayor a menor según less (estable).
func SortDesc[V any](entries []Entry[V], less func(a, b V) bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[j].Value, entries[i].Value)
	})
}

// Top devuelve como máximo n entradas. n <= 0 devuelve todas.
func Top[V any](entries []Entry[V], n int) []Entry[V] {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// ToMap convierte el agrupamiento en un mapa.
func ToMap[V any](entries []Entry[V]) map[string]V {
	m := make(map[string]V, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}

// ── Helpers decimal / int64 ───────────────────────────────────────────────────

// AddDecimal suma dos decimales.
func AddDecimal(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }

// LessDecimal compara dos decimales.
func LessDecimal(a, b decimal.Decimal) bool { return a.LessThan(b) }

// AddInt suma dos enteros.
func AddInt(a, b int64) int64 { return a + b }

// LessInt compara dos enteros.
func LessInt(a, b int64) bool { return a < b }

// Mean acumulador para promedios aritméticos sin ponderar.
type Mean struct {
	Sum   decimal.Decimal
	Count int64
}

// AddMean combina dos acumuladores.
func AddMean(a, b Mean) Mean {
	return Mean{Sum: a.Sum.Add(b.Sum), Count: a.Count + b.Count}
}

// MeanOf construye un acumulador a partir de un valor opcional.
// Un valor inválido no cuenta para el promedio.
func MeanOf(v decimal.NullDecimal) Mean {
	if !v.Valid {
		return Mean{}
	}
	return Mean{Sum: v.Decimal, Count: 1}
}

// Value devuelve el promedio; inválido si no hubo observaciones.
func (m Mean) Value() decimal.NullDecimal {
	if m.Count == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(m.Sum.Div(decimal.NewFromInt(m.Count)))
}
