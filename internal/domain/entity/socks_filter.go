package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Comparison operador de comparación sobre el porcentaje de algodón.
type Comparison string

const (
	ComparisonNone     Comparison = ""
	ComparisonMoreThan Comparison = "moreThen"
	ComparisonLessThan Comparison = "lessThan"
	ComparisonEqual    Comparison = "equal"
)

// ParseComparison interpreta el parámetro de comparación. Un valor desconocido no filtra (ComparisonNone).
func ParseComparison(s string) Comparison {
	switch Comparison(strings.TrimSpace(s)) {
	case ComparisonMoreThan:
		return ComparisonMoreThan
	case ComparisonLessThan:
		return ComparisonLessThan
	case ComparisonEqual:
		return ComparisonEqual
	default:
		return ComparisonNone
	}
}

// SortKey columna de ordenamiento para listados.
type SortKey string

const (
	SortNone       SortKey = ""
	SortByColor    SortKey = "color"
	SortByCotton   SortKey = "cottonPercentage"
	SortByQuantity SortKey = "quantity"
)

// ParseSortKey valida el parámetro sortBy. Vacío significa sin orden; un valor desconocido es error.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.TrimSpace(s)) {
	case SortNone:
		return SortNone, nil
	case SortByColor:
		return SortByColor, nil
	case SortByCotton, "cottonPart":
		return SortByCotton, nil
	case SortByQuantity:
		return SortByQuantity, nil
	}
	return SortNone, fmt.Errorf("sortBy desconocido: %q", s)
}

// QuantityFilter criterios opcionales de consulta. Todos los presentes se combinan con AND.
type QuantityFilter struct {
	Color            *string
	Comparison       Comparison
	CottonPercentage *int64
	MinCotton        *int64
	MaxCotton        *int64
	SortBy           SortKey
}

// RangeValid indica si el rango min/max es coherente (min <= max cuando ambos existen).
func (f QuantityFilter) RangeValid() bool {
	return f.MinCotton == nil || f.MaxCotton == nil || *f.MinCotton <= *f.MaxCotton
}

// EffectiveComparison resuelve el operador aplicable: sin valor de algodón no hay comparación;
// con valor y sin operador se compara por igualdad.
func (f QuantityFilter) EffectiveComparison() Comparison {
	if f.CottonPercentage == nil {
		return ComparisonNone
	}
	if f.Comparison == ComparisonNone {
		return ComparisonEqual
	}
	return f.Comparison
}

// Matches evalúa el predicado completo sobre un registro.
func (f QuantityFilter) Matches(s *Socks) bool {
	if f.Color != nil && s.Color != *f.Color {
		return false
	}
	switch f.EffectiveComparison() {
	case ComparisonMoreThan:
		if s.CottonPercentage <= *f.CottonPercentage {
			return false
		}
	case ComparisonLessThan:
		if s.CottonPercentage >= *f.CottonPercentage {
			return false
		}
	case ComparisonEqual:
		if s.CottonPercentage != *f.CottonPercentage {
			return false
		}
	}
	if f.MinCotton != nil && s.CottonPercentage < *f.MinCotton {
		return false
	}
	if f.MaxCotton != nil && s.CottonPercentage > *f.MaxCotton {
		return false
	}
	return true
}

// Sort ordena la lista en sitio según SortBy (ascendente, estable). SortNone deja el orden intacto.
func (f QuantityFilter) Sort(list []*Socks) {
	var less func(a, b *Socks) bool
	switch f.SortBy {
	case SortByColor:
		less = func(a, b *Socks) bool { return a.Color < b.Color }
	case SortByCotton:
		less = func(a, b *Socks) bool { return a.CottonPercentage < b.CottonPercentage }
	case SortByQuantity:
		less = func(a, b *Socks) bool { return a.Quantity < b.Quantity }
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// Key devuelve una representación canónica del filtro (clave de caché y logs).
// El orden no forma parte de la clave porque no altera la suma.
func (f QuantityFilter) Key() string {
	color := "-"
	if f.Color != nil {
		color = fmt.Sprintf("%q", *f.Color)
	}
	return fmt.Sprintf("color=%s|cmp=%s|cotton=%s|min=%s|max=%s",
		color, f.EffectiveComparison(), optInt(f.CottonPercentage), optInt(f.MinCotton), optInt(f.MaxCotton))
}

func optInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}
