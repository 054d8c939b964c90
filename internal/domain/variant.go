package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// VariantValue is one selectable option of a Variant
type VariantValue struct {
	Value     string `json:"value"`
	Available bool   `json:"available"`
}

// UnmarshalJSON accepts both the canonical {"value","available"} object and
// the legacy bare-string form. A missing "available" means available.
func (v *VariantValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = VariantValue{Value: s, Available: true}
		return nil
	}

	var raw struct {
		Value     string `json:"value"`
		Available *bool  `json:"available"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("variant value must be a string or an object: %w", err)
	}
	*v = VariantValue{Value: raw.Value, Available: boolOrDefault(raw.Available, true)}
	return nil
}

// Variant is a named axis of differentiation, e.g. "Color"
type Variant struct {
	ID     uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Values []VariantValue `json:"values"`
}

// Variants is the ordered variant list of a product, stored as one JSONB document
type Variants []Variant

// Value implements driver.Valuer
func (vs Variants) Value() (driver.Value, error) {
	if vs == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(vs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variants: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner. Legacy documents holding bare-string values
// are upgraded by VariantValue.UnmarshalJSON on the way in.
func (vs *Variants) Scan(src interface{}) error {
	var data []byte
	switch s := src.(type) {
	case nil:
		*vs = Variants{}
		return nil
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("unsupported variants column type %T", src)
	}

	var out Variants
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode variants: %w", err)
	}
	if out == nil {
		out = Variants{}
	}
	*vs = out
	return nil
}

// NormalizeVariant trims names and values, assigns a missing id and checks
// the variant invariants. It is idempotent.
func NormalizeVariant(v Variant, field string) (Variant, error) {
	out := Variant{
		ID:     v.ID,
		Name:   strings.TrimSpace(v.Name),
		Values: make([]VariantValue, 0, len(v.Values)),
	}
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.Name == "" {
		return Variant{}, NewValidationError(field+".name", "is required")
	}

	seen := make(map[string]struct{}, len(v.Values))
	for j, val := range v.Values {
		value := strings.TrimSpace(val.Value)
		valueField := field + ".values[" + strconv.Itoa(j) + "]"
		if value == "" {
			return Variant{}, NewValidationError(valueField, "is required")
		}
		if _, dup := seen[value]; dup {
			return Variant{}, NewValidationError(valueField, fmt.Sprintf("duplicate value %q", value))
		}
		seen[value] = struct{}{}
		out.Values = append(out.Values, VariantValue{Value: value, Available: val.Available})
	}
	return out, nil
}

// NormalizeVariants normalizes every variant of a list into a fresh slice
func NormalizeVariants(vs []Variant) (Variants, error) {
	out := make(Variants, 0, len(vs))
	for i, v := range vs {
		n, err := NormalizeVariant(v, "variants["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ComputeInStock reports whether at least one value of one variant is available
func ComputeInStock(vs []Variant) bool {
	for _, v := range vs {
		for _, val := range v.Values {
			if val.Available {
				return true
			}
		}
	}
	return false
}

// SetValueAvailability flips the availability flag addressed by the two
// indexes in place.
func (vs Variants) SetValueAvailability(productID uuid.UUID, variantIndex, valueIndex int, available bool) error {
	if variantIndex < 0 || variantIndex >= len(vs) {
		return NewNotFoundError("variant", fmt.Sprintf("%s[%d]", productID, variantIndex))
	}
	values := vs[variantIndex].Values
	if valueIndex < 0 || valueIndex >= len(values) {
		return NewNotFoundError("variant value", fmt.Sprintf("%s[%d][%d]", productID, variantIndex, valueIndex))
	}
	values[valueIndex].Available = available
	return nil
}

// IndexOf returns the position of the variant with the given id, or -1
func (vs Variants) IndexOf(id uuid.UUID) int {
	for i, v := range vs {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Clone deep-copies the list so callers can mutate it safely
func (vs Variants) Clone() Variants {
	out := make(Variants, len(vs))
	for i, v := range vs {
		out[i] = Variant{ID: v.ID, Name: v.Name, Values: append([]VariantValue(nil), v.Values...)}
		if out[i].Values == nil {
			out[i].Values = []VariantValue{}
		}
	}
	return out
}

// ParseIndex parses a path index such as a variant or value position
func ParseIndex(field, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, NewValidationError(field, "must be a non-negative integer")
	}
	return n, nil
}
