package api

import (
	"encoding/json"
	"fmt"
)

// First-generation records used different type tags and property names.
// Migration runs on every load and is idempotent: feeding its own output
// back through produces byte-identical properties.

var legacyKindAliases = map[string]string{
	"wall":      "line",
	"label":     "text",
	"rectangle": "rect",
}

var legacyKeyAliases = map[string]string{
	"fillColor":   "fill",
	"strokeColor": "stroke",
}

var legacyEndpointKeys = []string{"x1", "y1", "x2", "y2"}

// MigrateElement upgrades a legacy element DTO to the canonical wire form.
// Unknown type tags pass through untouched; DecodeElement rejects them.
func MigrateElement(dto ElementDTO) (ElementDTO, error) {
	if alias, ok := legacyKindAliases[dto.ElementType]; ok {
		dto.ElementType = alias
	}

	props := map[string]any{}
	if len(dto.Properties) > 0 {
		if err := json.Unmarshal(dto.Properties, &props); err != nil {
			return ElementDTO{}, fmt.Errorf("migrate %s properties: %w", dto.ElementType, err)
		}
	}

	for legacy, canonical := range legacyKeyAliases {
		v, ok := props[legacy]
		if !ok {
			continue
		}
		if _, taken := props[canonical]; !taken {
			props[canonical] = v
		}
		delete(props, legacy)
	}

	if dto.ElementType == "line" {
		migrateLineEndpoints(props)
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return ElementDTO{}, fmt.Errorf("migrate %s properties: %w", dto.ElementType, err)
	}
	dto.Properties = raw
	return dto, nil
}

// MigratePlan applies the element migration across a whole plan DTO.
func MigratePlan(dto PlanDTO) (PlanDTO, error) {
	for i, ed := range dto.Elements {
		migrated, err := MigrateElement(ed)
		if err != nil {
			return PlanDTO{}, err
		}
		dto.Elements[i] = migrated
	}
	return dto, nil
}

// The first editor stored two-point walls as x1/y1/x2/y2. Canonical lines
// carry a points array, so the four scalars fold into one.
func migrateLineEndpoints(props map[string]any) {
	if _, ok := props["points"]; ok {
		for _, k := range legacyEndpointKeys {
			delete(props, k)
		}
		return
	}

	found := false
	coord := func(key string) float64 {
		v, ok := props[key].(float64)
		if ok {
			found = true
		}
		return v
	}
	x1, y1 := coord("x1"), coord("y1")
	x2, y2 := coord("x2"), coord("y2")
	if !found {
		return
	}

	props["points"] = []any{
		map[string]any{"x": x1, "y": y1},
		map[string]any{"x": x2, "y": y2},
	}
	for _, k := range legacyEndpointKeys {
		delete(props, k)
	}
}
