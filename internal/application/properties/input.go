package properties

import (
	"encoding/json"

	"station-listings/internal/domain"
	"station-listings/internal/pkg/constants"
	"station-listings/internal/pkg/normalize"
)

type fieldRule int

const (
	ruleText fieldRule = iota
	ruleNumber
	ruleDealType
	ruleFlag
)

type field struct {
	Name string
	Rule fieldRule
}

// propertyFields is the writable column set for create and update bodies.
// id, code and created_at are store-owned and never accepted from a client.
var propertyFields = []field{
	{"location", ruleText},
	{"property_type", ruleText},
	{"deal_type", ruleDealType},

	{"price", ruleNumber},
	{"deposit", ruleNumber},
	{"monthly_rent", ruleNumber},
	{"loan", ruleNumber},
	{"facility_premium", ruleNumber},
	{"area", ruleNumber},
	{"land_area", ruleNumber},
	{"building_area", ruleNumber},
	{"pump_count", ruleNumber},
	{"parking_spaces", ruleNumber},

	{"floor", ruleText},
	{"rooms_bathrooms", ruleText},
	{"approval_date", ruleText},
	{"road_info", ruleText},
	{"pole", ruleText},
	{"storage_tank", ruleText},
	{"sales_volume", ruleText},
	{"features", ruleText},

	{"is_recommended", ruleFlag},
	{"is_urgent", ruleFlag},
}

func normalizeValue(rule fieldRule, v interface{}) interface{} {
	switch rule {
	case ruleNumber:
		if n := normalize.ToNumLoose(v); n != nil {
			return *n
		}
		return nil
	case ruleDealType:
		s := normalize.ToText(v)
		if s == nil {
			return nil
		}
		if d := constants.DealTypeFromParam(*s); d != "" {
			return d
		}
		return *s
	case ruleFlag:
		return normalize.ToBool(v)
	default:
		if s := normalize.ToText(v); s != nil {
			return *s
		}
		return nil
	}
}

// CreateValues normalizes a create body. Every writable column is present in
// the result; absent fields become null and absent flags false.
func CreateValues(body map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(propertyFields))
	for _, f := range propertyFields {
		out[f.Name] = normalizeValue(f.Rule, body[f.Name])
	}
	return out
}

// PatchValues normalizes an update body. Only keys present in the body are
// returned, so omitted fields keep their stored values; an explicit null
// clears the column. Unknown and store-owned keys are dropped.
func PatchValues(body map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range propertyFields {
		v, ok := body[f.Name]
		if !ok {
			continue
		}
		out[f.Name] = normalizeValue(f.Rule, v)
	}
	return out
}

// newProperty builds a Property from normalized values. The values already
// carry the column types, so the json tags on domain.Property do the mapping.
func newProperty(values map[string]interface{}) (*domain.Property, error) {
	b, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	var p domain.Property
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
