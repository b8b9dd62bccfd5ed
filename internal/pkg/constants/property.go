package constants

import "strings"

// Property types (properties.property_type).
const (
	GasStation      = "gas_station"
	GasLease        = "gas_lease"
	ChargingStation = "charging_station"
	RestArea        = "rest_area"
	Site            = "site"
)

// Deal types are stored in their Korean form (properties.deal_type).
const (
	DealSale  = "매매"
	DealLease = "임대"
)

// ValidPropertyTypes is the set of property_type values the site knows how to list.
var ValidPropertyTypes = []string{GasStation, GasLease, ChargingStation, RestArea, Site}

// IsValidPropertyType returns true if t is one of ValidPropertyTypes.
func IsValidPropertyType(t string) bool {
	for _, v := range ValidPropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DealTypeFromParam maps the English query/body form ("sale", "lease") to the
// stored deal_type. Already-localized values pass through; anything else is "".
func DealTypeFromParam(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sale", DealSale:
		return DealSale
	case "lease", DealLease:
		return DealLease
	}
	return ""
}

// ResolveCategory maps a site category slug to the property_type filter and,
// for the gas-station categories, the implied deal_type. Dashes and
// underscores are interchangeable. Unknown categories yield empty filters.
func ResolveCategory(category string) (propertyType, dealType string) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), "-", "_") {
	case "gas_lease":
		return GasLease, DealLease
	case "gas_station", "gas_sale":
		return GasStation, DealSale
	case "charging_station":
		return ChargingStation, ""
	case "rest_area":
		return RestArea, ""
	case "site":
		return Site, ""
	}
	return "", ""
}
