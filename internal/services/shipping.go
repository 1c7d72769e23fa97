// internal/services/shipping.go
package services

import "github.com/mzansithrift/thriftstore-backend/internal/config"

// Base shipping cost per South African province.
var provinceBaseCosts = map[string]float64{
	"Gauteng":       65.00,
	"Western Cape":  85.00,
	"KwaZulu-Natal": 95.00,
	"Eastern Cape":  105.00,
	"Free State":    90.00,
	"Limpopo":       110.00,
	"Mpumalanga":    100.00,
	"North West":    95.00,
	"Northern Cape": 120.00,
}

// CalculateShipping returns the base cost for the province (falling
// back to the configured default for unknown values) plus a per-unit
// weight surcharge.
func CalculateShipping(cfg config.ShippingConfig, province string, weight float64) float64 {
	base, ok := provinceBaseCosts[province]
	if !ok {
		base = cfg.DefaultBaseCost
	}
	return base + weight*cfg.PerUnitWeight
}
