package pricing

// Base daily rates in whole currency units per vehicle category.
var basePrices = map[VehicleType]float64{
	VehicleTypeCompact:     35,
	VehicleTypeSedan:       45,
	VehicleTypeSUV:         65,
	VehicleTypeLuxury:      120,
	VehicleTypeSports:      150,
	VehicleTypeMinivan:     75,
	VehicleTypeTruck:       85,
	VehicleTypeConvertible: 95,
	VehicleTypeElectric:    70,
}

// City multipliers. The capital commands a premium, secondary cities sit
// near parity and smaller towns discount slightly. Unknown cities fall back
// to the config default.
var locationMultipliers = map[string]float64{
	"San Salvador":      1.20,
	"Santa Tecla":       1.10,
	"Antiguo Cuscatlan": 1.10,
	"Santa Ana":         1.00,
	"San Miguel":        1.00,
	"Soyapango":         0.95,
	"La Libertad":       0.95,
	"Sonsonate":         0.90,
	"Usulutan":          0.90,
	"Ahuachapan":        0.90,
}

// Seasonal demand factors by calendar month. Peaks track Semana Santa,
// the August festivities and the December holidays.
var seasonalFactors = map[int]float64{
	1:  1.05,
	2:  0.95,
	3:  1.10,
	4:  1.30,
	5:  0.95,
	6:  0.90,
	7:  1.10,
	8:  1.25,
	9:  0.90,
	10: 0.85,
	11: 1.00,
	12: 1.25,
}

// Per-feature value multipliers. Absent or unrecognized features contribute
// the multiplicative identity.
var featureMultipliers = map[string]float64{
	"gps":             1.01,
	"bluetooth":       1.01,
	"usb_charger":     1.01,
	"pet_friendly":    1.01,
	"backup_camera":   1.02,
	"sunroof":         1.02,
	"heated_seats":    1.02,
	"child_seat":      1.02,
	"apple_carplay":   1.02,
	"android_auto":    1.02,
	"premium_sound":   1.02,
	"keyless_entry":   1.02,
	"leather_seats":   1.03,
	"all_wheel_drive": 1.03,
	"tow_hitch":       1.03,
	"roof_rack":       1.02,
	"bike_rack":       1.02,
	"ski_rack":        1.02,
	"convertible_top": 1.05,
}

func basePriceFor(vehicleType VehicleType, fallback float64) float64 {
	if price, ok := basePrices[vehicleType]; ok {
		return price
	}
	return fallback
}

func locationMultiplierFor(city string, fallback float64) float64 {
	if m, ok := locationMultipliers[city]; ok {
		return m
	}
	return fallback
}

func seasonalFactorFor(month int) float64 {
	if f, ok := seasonalFactors[month]; ok {
		return f
	}
	return 1.0
}

func ageDepreciationFor(age int) float64 {
	switch {
	case age <= 1:
		return 1.10
	case age <= 3:
		return 1.00
	case age <= 5:
		return 0.95
	case age <= 8:
		return 0.85
	case age <= 12:
		return 0.75
	default:
		return 0.65
	}
}

func featuresMultiplierFor(features []string) float64 {
	multiplier := 1.0
	for _, feature := range features {
		if m, ok := featureMultipliers[feature]; ok {
			multiplier *= m
		}
	}
	return multiplier
}
