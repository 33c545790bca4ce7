package service

import "math"

// Pricing holds the business constants used to settle a session. The
// defaults mirror the network's published tariff; all three are
// overridable through configuration.
type Pricing struct {
	// UnitPricePerKWh is the fixed currency cost per kWh.
	UnitPricePerKWh float64
	// FallbackRateKWhPerMin is used when a port's power rating is unknown.
	FallbackRateKWhPerMin float64
	// DefaultBatteryKWh is the battery size assumed for charge estimates.
	DefaultBatteryKWh float64
}

// DefaultPricing returns the stock tariff: 15 per kWh, 0.1 kWh/min
// fallback, 50 kWh assumed battery.
func DefaultPricing() Pricing {
	return Pricing{
		UnitPricePerKWh:       15.0,
		FallbackRateKWhPerMin: 0.1,
		DefaultBatteryKWh:     50.0,
	}
}

// EnergyKWh converts a session duration into energy delivered. A known
// port rating charges at maxPowerKW continuously (kW -> kWh per minute
// is /60); an unknown rating falls back to the flat per-minute rate.
func (p Pricing) EnergyKWh(durationMinutes, maxPowerKW float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	if maxPowerKW > 0 {
		return durationMinutes * (maxPowerKW / 60.0)
	}
	return durationMinutes * p.FallbackRateKWhPerMin
}

// Cost prices delivered energy.
func (p Pricing) Cost(energyKWh float64) float64 {
	if energyKWh <= 0 {
		return 0
	}
	return energyKWh * p.UnitPricePerKWh
}

// EstimateChargeMinutes estimates minutes to full from the given battery
// percentage, using the fallback rate and the assumed battery size when
// capacityKWh is zero.
func (p Pricing) EstimateChargeMinutes(batteryPercent, capacityKWh float64) float64 {
	if capacityKWh <= 0 {
		capacityKWh = p.DefaultBatteryKWh
	}
	if batteryPercent < 0 {
		batteryPercent = 0
	}
	if batteryPercent >= 100 {
		return 0
	}
	energyNeeded := ((100 - batteryPercent) / 100) * capacityKWh
	return math.Ceil(energyNeeded / p.FallbackRateKWhPerMin)
}

// EstimateCost estimates the cost of charging to full from the given
// battery percentage.
func (p Pricing) EstimateCost(batteryPercent, capacityKWh float64) float64 {
	if capacityKWh <= 0 {
		capacityKWh = p.DefaultBatteryKWh
	}
	if batteryPercent < 0 {
		batteryPercent = 0
	}
	if batteryPercent >= 100 {
		return 0
	}
	energyNeeded := ((100 - batteryPercent) / 100) * capacityKWh
	return p.Cost(energyNeeded)
}
