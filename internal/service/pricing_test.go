package service

import "testing"

func TestEnergyKWhUsesPortRating(t *testing.T) {
	p := DefaultPricing()

	if got := p.EnergyKWh(60, 22); !almostEqual(got, 22) {
		t.Fatalf("60 min at 22 kW = %v, want 22", got)
	}
	if got := p.EnergyKWh(10, 50); !almostEqual(got, 10*50.0/60.0) {
		t.Fatalf("10 min at 50 kW = %v, want %v", got, 10*50.0/60.0)
	}
	if got := p.EnergyKWh(0, 50); got != 0 {
		t.Fatalf("zero duration = %v, want 0", got)
	}
	if got := p.EnergyKWh(-5, 50); got != 0 {
		t.Fatalf("negative duration = %v, want 0", got)
	}
}

func TestEnergyKWhFallsBackWhenRatingUnknown(t *testing.T) {
	p := DefaultPricing()

	if got := p.EnergyKWh(30, 0); !almostEqual(got, 3.0) {
		t.Fatalf("30 min fallback = %v, want 3", got)
	}
}

func TestCost(t *testing.T) {
	p := DefaultPricing()

	if got := p.Cost(25); !almostEqual(got, 375) {
		t.Fatalf("cost of 25 kWh = %v, want 375", got)
	}
	if got := p.Cost(0); got != 0 {
		t.Fatalf("cost of 0 kWh = %v, want 0", got)
	}
}

func TestEstimateChargeMinutes(t *testing.T) {
	p := DefaultPricing()

	// Empty battery, assumed 50 kWh pack, 0.1 kWh/min: 500 minutes.
	if got := p.EstimateChargeMinutes(0, 0); !almostEqual(got, 500) {
		t.Fatalf("estimate from 0%% = %v, want 500", got)
	}
	if got := p.EstimateChargeMinutes(50, 0); !almostEqual(got, 250) {
		t.Fatalf("estimate from 50%% = %v, want 250", got)
	}
	if got := p.EstimateChargeMinutes(100, 0); got != 0 {
		t.Fatalf("estimate from 100%% = %v, want 0", got)
	}
	if got := p.EstimateChargeMinutes(50, 80); !almostEqual(got, 400) {
		t.Fatalf("estimate from 50%% of 80 kWh = %v, want 400", got)
	}
}

func TestEstimateCost(t *testing.T) {
	p := DefaultPricing()

	if got := p.EstimateCost(0, 0); !almostEqual(got, 750) {
		t.Fatalf("cost from 0%% = %v, want 750", got)
	}
	if got := p.EstimateCost(100, 0); got != 0 {
		t.Fatalf("cost from 100%% = %v, want 0", got)
	}
}
