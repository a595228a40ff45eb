package core

import (
	"errors"
	"math"
	"testing"
)

func TestExpandFares_LightAndFlex(t *testing.T) {
	for _, class := range []CabinClass{ClassEconomy, ClassBusiness, ClassFirst} {
		for _, base := range []float64{0, 199.99, 450, 2000} {
			fares, err := ExpandFares(base, class)
			if err != nil {
				t.Fatalf("%s/%v: unexpected error %v", class, base, err)
			}
			if len(fares) != 2 {
				t.Fatalf("%s/%v: expected 2 fares, got %d", class, base, len(fares))
			}

			light, flex := fares[0], fares[1]
			if light.Name != FareLight || flex.Name != FareFlex {
				t.Errorf("%s: unexpected fare order %s, %s", class, light.Name, flex.Name)
			}
			if light.Price != base {
				t.Errorf("%s: light price %v, want %v", class, light.Price, base)
			}
			if flex.Price != roundCents(base+50) {
				t.Errorf("%s: flex price %v, want %v", class, flex.Price, base+50)
			}
			if light.Refundable || !flex.Refundable {
				t.Errorf("%s: light must be non-refundable and flex refundable", class)
			}
			if len(flex.Features) <= len(light.Features) {
				t.Errorf("%s: flex should include more features than light", class)
			}
			if light.Class != class || flex.Class != class {
				t.Errorf("%s: fares carry wrong class", class)
			}
		}
	}
}

func TestExpandFares_FeaturesAreCopies(t *testing.T) {
	fares, _ := ExpandFares(100, ClassEconomy)
	fares[0].Features[0] = "changed"

	again, _ := ExpandFares(100, ClassEconomy)
	if again[0].Features[0] == "changed" {
		t.Error("fare features must not share the static table")
	}
}

func TestExpandFares_Errors(t *testing.T) {
	if _, err := ExpandFares(100, CabinClass("premium")); !errors.Is(err, ErrUnknownCabinClass) {
		t.Errorf("expected ErrUnknownCabinClass, got %v", err)
	}
	if _, err := ExpandFares(-1, ClassBusiness); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("expected ErrNegativePrice, got %v", err)
	}
	for _, base := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ExpandFares(base, ClassEconomy); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("%v: expected ErrInvalidPrice, got %v", base, err)
		}
	}
}

func TestParseCabinClass(t *testing.T) {
	tests := map[string]CabinClass{
		"economy":     ClassEconomy,
		" Business ":  ClassBusiness,
		"FIRST":       ClassFirst,
		"first_class": ClassFirst,
		"firstClass":  ClassFirst,
	}
	for in, want := range tests {
		got, err := ParseCabinClass(in)
		if err != nil || got != want {
			t.Errorf("ParseCabinClass(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCabinClass("coach"); !errors.Is(err, ErrUnknownCabinClass) {
		t.Errorf("expected ErrUnknownCabinClass, got %v", err)
	}
}

func TestFlightOption_BasePrice(t *testing.T) {
	o := FlightOption{EconomyPrice: 100, BusinessPrice: 400, FirstClassPrice: 900}

	for class, want := range map[CabinClass]float64{ClassEconomy: 100, ClassBusiness: 400, ClassFirst: 900} {
		got, err := o.BasePrice(class)
		if err != nil || got != want {
			t.Errorf("BasePrice(%s) = %v, %v; want %v", class, got, err, want)
		}
	}
	if _, err := o.BasePrice("premium"); !errors.Is(err, ErrUnknownCabinClass) {
		t.Errorf("expected ErrUnknownCabinClass, got %v", err)
	}
}
