package core

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrUnknownCabinClass = errors.New("unknown cabin class")
	ErrNegativePrice     = errors.New("negative base price")
	ErrInvalidPrice      = errors.New("base price is not a finite number")
)

type CabinClass string

const (
	ClassEconomy  CabinClass = "economy"
	ClassBusiness CabinClass = "business"
	ClassFirst    CabinClass = "first"
)

func ParseCabinClass(s string) (CabinClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy":
		return ClassEconomy, nil
	case "business":
		return ClassBusiness, nil
	case "first", "first_class", "firstclass":
		return ClassFirst, nil
	}
	return "", ErrUnknownCabinClass
}

type FareName string

const (
	FareLight FareName = "Light"
	FareFlex  FareName = "Flex"
)

// FlexOffset is added to the class base price for the Flex fare.
const FlexOffset = 50

type Fare struct {
	Name       FareName   `json:"name"`
	Class      CabinClass `json:"class"`
	Price      float64    `json:"price"`
	Features   []string   `json:"features"`
	Refundable bool       `json:"refundable"`
}

type fareFeatures struct {
	light []string
	flex  []string
}

var fareTable = map[CabinClass]fareFeatures{
	ClassEconomy: {
		light: []string{"Personal item", "Carry-on bag", "Seat selection for a fee"},
		flex:  []string{"Personal item", "Carry-on bag", "1 checked bag", "Free seat selection", "Free date changes"},
	},
	ClassBusiness: {
		light: []string{"Carry-on bag", "1 checked bag", "Lounge access", "Priority boarding"},
		flex:  []string{"Carry-on bag", "2 checked bags", "Lounge access", "Priority boarding", "Free date changes", "Free cancellation"},
	},
	ClassFirst: {
		light: []string{"Carry-on bag", "2 checked bags", "Lounge access", "Priority boarding", "Chauffeur service"},
		flex:  []string{"Carry-on bag", "3 checked bags", "Lounge access", "Priority boarding", "Chauffeur service", "Free date changes", "Free cancellation"},
	},
}

// ExpandFares returns the Light and Flex fares for a class base price.
func ExpandFares(base float64, class CabinClass) ([]Fare, error) {
	features, ok := fareTable[class]
	if !ok {
		return nil, ErrUnknownCabinClass
	}
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return nil, ErrInvalidPrice
	}
	if base < 0 {
		return nil, ErrNegativePrice
	}
	return []Fare{
		{
			Name:       FareLight,
			Class:      class,
			Price:      base,
			Features:   append([]string(nil), features.light...),
			Refundable: false,
		},
		{
			Name:       FareFlex,
			Class:      class,
			Price:      roundCents(base + FlexOffset),
			Features:   append([]string(nil), features.flex...),
			Refundable: true,
		},
	}, nil
}
