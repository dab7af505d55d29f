// Package pricing maps a service type and optional level to the estimated
// fee in BRL. The constants feed the dashboard revenue totals and must not
// drift from the published price tables.
package pricing

import (
	"strings"

	"github.com/hsadv/quotes-service/internal/model"
)

type category int

const (
	categoryUnknown category = iota
	categoryTrademark
	categoryPriorArt
	categoryBoth
)

const (
	trademarkNominative = 700
	trademarkFigurative = 800
	trademarkMixed      = 1500
	trademarkDefault    = 800 // second tier, not the first

	priorArtBasic    = 1100
	priorArtAdvanced = 1900 // average of the displayed 1800-2000 range
	priorArtDefault  = 1550 // average of basic and advanced

	bothCombined = 3450

	unknownDefault = 1500
)

// Estimate returns the estimated fee for a service type and level. It is
// total: any unrecognized input falls through to a default constant.
// Service types are accepted both as enum codes ("trademark") and as the
// display labels stored by older records ("Registro de Marca").
func Estimate(serviceType, serviceLevel string) float64 {
	switch categoryOf(serviceType) {
	case categoryTrademark:
		switch {
		case strings.Contains(serviceLevel, "Nominativa"):
			return trademarkNominative
		case strings.Contains(serviceLevel, "Figurativa"):
			return trademarkFigurative
		case strings.Contains(serviceLevel, "Mista"):
			return trademarkMixed
		default:
			return trademarkDefault
		}
	case categoryPriorArt:
		switch {
		case strings.Contains(serviceLevel, "Básico"):
			return priorArtBasic
		case strings.Contains(serviceLevel, "Avançado"):
			return priorArtAdvanced
		default:
			return priorArtDefault
		}
	case categoryBoth:
		return bothCombined
	default:
		return unknownDefault
	}
}

func categoryOf(serviceType string) category {
	switch serviceType {
	case string(model.ServiceTypeTrademark), model.ServiceTypeTrademark.Label():
		return categoryTrademark
	case string(model.ServiceTypePriorArt), model.ServiceTypePriorArt.Label():
		return categoryPriorArt
	case string(model.ServiceTypeBoth), model.ServiceTypeBoth.Label():
		return categoryBoth
	default:
		return categoryUnknown
	}
}
