package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceTypeTrademark ServiceType = "trademark"
	ServiceTypePriorArt  ServiceType = "priorArt"
	ServiceTypeBoth      ServiceType = "both"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceTypeTrademark, ServiceTypePriorArt, ServiceTypeBoth:
		return true
	}
	return false
}

// Label is the display name used by the CRM mirror, emails and exports.
// These exact Portuguese strings are part of the external contract.
func (s ServiceType) Label() string {
	switch s {
	case ServiceTypeTrademark:
		return "Registro de Marca"
	case ServiceTypePriorArt:
		return "Busca por Anterioridades"
	case ServiceTypeBoth:
		return "Ambos os Serviços"
	}
	return string(s)
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

func (u Urgency) Label() string {
	switch u {
	case UrgencyLow:
		return "Baixa"
	case UrgencyNormal:
		return "Normal"
	case UrgencyHigh:
		return "Alta"
	case UrgencyUrgent:
		return "Urgente"
	}
	return string(u)
}

type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"
	QuoteStatusContacted QuoteStatus = "contacted"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusClosed    QuoteStatus = "closed"
)

// Quote is a single quote-request submission. Status starts at "new" and is
// only ever changed by administrative action, never by the intake workflow.
type Quote struct {
	ID                   uuid.UUID   `json:"id"`
	Name                 string      `json:"name"`
	Email                string      `json:"email"`
	Phone                string      `json:"phone"`
	Company              *string     `json:"company"`
	ServiceType          ServiceType `json:"serviceType"`
	ServiceLevel         *string     `json:"serviceLevel"`
	ServiceSpecification *string     `json:"serviceSpecification"`
	Urgency              Urgency     `json:"urgency"`
	ProjectDescription   *string     `json:"projectDescription"`
	ConsentMarketing     int16       `json:"consentMarketing"` // persisted as 0/1
	Status               QuoteStatus `json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            *time.Time  `json:"updatedAt"`
}
