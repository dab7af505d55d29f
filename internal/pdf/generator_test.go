package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsadv/quotes-service/internal/model"
)

func TestGenerate(t *testing.T) {
	description := "Registro da marca Aurora Cosméticos para a classe 3."
	quote := model.Quote{
		ID:                 uuid.New(),
		Name:               "Maria Silva",
		Email:              "maria@example.com",
		Phone:              "32999887766",
		ServiceType:        model.ServiceTypeTrademark,
		Urgency:            model.UrgencyHigh,
		ProjectDescription: &description,
		Status:             model.QuoteStatusNew,
		CreatedAt:          time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	content, err := NewGenerator().Generate(quote)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestGenerateWithoutOptionalFields(t *testing.T) {
	quote := model.Quote{
		ID:          uuid.New(),
		Name:        "João Costa",
		Email:       "joao@example.com",
		Phone:       "32911223344",
		ServiceType: model.ServiceTypeBoth,
		Urgency:     model.UrgencyNormal,
		Status:      model.QuoteStatusNew,
		CreatedAt:   time.Now(),
	}

	content, err := NewGenerator().Generate(quote)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}
