package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsadv/quotes-service/internal/logger"
	"github.com/hsadv/quotes-service/internal/model"
)

func sampleQuote() model.Quote {
	company := "Aurora Ltda"
	spec := "Marca Mista"
	return model.Quote{
		ID:                   uuid.New(),
		Name:                 "Maria Silva",
		Email:                "maria@example.com",
		Phone:                "32999887766",
		Company:              &company,
		ServiceType:          model.ServiceTypeTrademark,
		ServiceSpecification: &spec,
		Urgency:              model.UrgencyHigh,
		CreatedAt:            time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestSyncQuote(t *testing.T) {
	var captured map[string]any
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]string{"id": "page-123"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", "db-456", 5*time.Second, logger.New("test"))

	pageID, err := client.SyncQuote(context.Background(), sampleQuote())
	require.NoError(t, err)
	assert.Equal(t, "page-123", pageID)

	assert.Equal(t, "Bearer secret-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "2022-06-28", gotHeaders.Get("Notion-Version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	parent := captured["parent"].(map[string]any)
	assert.Equal(t, "db-456", parent["database_id"])

	properties := captured["properties"].(map[string]any)
	// The database schema carries trailing spaces in some property names.
	for _, name := range []string{"Nome", "E-mail", "Telefone", "Empresa", "Tipo de Serviço", "Urgência ", "Descrição ", "Data de Criação ", "Especificação do Serviço"} {
		assert.Contains(t, properties, name)
	}

	service := properties["Tipo de Serviço"].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "Registro de Marca", service["name"])

	urgency := properties["Urgência "].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "Alta", urgency["name"])

	created := properties["Data de Criação "].(map[string]any)["date"].(map[string]any)
	assert.Equal(t, "2025-03-15T10:30:00Z", created["start"])
}

func TestSyncQuoteOptionalFallbacks(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]string{"id": "page-123"})
	}))
	defer srv.Close()

	quote := sampleQuote()
	quote.Company = nil
	quote.ProjectDescription = nil
	quote.ServiceSpecification = nil

	client := NewClient(srv.URL, "secret-key", "db-456", 5*time.Second, logger.New("test"))
	_, err := client.SyncQuote(context.Background(), quote)
	require.NoError(t, err)

	properties := captured["properties"].(map[string]any)
	company := properties["Empresa"].(map[string]any)["rich_text"].([]any)[0].(map[string]any)["text"].(map[string]any)
	assert.Equal(t, "N/A", company["content"])

	spec := properties["Especificação do Serviço"].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "Não especificado", spec["name"])
}

func TestSyncQuoteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"validation_error"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", "db-456", 5*time.Second, logger.New("test"))
	_, err := client.SyncQuote(context.Background(), sampleQuote())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSyncQuoteUnconfiguredSkips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without credentials")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", 5*time.Second, logger.New("test"))
	assert.False(t, client.Configured())

	pageID, err := client.SyncQuote(context.Background(), sampleQuote())
	require.NoError(t, err)
	assert.Empty(t, pageID)
}

func TestGetDatabaseSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-456", r.URL.Path)
		w.Write([]byte(`{
			"id": "db-456",
			"title": [{"plain_text": "Orçamentos"}],
			"properties": {
				"Nome": {"type": "title"},
				"Urgência ": {"type": "select", "select": {"options": [{"name": "Baixa"}, {"name": "Alta"}]}}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", "db-456", 5*time.Second, logger.New("test"))
	schema, err := client.GetDatabaseSchema(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "db-456", schema.ID)
	assert.Equal(t, "Orçamentos", schema.Title)
	require.Len(t, schema.Properties, 2)

	byName := make(map[string]PropertyInfo)
	for _, p := range schema.Properties {
		byName[p.Name] = p
	}
	assert.Equal(t, "title", byName["Nome"].Type)
	assert.Equal(t, []string{"Baixa", "Alta"}, byName["Urgência "].Options)
}
