// Package notion mirrors quote submissions into the practice's Notion
// workspace database and can inspect that database's schema.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hsadv/quotes-service/internal/model"
)

const apiVersion = "2022-06-28"

type Client struct {
	apiKey     string
	databaseID string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL, apiKey, databaseID string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		databaseID: databaseID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "notion").Logger(),
	}
}

// Configured reports whether both credentials are present. An unconfigured
// client skips syncs instead of failing them.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.databaseID != ""
}

// SyncQuote creates a page for the quote in the workspace database and
// returns the page id. Property names match the database schema exactly,
// trailing spaces included.
func (c *Client) SyncQuote(ctx context.Context, quote model.Quote) (string, error) {
	if !c.Configured() {
		c.log.Warn().Msg("notion credentials not configured, skipping sync")
		return "", nil
	}

	properties := map[string]any{
		"Nome": map[string]any{
			"title": []any{textBlock(quote.Name)},
		},
		"E-mail": map[string]any{
			"email": quote.Email,
		},
		"Telefone": map[string]any{
			"phone_number": quote.Phone,
		},
		"Empresa": map[string]any{
			"rich_text": []any{textBlock(valueOr(quote.Company, "N/A"))},
		},
		"Tipo de Serviço": map[string]any{
			"select": map[string]any{"name": quote.ServiceType.Label()},
		},
		"Urgência ": map[string]any{
			"select": map[string]any{"name": quote.Urgency.Label()},
		},
		"Descrição ": map[string]any{
			"rich_text": []any{textBlock(valueOr(quote.ProjectDescription, "N/A"))},
		},
		"Data de Criação ": map[string]any{
			"date": map[string]any{"start": quote.CreatedAt.UTC().Format(time.RFC3339)},
		},
		"Especificação do Serviço": map[string]any{
			"select": map[string]any{"name": valueOr(quote.ServiceSpecification, "Não especificado")},
		},
	}

	body, err := json.Marshal(map[string]any{
		"parent":     map[string]any{"database_id": c.databaseID},
		"properties": properties,
	})
	if err != nil {
		return "", fmt.Errorf("encode notion page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build notion request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sync quote to notion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("notion returned %d: %s", resp.StatusCode, detail)
	}

	var page struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return "", fmt.Errorf("decode notion response: %w", err)
	}

	c.log.Info().Str("page_id", page.ID).Str("quote_id", quote.ID.String()).Msg("quote synced to notion")
	return page.ID, nil
}

// PropertyInfo describes one column of the workspace database.
type PropertyInfo struct {
	Name    string
	Type    string
	Options []string
}

type DatabaseSchema struct {
	ID         string
	Title      string
	Properties []PropertyInfo
}

// GetDatabaseSchema fetches the database definition for operator debugging.
func (c *Client) GetDatabaseSchema(ctx context.Context) (*DatabaseSchema, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/databases/"+c.databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("build notion request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch notion database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("notion returned %d: %s", resp.StatusCode, detail)
	}

	var raw struct {
		ID    string `json:"id"`
		Title []struct {
			PlainText string `json:"plain_text"`
		} `json:"title"`
		Properties map[string]struct {
			Type   string `json:"type"`
			Select struct {
				Options []struct {
					Name string `json:"name"`
				} `json:"options"`
			} `json:"select"`
			MultiSelect struct {
				Options []struct {
					Name string `json:"name"`
				} `json:"options"`
			} `json:"multi_select"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode notion database: %w", err)
	}

	schema := &DatabaseSchema{ID: raw.ID, Title: "N/A"}
	if len(raw.Title) > 0 {
		schema.Title = raw.Title[0].PlainText
	}
	for name, prop := range raw.Properties {
		info := PropertyInfo{Name: name, Type: prop.Type}
		for _, opt := range prop.Select.Options {
			info.Options = append(info.Options, opt.Name)
		}
		for _, opt := range prop.MultiSelect.Options {
			info.Options = append(info.Options, opt.Name)
		}
		schema.Properties = append(schema.Properties, info)
	}
	return schema, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

func textBlock(content string) map[string]any {
	return map[string]any{
		"text": map[string]any{"content": content},
	}
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
