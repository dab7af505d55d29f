// Command notion-diagnose prints the Notion database schema so the
// operator can check property names, types and select options against
// what the sync expects.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hsadv/quotes-service/internal/logger"
	"github.com/hsadv/quotes-service/internal/notion"
)

func main() {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	apiKey := v.GetString("NOTION_API_KEY")
	databaseID := v.GetString("NOTION_DATABASE_ID")
	baseURL := v.GetString("NOTION_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.notion.com"
	}

	if apiKey == "" || databaseID == "" {
		fmt.Fprintln(os.Stderr, "missing NOTION_API_KEY or NOTION_DATABASE_ID")
		os.Exit(1)
	}

	log := logger.New("production")
	client := notion.NewClient(baseURL, apiKey, databaseID, 10*time.Second, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema, err := client.GetDatabaseSchema(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch database schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Notion Database Schema")
	fmt.Println("================================")
	fmt.Printf("Database ID: %s\n", schema.ID)
	fmt.Printf("Database Title: %s\n\n", schema.Title)

	fmt.Println("Available Properties:")
	fmt.Println("--------------------------------")
	for i, prop := range schema.Properties {
		fmt.Printf("%d. %s\n", i+1, prop.Name)
		fmt.Printf("   Type: %s\n", prop.Type)
		if len(prop.Options) > 0 {
			fmt.Printf("   Options: %s\n", strings.Join(prop.Options, ", "))
		}
		fmt.Println()
	}

	fmt.Println("================================")
	fmt.Println("Database schema retrieved successfully")
}
