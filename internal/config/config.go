// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all service configuration.
// Environment determines whether shop credentials come from env vars
// (development) or are overlaid from Secret Manager (production).
type Config struct {
	// Server settings
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development" or "production"
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`          // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string `env:"GCP_PROJECT"`
	SecretName string `env:"SHOP_SECRET_NAME" envDefault:"merchantkit-shop"`

	// Shopify Function backing the raffle discount. Raffle creation is
	// rejected while this is unset; everything else works without it.
	RaffleFunctionID string `env:"RAFFLE_FUNCTION_ID"`

	// Shop credentials (loaded from Secret Manager in production)
	Shop ShopConfig
}

// ShopConfig contains the Shopify Admin API credentials.
// In production this is loaded from Secret Manager as JSON; fields absent
// from the secret keep their environment values.
type ShopConfig struct {
	Domain     string `env:"SHOPIFY_SHOP_DOMAIN" json:"shop_domain"`
	AdminToken string `env:"SHOPIFY_ADMIN_TOKEN" json:"admin_token"`
	AppSecret  string `env:"SHOPIFY_APP_SECRET" json:"app_secret"`
	APIVersion string `env:"SHOPIFY_API_VERSION" envDefault:"2026-07" json:"api_version,omitempty"`
}

// shopDomainPattern matches bare *.myshopify.com hostnames, no scheme.
var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// Load reads configuration from the environment, layering Secret Manager on
// top in production. A .env file is read first when present so local runs
// need no exported variables. Validates all required fields and returns an
// error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// Best effort; a missing .env file is the normal case outside local dev
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		if err := cfg.loadFromSecretManager(ctx); err != nil {
			return nil, fmt.Errorf("loading shop credentials: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromSecretManager fetches shop credentials from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{secret_name}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.SecretName)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Shop); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Shop.Domain == "" {
		return fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if !shopDomainPattern.MatchString(c.Shop.Domain) {
		return fmt.Errorf("invalid shop domain %q: must be a bare *.myshopify.com hostname", c.Shop.Domain)
	}
	if c.Shop.AdminToken == "" {
		return fmt.Errorf("SHOPIFY_ADMIN_TOKEN is required")
	}
	if c.Shop.AppSecret == "" {
		return fmt.Errorf("SHOPIFY_APP_SECRET is required")
	}
	return nil
}
