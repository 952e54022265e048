// Package config собирает конфигурацию клиента из флагов и переменных
// окружения. Флаг имеет приоритет над переменной окружения.
package config

import (
	"flag"
	"fmt"
	"os"
)

// Имена переменных окружения
const (
	EnvServerURL = "MEMOCHAT_SERVER_URL"
	EnvAnonKey   = "MEMOCHAT_ANON_KEY"
	EnvDBPath    = "MEMOCHAT_DB"
	EnvDemoDB    = "MEMOCHAT_DEMO_DB"
)

// Значения по умолчанию
const (
	DefaultDBPath = "memochat-client.db"
	DefaultDemoDB = "memochat-demo.db"
)

// Config - конфигурация клиента
type Config struct {
	// ServerURL - корень hosted backend-а. Пустое значение включает
	// демо-режим с локальной базой.
	ServerURL string

	// AnonKey - публичный API-ключ hosted backend-а
	AnonKey string

	// DBPath - путь к локальной базе клиента (сессия)
	DBPath string

	// DemoDB - путь к sqlite-базе демо-режима
	DemoDB string

	// ShowVersion - напечатать версию и выйти
	ShowVersion bool
}

// DemoMode сообщает, работает ли клиент без hosted backend-а.
// Так же вёл себя исходный клиент: без настроенного сервера данные
// живут локально.
func (c *Config) DemoMode() bool {
	return c.ServerURL == "" || c.AnonKey == ""
}

// Load разбирает конфигурацию из args (без имени программы) и окружения.
// Возвращает конфигурацию и оставшиеся позиционные аргументы (команду).
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("memochat", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", os.Getenv(EnvServerURL), "Server URL")
	fs.StringVar(&cfg.AnonKey, "anon-key", os.Getenv(EnvAnonKey), "Server public API key")
	fs.StringVar(&cfg.DBPath, "db", envOrDefault(EnvDBPath, DefaultDBPath), "Path to local database")
	fs.StringVar(&cfg.DemoDB, "demo-db", envOrDefault(EnvDemoDB, DefaultDemoDB), "Path to demo mode database")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return cfg, fs.Args(), nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
