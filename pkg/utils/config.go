package utils

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Addr           string
	CatalogSource  string
	AssistantDelay time.Duration
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("WATCHHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	catalog := os.Getenv("WATCHHUB_CATALOG")
	if catalog == "" {
		catalog = "data/catalog.json"
	}

	// artificial assistant reply delay, in milliseconds
	delay := 500 * time.Millisecond
	if v := os.Getenv("WATCHHUB_ASSISTANT_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			delay = time.Duration(ms) * time.Millisecond
		}
	}

	return ServerConfig{
		Addr:           addr,
		CatalogSource:  catalog,
		AssistantDelay: delay,
	}
}
