package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/masterskaya/storefront/internal/client"
	"github.com/masterskaya/storefront/internal/favorites"
	"github.com/masterskaya/storefront/internal/notify"
	"github.com/masterskaya/storefront/internal/reconciler"
	"github.com/masterskaya/storefront/internal/view"
)

func main() {
	// Configuration
	baseURL := getEnv("STOREFRONT_BASE_URL", "http://localhost:8000")
	pollInterval := getDuration("CART_POLL_INTERVAL", 30*time.Second)
	catalogIDs := getIDs("CATALOG_PRODUCT_IDS")
	favoriteIDs := getIDs("FAVORITE_PRODUCT_IDS")

	tokens := client.PageTokens{
		Meta:   os.Getenv("STOREFRONT_CSRF_TOKEN"),
		Cookie: os.Getenv("STOREFRONT_CSRF_COOKIE"),
	}

	c := client.New(baseURL, tokens, nil)
	page := view.NewPage(catalogIDs, favoriteIDs)
	center := notify.NewCenter(0)
	defer center.Close()

	rec := reconciler.New(c, page, center)
	toggler := favorites.NewToggler(c, page, center, func(location string) {
		log.Printf("navigation requested: %s", location)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Page-ready sequence: start polling (first refresh is immediate) and
	// validate each tracked favorite icon.
	poller := reconciler.NewPoller(rec, pollInterval)
	go poller.Run(ctx)
	toggler.CheckAll(ctx)

	log.Printf("storefront sync running against %s, polling every %s", baseURL, pollInterval)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down storefront sync...")
	cancel()
	log.Println("Storefront sync stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getIDs(key string) []int64 {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("invalid product id %q in %s, skipping", part, key)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
