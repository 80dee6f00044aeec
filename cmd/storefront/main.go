package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-delivery-notes/internal/di"
	"github.com/goliatone/go-delivery-notes/pkg/commands"
	"github.com/goliatone/go-delivery-notes/pkg/config"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file; omitted sections use the defaults")
	seed := flag.Bool("seed", false, "create demo orders on start")
	flag.Parse()

	ctx := context.Background()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lgr := logger.New()
	container, err := di.New(ctx, di.Options{Config: cfg, Logger: lgr})
	if err != nil {
		log.Fatalf("failed to create container: %v", err)
	}
	defer container.Close()

	if *seed {
		if err := seedOrders(ctx, container.Commands); err != nil {
			log.Fatalf("failed to seed orders: %v", err)
		}
		log.Printf("Demo orders: 1001 (cust-1, completed), 1002 (guest, /checkout/order-received/1002?key=%s)", demoOrderKey)
	}

	srv := container.Storefront
	go func() {
		if err := srv.Listen(cfg.Server.Addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(config.Defaults())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return config.Config{}, err
	}
	return config.Load(raw)
}

const demoOrderKey = "wc_order_demo1002"

func seedOrders(ctx context.Context, registry *commands.Registry) error {
	orders := []commands.SaveOrder{
		{Reference: "1001", CustomerID: "cust-1", Status: "completed", BillingEmail: "jane@example.com"},
		{Reference: "1002", Status: "processing", BillingEmail: "guest@example.com", Metadata: map[string]any{"order_key": demoOrderKey}},
	}
	for _, order := range orders {
		if err := registry.SaveOrder.Execute(ctx, order); err != nil {
			return err
		}
	}
	return nil
}
