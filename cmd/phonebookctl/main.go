// Command phonebookctl manages the phonebook store from the command line.
//
//	phonebookctl migrate
//	phonebookctl list [query]
//	phonebookctl add NAME NUMBER
//	phonebookctl seed [--file contacts.yaml]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"phonebook/internal/backend"
	"phonebook/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openConfigured).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openConfigured opens the store named by the environment, with driver overriding STORE_DRIVER.
func openConfigured(ctx context.Context, log *zap.Logger, driver string) (*backend.Backend, error) {
	cfg := config.Load()
	if driver != "" {
		cfg.Store.Driver = driver
	}
	return backend.Open(ctx, cfg, log)
}
