package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/app"
	"github.com/githbnaboulsi/shipcore-api/internal/config"
	"github.com/githbnaboulsi/shipcore-api/internal/version"
	"github.com/jessevdk/go-flags"
)

// Options are interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config  string `short:"c" long:"config" description:"YAML config path"`
	EnvFile string `short:"e" long:"env-file" description:"dotenv file with overrides"`
	Host    string `long:"host" description:"listen host (overrides config)"`
	Port    string `short:"p" long:"port" description:"listen port (overrides config)"`
	Version bool   `short:"v" long:"version" description:"print version and exit"`
}

func main() {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Stdout.WriteString(err.Error() + "\n")
			return
		}
		log.Fatalf("%v", err)
	}
	if opts.Version {
		os.Stdout.WriteString(version.String() + "\n")
		return
	}

	cfg, err := config.Load(opts.Config, opts.EnvFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if opts.Host != "" {
		cfg.Server.Host = opts.Host
	}
	if opts.Port != "" {
		cfg.Server.Port = opts.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           service.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 shipcore-api %s starting on http://%s", version.Version, cfg.Addr())
		log.Printf("🔌 OAuth: POST /oauth/exchange, GET /oauth/status")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Shutdown: %v", err)
	}
	if err := service.Close(shutdownCtx); err != nil {
		log.Printf("⚠️ Closing store: %v", err)
	}
}
