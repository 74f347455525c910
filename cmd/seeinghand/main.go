package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/catalog"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/config"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/server"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/system"
)

func main() {
	system.InitResourceLimits()

	configPtr := flag.String("config", "", "Path to a YAML config file")
	rootPtr := flag.String("root", "", "Catalog root containing images/ and sessions/")
	listenPtr := flag.String("listen", "", "HTTP listen address")
	clientPtr := flag.String("client", "", "Static browser client directory")
	publicPtr := flag.String("public-url", "", "Externally reachable base URL for share links")
	thumbPtr := flag.Int("thumb-width", 0, "Gallery thumbnail width in pixels")
	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		var err error
		cfg, err = config.Load(*configPtr)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if *rootPtr != "" {
		cfg.Root = *rootPtr
	}
	if *listenPtr != "" {
		cfg.Listen = *listenPtr
	}
	if *clientPtr != "" {
		cfg.ClientDir = *clientPtr
	}
	if *publicPtr != "" {
		cfg.PublicURL = *publicPtr
	}
	if *thumbPtr > 0 {
		cfg.ThumbWidth = *thumbPtr
	}
	cfg.Finalize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, d := range []string{"images", "sessions"} {
		if err := os.MkdirAll(filepath.Join(cfg.Root, d), 0o755); err != nil {
			log.Fatalf("preparing catalog root: %v", err)
		}
	}

	cat := catalog.New(cfg.Root)
	start := time.Now()
	if err := cat.Scan(); err != nil {
		log.Fatalf("scanning catalog: %v", err)
	}
	if err := cat.GenerateThumbnails(ctx, cfg.ThumbWidth); err != nil {
		log.Fatalf("generating thumbnails: %v", err)
	}
	log.Printf("catalog ready: %d images, %d sessions (%.1fs)",
		len(cat.Images()), len(cat.Sessions()), time.Since(start).Seconds())

	if err := server.New(cfg, cat).Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
