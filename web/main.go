package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/web/server"
)

func main() {
	envFile := flag.String("env", ".env", "Path to a .env configuration file")
	address := flag.String("address", "", "Listen address (overrides SERVER_ADDRESS)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.ServerAddress = *address
	}

	if info, err := config.GetSystemInfo(); err == nil {
		log.Printf("System: %s", info)
	}

	webServer := server.NewServer(cfg)

	log.Printf("Sphere Path Tracer Web Server")
	log.Printf("Try http://localhost%s/api/render?scene=showcase", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
