package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openmeg/gomeg/pkg/config"
	"github.com/openmeg/gomeg/pkg/monitor"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g. /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		listenFlag = flag.String("listen", "", "Metrics listen address override")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *listenFlag != "" {
		cfg.Metrics.Listen = *listenFlag
	}

	reg := prometheus.NewRegistry()
	mon := monitor.New(cfg, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		log.Printf("Serving metrics on %s/metrics", cfg.Metrics.Listen)
		if err := http.ListenAndServe(cfg.Metrics.Listen, nil); err != nil {
			log.Fatalf("Metrics server exited: %v", err)
		}
	}()

	log.Printf("Reading device debug stream from %s", cfg.Serial.Port)
	if err := mon.Run(ctx); err != nil {
		log.Fatalf("Monitor exited: %v", err)
	}
}
