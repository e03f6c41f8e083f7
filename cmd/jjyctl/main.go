package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/mkondo/jjyctl/internal/device"
	"github.com/mkondo/jjyctl/internal/observability"
)

func main() {
	observability.InitLogger("jjyctl")

	configPath := flag.String("config", "", "path to the device config (toml)")
	flag.Parse()

	cfg := device.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
		cfg = loaded
		log.Info().Str("path", *configPath).Msg("loaded config")
	}

	svc, err := device.NewService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid device configuration")
	}
	if err := svc.Run(); err != nil {
		log.Fatal().Err(err).Msg("transmitter stopped")
	}
	log.Info().Msg("shutdown complete")
}
