package main

import (
	"context"

	kundensvc "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
	"github.com/TrustedSamu/sap-energy-portal/internal/logger"
)

// InitDefaultData seeds the tariff catalog when the server runs in init
// mode. Existing catalog rows are never overwritten.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.ServerConfig.InitMode {
		log.Info("Init mode disabled, skipping default data")
		return
	}

	tariffSvc, err := kundensvc.NewTariffService()
	if err != nil {
		log.Fatalf("Failed to create tariff service: %v", err)
	}

	if err := tariffSvc.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("Failed to seed tariff catalog: %v", err)
	}
	log.Info("Tariff catalog seeded")
}
