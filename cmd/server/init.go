package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/TrustedSamu/sap-energy-portal/config"
	kundenmodels "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	"github.com/TrustedSamu/sap-energy-portal/internal/database"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
)

// InitGlobal initializes the global state of the application.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabaseMongoDB()
}

// initColNames sets the collection names. The values are wire contract
// shared with other consumers of the database.
func initColNames() {
	global.MongoDB_ColNames.Customers = "customers"
	global.MongoDB_ColNames.Tariffs = "tariffs"

	logrus.Info("Initialized collection names")
}

// initValidator registers the custom validators (plz, iso_date, ...).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabaseMongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Customers), kundenmodels.Customer{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Tariffs), kundenmodels.Tariff{})
}
