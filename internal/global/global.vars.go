package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TrustedSamu/sap-energy-portal/config"
	"github.com/TrustedSamu/sap-energy-portal/internal/registry"
)

// CollectionName holds the MongoDB collection names. The values are wire
// contract shared with other consumers of the database.
type CollectionName struct {
	Customers string // Customer records, keyed by kundennummer
	Tariffs   string // Tariff catalog
}

// Global variables
var Validate *validator.Validate              // Shared validator instance
var MongoDB_Session *mongo.Client             // MongoDB client session
var ServerConfig *config.Configuration        // Server configuration
var MongoDB_ColNames = *new(CollectionName)   // Collection names

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registered collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registered databases
