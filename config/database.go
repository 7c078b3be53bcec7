package config

import (
	"time"

	"dealflow/utils"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "dealflow"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// Collection env-var names with their defaults. Each repository resolves
// its collection through these so test databases can be swapped in.
var collectionDefaults = map[string]string{
	"LEADS_COLLECTION":     "leads",
	"DEALS_COLLECTION":     "deals",
	"TASKS_COLLECTION":     "tasks",
	"CONTACTS_COLLECTION":  "contacts",
	"SHIPMENTS_COLLECTION": "shipments",
	"USERS_COLLECTION":     "users",
	"SESSIONS_COLLECTION":  "sessions",
}

// CollectionName resolves a collection's configured name, falling back to
// its conventional default.
func CollectionName(envVar string) string {
	def, ok := collectionDefaults[envVar]
	if !ok {
		return utils.GetEnvAsString(envVar, "")
	}
	return utils.GetEnvAsString(envVar, def)
}
