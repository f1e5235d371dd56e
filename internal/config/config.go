// Package config holds the process-wide configuration for the libris CLI,
// backed by viper. The library packages take configuration explicitly and do
// not read from here.
package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// APIKey is the Google Books API key. Anonymous access works with a
	// lower quota, so an empty key is valid.
	APIKey string
	// BaseURL overrides the Google Books endpoint. Empty means the
	// production endpoint.
	BaseURL string
	// MaxResults is the default page size for search commands.
	MaxResults int
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	// Set default values
	viper.SetDefault("googlebooks.maxresults", 10)

	// Get values from viper
	APIKey = viper.GetString("googlebooks.apikey")
	BaseURL = viper.GetString("googlebooks.baseurl")
	MaxResults = viper.GetInt("googlebooks.maxresults")
}

// SetAPIKey overrides the configured API key, typically from a CLI flag.
func SetAPIKey(key string) {
	if key != "" {
		APIKey = key
	}
}
