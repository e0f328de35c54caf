package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyKiprisBaseURL, "http://plus.kipris.or.kr/openapi/rest")
	viper.SetDefault(KeyHTTPTimeout, "30s")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHost, "0.0.0.0")
	viper.SetDefault(KeyPort, 8000)
}

func KiprisAPIKey() string  { return viper.GetString(KeyKiprisAPIKey) }
func KiprisBaseURL() string { return viper.GetString(KeyKiprisBaseURL) }
func HTTPTimeout() string   { return viper.GetString(KeyHTTPTimeout) }
func LogLevel() string      { return viper.GetString(KeyLogLevel) }
func Transport() string     { return viper.GetString(KeyTransport) }
func Host() string          { return viper.GetString(KeyHost) }
func Port() int             { return viper.GetInt(KeyPort) }
