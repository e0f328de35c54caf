package config

const (
	KeyKiprisAPIKey  = "kipris_api_key"
	KeyKiprisBaseURL = "kipris_base_url"
	KeyHTTPTimeout   = "kipris_http_timeout"
	KeyLogLevel      = "log_level"
	KeyTransport     = "transport"
	KeyHost          = "host"
	KeyPort          = "port"
)
