// Package config loads runtime configuration for the redesocial CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults), including the
//     REDESOCIAL_TOKEN environment variable for the bearer token.
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server REST endpoint
//	-r int      per-request timeout (seconds)
//	-t string   bearer token from a previous login
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "10s"
//	}
package config
