// Package config handles configuration loading for coursechat.
//
// # Overview
//
// Configuration is loaded from a YAML or TOML file with environment variable
// expansion. Missing values fall back to defaults, so an absent file at the
// default location is not an error.
//
// # Configuration File
//
// Locations (in order):
//
//  1. Path from COURSECHAT_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/coursechat/config.yaml
//  3. ~/.config/coursechat/config.yaml
//
// A file ending in .toml is decoded as TOML.
//
// # Environment
//
// Values can reference environment variables with ${VAR_NAME}. LoadDotEnv
// reads a .env file first so those references resolve in development.
// COURSECHAT_API_URL replaces assistant.base_url after the file is read.
//
// # Configuration Sections
//
//	assistant:
//	  base_url: "http://localhost:8000"
//	  timeout: "60s"
//	  user_agent: "coursechat/1.0"
//
//	chat:
//	  greeting: ""          # empty uses the built-in greeting
//	  quick_start:
//	    - "In which cities are you located?"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.LoadDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
