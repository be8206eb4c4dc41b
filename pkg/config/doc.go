// Package config provides configuration management for the portal.
//
// Configuration is layered: built-in defaults, then the YAML file at
// $PPA_CONFIG_PATH/ppa.yml, then a .env file, then environment variables.
// Each attribute remembers which layer last set it.
//
// # Key Configuration Options
//
//   - DATABASE_URL: sqlite3://path or postgres://... (defaults to data_dir/ppa.db)
//   - PPA_DATA_DIR: database and local document library root
//   - PPA_JWT_SECRET: session token signing secret
//   - PPA_DATA_KEY: base64 AES-256 key for sensitive settings
//   - GEMINI_API_KEY: generative model credentials
//   - SMTP_HOST, SMTP_USER, SMTP_PASS: admin notification transport
//   - PORT: server listen port
package config
