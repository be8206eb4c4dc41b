// Command ppactl runs the Portal Pedagógico Angola (PPA), a platform that
// helps Angolan primary school teachers produce lesson plans aligned with
// the INIDE curriculum.
//
// # Quick Start
//
//	# Generate a key for the sensitive settings (optional)
//	export PPA_DATA_KEY=$(ppactl data-key generate)
//
//	# Create the schema (SQLite under ./data by default)
//	ppactl db migrate
//
//	# Start the server; it seeds the curriculum, the news feed and the
//	# administrator account on first run
//	PPA_JWT_SECRET=... PPA_ADMIN_PASSWORD=... ppactl server
//
// # Operations
//
//	ppactl curriculum load programa.yml   # replace the curriculum tree
//	ppactl user reset-password 923000000  # print a new temporary password
//	ppactl maintenance run --skip-news    # prune old plans and expired news
//	ppactl library init                   # create the library folders
//
// # Environment Variables
//
//   - DATABASE_URL: sqlite3://path or postgres://... (default sqlite3://./data/ppa.db)
//   - PPA_JWT_SECRET: HMAC secret for session tokens
//   - PPA_DATA_KEY: base64 AES-256 key encrypting the SMTP password setting
//   - GEMINI_API_KEY: enables plan, question and news generation
//   - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET: enable the Google Drive export
//   - SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, ADMIN_EMAIL: admin notifications
//   - PPA_LOG_LEVEL, PPA_LOG_MODE: logging (debug, info, warn, error; dev or prod)
//   - PORT: server port (default: 3000)
//
// Every variable can also be set in /etc/ppa/ppa.yml (or PPA_CONFIG_PATH)
// and in a .env file. See "ppactl configuration show".
package main
