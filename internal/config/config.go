package config // package config loads application configuration from environment variables

import (
    "log" // log is used to report configuration errors and halt execution
    "os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Secrets (LINE channel token, Thunder API key,
// service-account JSON) are plain strings; components receive them at
// construction instead of reading globals.
type Config struct {
    Env                string // application environment (e.g. "dev", "prod")
    Port               string // HTTP port to listen on
    DBUser             string // database username
    DBPass             string // database password (optional)
    DBHost             string // database host address
    DBPort             string // database port number
    DBName             string // database name
    JWTSecret          string // secret used to verify operator JWTs on /api/push-line
    LineAccessToken    string // LINE Messaging API channel access token
    LineGroupID        string // operator group that receives stop-queue notices
    ThunderAPIKey      string // Thunder slip-verification API key
    ThunderAPIURL      string // Thunder verify endpoint (default production URL)
    ServiceAccountJSON string // Google service-account credentials JSON
    MasterSheetID      string // spreadsheet holding the concert index tab
    MasterSheetTab     string // tab name of the concert index (default "index")
    LogSheetID         string // spreadsheet receiving audit-log rows
    LogSheetTab        string // tab name for audit-log rows (default "Logs")
    ReceiverPattern    string // regex of accepted slip receiver names
}

// defaultReceiverPattern matches the shop's company name in Thai or English,
// tolerating the spacing and punctuation variants that banks print on slips.
const defaultReceiverPattern = `(?i)(บจก\.\s*โยเย\s*ม|YOYE\s*MUETHONG\s*CO\.,?\s*LTD\.?)`

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:                must("APP_ENV"),
        Port:               must("APP_PORT"),
        DBUser:             must("DB_USER"),
        DBPass:             os.Getenv("DB_PASS"), // empty allowed
        DBHost:             must("DB_HOST"),
        DBPort:             must("DB_PORT"),
        DBName:             must("DB_NAME"),
        JWTSecret:          must("JWT_SECRET"),
        LineAccessToken:    must("LINE_ACCESS_TOKEN"),
        LineGroupID:        must("LINE_GROUP_ID"),
        ThunderAPIKey:      must("THUNDER_API_KEY"),
        ThunderAPIURL:      getenv("THUNDER_API_URL", "https://api.thunder.in.th/v1/verify"),
        ServiceAccountJSON: must("SERVICE_ACCOUNT_JSON"),
        MasterSheetID:      must("MASTER_SHEET_ID"),
        MasterSheetTab:     getenv("MASTER_SHEET_TAB", "index"),
        LogSheetID:         must("LOG_SHEET_ID"),
        LogSheetTab:        getenv("LOG_SHEET_TAB", "Logs"),
        ReceiverPattern:    getenv("SLIP_RECEIVER_PATTERN", defaultReceiverPattern),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenv returns the value of an optional environment variable, falling
// back to def when unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
