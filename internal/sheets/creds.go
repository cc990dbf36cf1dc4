package sheets

import (
	"os"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ClientOptionsFromEnv resolves service-account credentials for the Sheets
// client. GOOGLE_CREDENTIALS_JSON (inline JSON) and
// GOOGLE_APPLICATION_CREDENTIALS (file path) take precedence over the
// configured credentials file. An empty result falls back to application
// default credentials.
func ClientOptionsFromEnv(credentialsFile string) []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		creds = credentialsFile
	}
	if creds == "" {
		return []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{
			option.WithCredentialsJSON([]byte(creds)),
			option.WithScopes(gsheets.SpreadsheetsScope),
		}
	}
	return []option.ClientOption{
		option.WithCredentialsFile(creds),
		option.WithScopes(gsheets.SpreadsheetsScope),
	}
}
