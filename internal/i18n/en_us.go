package i18n

var enUS = map[string]string{
	"error.bad_request":            "Invalid request",
	"error.unauthorized":           "Not signed in or session expired",
	"error.forbidden":              "You are not allowed to do this",
	"error.not_found":              "Not found",
	"error.internal":               "Internal server error",
	"error.save_failed":            "Save failed",
	"error.jwt_secret_missing":     "JWT secret is not configured",
	"error.auth_header_missing":    "Missing Authorization header",
	"error.auth_header_invalid":    "Malformed Authorization header",
	"error.token_invalid":          "Invalid token",
	"error.token_revoked":          "Token revoked, please sign in again",
	"error.rate_limit_unavailable": "Rate limiter unavailable",
	"error.rate_limited":           "Too many requests, retry in %d seconds",
	"error.login_too_many":         "Too many login attempts, retry in %d seconds",
	"error.login_invalid":          "Wrong username or password",
	"error.captcha_required":       "Captcha is required",
	"error.captcha_invalid":        "Wrong captcha",
	"error.captcha_unavailable":    "Captcha is disabled",
	"error.captcha_generate_failed": "Failed to generate captcha",
	"error.password_old_invalid":   "Current password is wrong",
	"error.password_min_length":    "Password must be at least %d characters",
	"error.password_require_upper": "Password needs an uppercase letter",
	"error.password_require_lower": "Password needs a lowercase letter",
	"error.password_require_number": "Password needs a digit",
	"error.admin_update_failed":    "Failed to update admin",
	"error.admin_fetch_failed":     "Failed to load admin",
	"error.role_invalid":           "Unknown role",

	"error.stone_not_found":     "Stone not found",
	"error.stone_fetch_failed":  "Failed to load stone",
	"error.stone_save_failed":   "Failed to save stone",
	"error.stone_delete_failed": "Failed to delete stone",
	"error.stone_sku_required":  "Stone ID is required",
	"error.stone_field_invalid": "Invalid value for %s",
	"error.status_invalid":      "Invalid status",

	"error.import_busy":               "An import is already running",
	"error.import_file_required":      "Choose a spreadsheet to import",
	"error.import_file_too_large":     "File exceeds the %d MB limit",
	"error.import_extension_invalid":  "Unsupported file type",
	"error.import_parse_failed":       "The spreadsheet could not be read",
	"error.import_parse_detail":       "The spreadsheet could not be read: %s",
	"error.import_mapping_missing":    "No Stone ID column found. Detected headers: %s",
	"error.import_conflict":           "%d Stone IDs already exist, choose overwrite or add new only",
	"error.import_decision_invalid":   "Invalid conflict decision",
	"error.import_proposal_not_found": "Pending import not found or expired",
	"error.import_lookup_failed":      "Checking existing Stone IDs failed, nothing was written: %s",
	"error.import_storage_failed":     "Writing inventory failed: %s",
	"error.import_cancelled":          "Import cancelled, nothing was written",
	"error.import_fetch_failed":       "Failed to load import history",

	"error.storage_disabled": "Object storage is disabled",
	"error.presign_failed":   "Failed to create upload URL",

	"error.quote_invalid":          "Quote request is incomplete",
	"error.quote_items_empty":      "Select at least one stone",
	"error.quote_items_too_many":   "At most %d stones per request",
	"error.quote_stone_unavailable": "Stone %s is not available",
	"error.quote_not_found":        "Quote request not found",
	"error.quote_status_invalid":   "Invalid quote status",
	"error.quote_fetch_failed":     "Failed to load quote requests",
	"error.email_invalid":          "Invalid email address",

	"import.completed": "Import complete: %s",

	"email.quote.subject":     "New quote request %s",
	"email.quote.body":        "%s (%s) submitted quote request %s for %d stones, total %s.\n\n%s\n\nMessage: %s",
	"email.quote.item":        "%s  %s  %.2fct  %s/%s  %s",
	"email.quote.ack_subject": "We received your quote request %s",
	"email.quote.ack_body":    "Hi %s,\n\nWe received your quote request %s for %d stones. A consultant will reach out shortly.",
}
