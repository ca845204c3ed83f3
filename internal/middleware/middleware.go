package middleware

// contextKey is a private type for context keys to avoid collisions with
// other packages storing values in the same context.
type contextKey string
