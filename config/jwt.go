package config

import (
	"time"
)

// Issued tokens and session cookies expire after this long.
const JWTExpiration = 24 * time.Hour

// Fallback signing key for development only; production startup fails
// without an explicit SECRET_KEY.
const devSecretKey = "your_secret_key"
