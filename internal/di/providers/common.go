package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// catalogLoadTimeout bounds the startup fetch of books and translations.
	catalogLoadTimeout = 30 * time.Second
)
