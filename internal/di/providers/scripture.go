package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/config"
	"github.com/scripturesanctuary/sanctuary-server/internal/logger"
	"github.com/scripturesanctuary/sanctuary-server/internal/metrics"
	"github.com/scripturesanctuary/sanctuary-server/internal/scripture"
)

// ScriptureClientHandle wraps the provider client with Shutdownable.
type ScriptureClientHandle struct {
	*scripture.Client
}

// Shutdown implements do.Shutdownable.
func (h *ScriptureClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideScriptureClient provides the rate-limited verse provider client.
func ProvideScriptureClient(i do.Injector) (*ScriptureClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	client := scripture.New(scripture.Config{
		BaseURL:  cfg.Scripture.BaseURL,
		BooksKey: cfg.Scripture.BooksKey,
		Timeout:  cfg.Scripture.Timeout,
		Retries:  cfg.Scripture.Retries,
		RPS:      cfg.Scripture.RPS,
		Burst:    cfg.Scripture.Burst,
	}, m, log.With("component", "scripture"))

	return &ScriptureClientHandle{Client: client}, nil
}

// ProvideCatalog loads books and translations from the provider, falling
// back to the embedded catalog when it is unreachable.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*ScriptureClientHandle](i)

	ctx, cancel := context.WithTimeout(context.Background(), catalogLoadTimeout)
	defer cancel()

	return catalog.Load(ctx, client.Client, log.Logger), nil
}
