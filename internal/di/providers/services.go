package providers

import (
	"github.com/samber/do/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/auth"
	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/logger"
	"github.com/scripturesanctuary/sanctuary-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideSearchService provides passage lookup.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	cat := do.MustInvoke[*catalog.Catalog](i)
	client := do.MustInvoke[*ScriptureClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(cat, client.Client, log.Logger), nil
}

// ProvideFavoriteService provides the favorite service.
func ProvideFavoriteService(i do.Injector) (*service.FavoriteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	client := do.MustInvoke[*ScriptureClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoriteService(storeHandle.Store, cat, client.Client, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideUserService provides the user service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	favorites := do.MustInvoke[*service.FavoriteService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, favorites, log.Logger), nil
}
