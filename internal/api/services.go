package api

import (
	"github.com/scripturesanctuary/sanctuary-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Auth     *service.AuthService
	Search   *service.SearchService
	Favorite *service.FavoriteService
	Tag      *service.TagService
	User     *service.UserService
}
