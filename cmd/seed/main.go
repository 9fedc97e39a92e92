// Package main seeds an empty database with sample users, tags and favorites.
//
// It reads the same flags and environment as the server, so the target
// database is DATABASE_PATH or {DATA_PATH}/sanctuary.db.
//
// Usage:
//
//	go run ./cmd/seed
//	DATABASE_PATH=/tmp/sanctuary.db go run ./cmd/seed
package main

import (
	"context"
	"log"
	"time"

	"github.com/scripturesanctuary/sanctuary-server/internal/auth"
	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/config"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/logger"
	"github.com/scripturesanctuary/sanctuary-server/internal/service"
	"github.com/scripturesanctuary/sanctuary-server/internal/store/sqlite"
)

type seedUser struct {
	req             service.SignupRequest
	profileImageURL string
}

var users = []seedUser{
	{
		req: service.SignupRequest{
			Username:  "john_doe",
			Password:  "password1",
			Email:     "john@example.com",
			FirstName: "John",
			LastName:  "Doe",
			ImageURL:  "https://cdn.pixabay.com/photo/2016/08/03/09/04/universe-1566161_640.jpg",
		},
		profileImageURL: "https://images.ctfassets.net/h6goo9gw1hh6/2sNZtFAWOdP1lmQ33VwRN3/24e953b920a9cd0ff2e1d587742a2472/1-intro-photo-final.jpg",
	},
	{
		req: service.SignupRequest{
			Username:  "jane_smith",
			Password:  "password2",
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Smith",
		},
		profileImageURL: "https://cdn.pixabay.com/photo/2015/03/03/08/55/portrait-657116_640.jpg",
	},
	{
		req: service.SignupRequest{
			Username:  "batman",
			Password:  "iambatman",
			Email:     "bruce.wayne@wayneenterprises.com",
			FirstName: "Bruce",
			LastName:  "Wayne",
			ImageURL:  "https://i.pinimg.com/736x/7e/99/fe/7e99fe9f0dc7d4b602577479a1d64f92.jpg",
		},
		profileImageURL: "https://cdn.inprnt.com/thumbs/b9/9a/b99ae31d32be7d46b45bd659b6fb587b.jpg",
	},
}

// tags maps a tag name to the index of its creator in users.
var tags = []struct {
	name  string
	owner int
}{
	{"inspiration", 0},
	{"faith", 0},
	{"hope", 1},
}

var favorites = []struct {
	owner int
	ref   domain.Reference
	tags  []string
}{
	{0, domain.NewReference("NIV", 1, 1, 1, 5), []string{"inspiration", "faith"}},
	{1, domain.NewReference("KJV", 2, 3, 10, 15), []string{"faith", "hope"}},
	{1, domain.NewReference("KJV", 3, 4, 0, 0), nil},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	st, err := sqlite.Open(cfg.Database.Path, lg.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	existing, err := st.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	if len(existing) > 0 {
		log.Fatalf("Database %s already has %d users; seed an empty database", cfg.Database.Path, len(existing))
	}

	key, err := auth.LoadOrGenerateKey(cfg.Auth.KeyPath)
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	// Creating favorites only validates against the catalog, so no provider
	// client is needed.
	favSvc := service.NewFavoriteService(st, catalog.Default(), nil, lg.Logger)
	authSvc := service.NewAuthService(st, tokens, lg.Logger)
	userSvc := service.NewUserService(st, favSvc, lg.Logger)
	tagSvc := service.NewTagService(st, lg.Logger)

	userIDs := make([]string, len(users))
	for i, u := range users {
		resp, err := authSvc.Signup(ctx, u.req)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", u.req.Username, err)
		}
		userIDs[i] = resp.User.ID

		img := u.profileImageURL
		if _, err := userSvc.UpdateUser(ctx, resp.User.ID, resp.User.ID, service.UpdateUserRequest{ProfileImageURL: &img}); err != nil {
			log.Fatalf("Failed to set profile image for %s: %v", u.req.Username, err)
		}
	}

	for _, t := range tags {
		if _, err := tagSvc.CreateTag(ctx, userIDs[t.owner], service.TagRequest{Name: t.name}); err != nil {
			log.Fatalf("Failed to create tag %s: %v", t.name, err)
		}
	}

	for _, f := range favorites {
		fav, err := favSvc.CreateFavorite(ctx, userIDs[f.owner], f.ref)
		if err != nil {
			log.Fatalf("Failed to create favorite: %v", err)
		}
		if len(f.tags) == 0 {
			continue
		}
		if _, err := tagSvc.SetFavoriteTags(ctx, userIDs[f.owner], fav.ID, f.tags); err != nil {
			log.Fatalf("Failed to tag favorite %s: %v", fav.ID, err)
		}
	}

	lg.Info("Database seeded",
		"path", cfg.Database.Path,
		"users", len(users),
		"tags", len(tags),
		"favorites", len(favorites),
	)
}
