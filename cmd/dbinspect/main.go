// Package main prints every user with their favorites and tags.
//
// Usage:
//
//	DATABASE_PATH=~/ScriptureSanctuary/sanctuary.db go run ./cmd/dbinspect
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/reference"
	"github.com/scripturesanctuary/sanctuary-server/internal/store/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/ScriptureSanctuary/sanctuary.db")
	}

	st, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	titles := reference.NewFormatter(catalog.Default())

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	users, err := st.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	favoriteCount := 0
	for _, u := range users {
		fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
		fmt.Printf("  Name: %s\n", u.FullName())
		fmt.Printf("  Email: %s\n", u.Email)

		favs, err := st.ListFavoritesByUser(ctx, u.ID)
		if err != nil {
			log.Printf("Error reading favorites for %s: %v", u.ID, err)
			continue
		}
		favoriteCount += len(favs)

		for _, f := range favs {
			tags, err := st.ListTagsForFavorite(ctx, f.ID)
			if err != nil {
				log.Printf("Error reading tags for %s: %v", f.ID, err)
			}
			names := make([]string, len(tags))
			for i, t := range tags {
				names[i] = t.Name
			}
			fmt.Printf("    %s [%s]\n", titles.Title(f.Reference), strings.Join(names, ", "))
		}
		fmt.Println()
	}

	tags, err := st.ListTags(ctx)
	if err != nil {
		log.Fatalf("Failed to list tags: %v", err)
	}
	for _, t := range tags {
		favs, err := st.ListFavoritesForTag(ctx, t.ID)
		if err != nil {
			log.Printf("Error reading favorites for tag %s: %v", t.Name, err)
			continue
		}
		fmt.Printf("Tag: %s (%d favorites)\n", t.Name, len(favs))
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Total users: %d\n", len(users))
	fmt.Printf("Total favorites: %d\n", favoriteCount)
	fmt.Printf("Total tags: %d\n", len(tags))
}
