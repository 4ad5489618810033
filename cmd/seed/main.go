// Package main seeds a data directory with a demo wardrobe.
//
// The demo covers every occasion rule of the suggestion engine and plans
// outfits for the current week.
//
// Usage:
//
//	go run ./cmd/seed -data-path ~/Wardrobe/data
//	go run ./cmd/seed -data-path ./data -storage sqlite -reset
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/config"
	"github.com/wardrobeapp/wardrobe-server/internal/di/providers"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/normalize"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

type demoItem struct {
	name     string
	category domain.Category
	tags     []string
}

var demoWardrobe = []demoItem{
	{"White oxford shirt", domain.CategoryTop, []string{"office", "white", "spring"}},
	{"Navy wool trousers", domain.CategoryBottom, []string{"office", "blue", "autumn", "winter"}},
	{"Charcoal blazer", domain.CategoryOuterwear, []string{"office", "gray", "autumn"}},
	{"Graphic tee", domain.CategoryTop, []string{"street", "black", "summer"}},
	{"Relaxed jeans", domain.CategoryBottom, []string{"street", "blue", "spring", "autumn"}},
	{"Canvas sneakers", domain.CategoryShoes, []string{"street", "sport", "white", "summer"}},
	{"Sequin slip dress", domain.CategoryDress, []string{"party", "purple"}},
	{"Strappy heels", domain.CategoryShoes, []string{"party", "black"}},
	{"Linen shorts", domain.CategoryBottom, []string{"outing", "beige", "summer"}},
	{"Straw hat", domain.CategoryAccessories, []string{"outing", "beige", "summer"}},
	{"Cable knit sweater", domain.CategoryTop, []string{"winter", "red"}},
	{"Puffer jacket", domain.CategoryOuterwear, []string{"winter", "black"}},
	{"Silk scarf", domain.CategoryAccessories, []string{"Xuân", "Hồng"}},
}

func main() {
	home, _ := os.UserHomeDir()
	dataPath := flag.String("data-path", filepath.Join(home, "Wardrobe", "data"), "Directory holding the wardrobe database")
	backend := flag.String("storage", config.BackendBadger, "Storage backend (badger, sqlite)")
	reset := flag.Bool("reset", false, "Replace any existing wardrobe instead of adding to it")
	flag.Parse()

	db, path, err := providers.OpenBlobStore(strings.ToLower(*backend), *dataPath, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Seeding wardrobe at: %s\n", path)

	ctx := context.Background()

	plans := store.NewPlanStore(db, time.Local, nil)
	items := store.NewItemStore(db, plans, nil)
	if err := plans.Load(ctx); err != nil {
		log.Fatalf("Failed to load plans: %v", err)
	}
	if err := items.Load(ctx); err != nil {
		log.Fatalf("Failed to load items: %v", err)
	}

	if *reset {
		if err := plans.Replace(ctx, nil); err != nil {
			log.Fatalf("Failed to clear plans: %v", err)
		}
		if err := items.Replace(ctx, nil); err != nil {
			log.Fatalf("Failed to clear items: %v", err)
		}
		fmt.Println("Existing wardrobe cleared")
	}

	// The server rebuilds its search index on startup when the counts differ.
	wardrobe := service.NewWardrobeService(items, nil, nil, nil)
	planner := service.NewPlannerService(plans, items, nil, nil)

	byCategory := make(map[domain.Category][]string)
	for _, demo := range demoWardrobe {
		item, err := wardrobe.AddItem(ctx, service.AddItemRequest{
			Name:     demo.name,
			Image:    "https://images.example.com/wardrobe/" + normalize.Slug(demo.name) + ".jpg",
			Category: string(demo.category),
			Tags:     demo.tags,
		})
		if err != nil {
			log.Fatalf("Failed to add %q: %v", demo.name, err)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item.ID)
		fmt.Printf("  + %-22s %s\n", item.Name, strings.Join(item.Tags, ", "))
	}

	// Plan a top, a bottom and shoes for each weekday of this week.
	monday := domain.StartOfWeek(time.Now(), time.Local)
	planned := 0
	for offset := range 5 {
		date := monday.AddDate(0, 0, offset)
		outfit := []string{
			pick(byCategory[domain.CategoryTop]),
			pick(byCategory[domain.CategoryBottom]),
			pick(byCategory[domain.CategoryShoes]),
		}
		plan, err := planner.SavePlan(ctx, service.SavePlanRequest{
			Date:    date,
			ItemIDs: outfit,
			Notes:   "Seeded " + date.Weekday().String() + " outfit",
		})
		if err != nil {
			log.Printf("Failed to plan %s: %v", date.Format(domain.DateLayout), err)
			continue
		}
		planned++
		fmt.Printf("  %s planned with %d items\n", date.Format(domain.DateLayout), len(plan.Items))
	}

	fmt.Printf("\nDone: %d items, %d plans\n", items.Len(), planned)
}

func pick(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[rand.IntN(len(ids))]
}
