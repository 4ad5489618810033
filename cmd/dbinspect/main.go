// Package main prints the wardrobe collections persisted in a data directory.
//
// Usage:
//
//	go run ./cmd/dbinspect -data-path ~/Wardrobe/data
//	go run ./cmd/dbinspect -data-path ./data -storage sqlite -raw
package main

import (
	"context"
	"encoding/json/v2"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/wardrobeapp/wardrobe-server/internal/config"
	"github.com/wardrobeapp/wardrobe-server/internal/di/providers"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

func main() {
	home, _ := os.UserHomeDir()
	dataPath := flag.String("data-path", filepath.Join(home, "Wardrobe", "data"), "Directory holding the wardrobe database")
	backend := flag.String("storage", config.BackendBadger, "Storage backend (badger, sqlite)")
	raw := flag.Bool("raw", false, "Print the stored JSON instead of a summary")
	flag.Parse()

	db, path, err := providers.OpenBlobStore(strings.ToLower(*backend), *dataPath, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	keys, err := db.Keys(ctx)
	if err != nil {
		log.Fatalf("Failed to list keys: %v", err)
	}

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Path: %s\n", path)
	fmt.Printf("Keys: %s\n", strings.Join(keys, ", "))
	fmt.Println()

	itemsBlob := read(ctx, db, store.KeyItems)
	plansBlob := read(ctx, db, store.KeyPlans)

	if *raw {
		fmt.Printf("%s:\n%s\n\n%s:\n%s\n", store.KeyItems, itemsBlob, store.KeyPlans, plansBlob)
		return
	}

	var items []domain.ClothingItem
	if len(itemsBlob) > 0 {
		if err := json.Unmarshal(itemsBlob, &items); err != nil {
			log.Printf("Items blob is malformed: %v", err)
		}
	}

	var plans []domain.OutfitPlan
	if len(plansBlob) > 0 {
		if err := json.Unmarshal(plansBlob, &plans); err != nil {
			log.Printf("Plans blob is malformed: %v", err)
		}
	}

	names := make(map[string]string, len(items))
	byCategory := make(map[domain.Category]int)
	for _, item := range items {
		names[item.ID] = item.Name
		byCategory[item.Category]++
	}

	fmt.Printf("=== Items (%d) ===\n", len(items))
	for _, item := range items {
		fmt.Printf("  %-12s %-28s %-12s %s\n", item.ID, item.Name, item.Category, strings.Join(item.Tags, ", "))
	}
	fmt.Println()

	fmt.Printf("=== Plans (%d) ===\n", len(plans))
	for _, plan := range plans {
		outfit := make([]string, 0, len(plan.Items))
		for _, itemID := range plan.Items {
			name, ok := names[itemID]
			if !ok {
				name = itemID + " (missing)"
			}
			outfit = append(outfit, name)
		}
		fmt.Printf("  %s  %s\n", plan.Date.Format(domain.DateLayout), strings.Join(outfit, " + "))
		if plan.Notes != "" {
			fmt.Printf("              %s\n", plan.Notes)
		}
	}
	fmt.Println()

	fmt.Println("=== Summary ===")
	for _, c := range domain.Categories() {
		fmt.Printf("%-12s %d\n", c, byCategory[c])
		delete(byCategory, c)
	}
	for c, n := range byCategory {
		fmt.Printf("%-12s %d (unrecognized)\n", c, n)
	}
}

func read(ctx context.Context, db store.Blobs, key string) []byte {
	data, err := db.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Fatalf("Failed to read %s: %v", key, err)
	}
	return data
}
