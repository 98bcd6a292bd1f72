package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
	"github.com/vovakirdan/tui-kitchen/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recipes",
	Long: `Shows every recipe in the catalog with its steps, the stars needed to
unlock it and, when a profile exists, your best rating.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	var profile *kitchen.Profile
	if store, err := storage.Open(s.cfg.Storage.Path); err == nil {
		profiles := kitchen.NewProfiles(store, storage.DefaultNamespace, s.catalog.Policy())
		if profiles.Load() == nil {
			p := profiles.Profile()
			profile = &p
		}
		store.Close()
	}

	recipes := s.catalog.Recipes()
	maxIDLen := 2 // "ID" header
	for _, r := range recipes {
		maxIDLen = max(maxIDLen, len(r.ID))
	}

	fmt.Println("Recipes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-14s  %5s  %6s  %s\n", maxIDLen, "ID", "Name", "Steps", "Unlock", "Best")
	fmt.Printf("  %-*s  %-14s  %5s  %6s  %s\n", maxIDLen, "--", "----", "-----", "------", "----")

	for _, r := range recipes {
		best := "-"
		if profile != nil {
			switch {
			case !profile.IsUnlocked(r.ID):
				best = "locked"
			case profile.Best(r.ID) > 0:
				best = fmt.Sprintf("%d★", profile.Best(r.ID))
			}
		}
		fmt.Printf("  %-*s  %-14s  %5d  %5d★  %s\n", maxIDLen, r.ID, r.Name, len(r.Steps), r.UnlockStars, best)
	}

	fmt.Println()
	if s.catalogPath != "" {
		fmt.Printf("Loaded from %s\n", s.catalogPath)
	}
	fmt.Println("Run 'kitchen play <id>' to cook a recipe.")
}
