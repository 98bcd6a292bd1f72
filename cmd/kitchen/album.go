package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kitchen/internal/storage"
)

var (
	flagAlbumLimit int
	flagAlbumUser  string
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Show recently cooked dishes",
	Long: `Display the most recent dishes from the dish log, newest first, with a
per-recipe summary.

Examples:
  kitchen album
  kitchen album --limit 5
  kitchen album --user alice   # Dishes cooked over SSH by alice`,
	Run: runAlbum,
}

func init() {
	albumCmd.Flags().IntVar(&flagAlbumLimit, "limit", 10, "Number of dishes to show")
	albumCmd.Flags().StringVar(&flagAlbumUser, "user", "", "SSH user whose album to show (default: local player)")
}

func runAlbum(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(s.cfg.Storage.Path)
	if err != nil {
		fail("opening profile database: %v", err)
	}
	defer store.Close()

	ns := storage.UserNamespace(flagAlbumUser)
	dishes, err := store.RecentDishes(ns, flagAlbumLimit)
	if err != nil {
		fail("retrieving dishes: %v", err)
	}

	fmt.Println("Album")
	fmt.Println()

	if len(dishes) == 0 {
		fmt.Println("No dishes cooked yet.")
		fmt.Println()
		fmt.Println("Run 'kitchen play' to cook your first dish!")
		return
	}

	name := func(id string) string {
		if r, ok := s.catalog.Recipe(id); ok {
			return r.Name
		}
		return id
	}

	fmt.Printf("  %-16s  %-14s  %-6s  %-8s  %5s\n", "When", "Dish", "Stars", "Verdict", "Score")
	fmt.Printf("  %-16s  %-14s  %-6s  %-8s  %5s\n", "----", "----", "-----", "-------", "-----")
	for _, d := range dishes {
		fmt.Printf("  %-16s  %-14s  %-6s  %-8s  %5d\n",
			humanize.Time(d.CreatedAt), name(d.RecipeID), starString(d.Stars), d.Reaction, d.Score)
	}

	stats, err := store.AllRecipeStats(ns)
	if err != nil || len(stats) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("By recipe:")
	for _, r := range s.catalog.Recipes() {
		st, ok := stats[r.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s  %s cooked, best %d, avg %.0f, last %s\n",
			r.Name, humanize.Comma(int64(st.Dishes)), st.BestScore, st.AvgScore, humanize.Time(st.LastCooked))
	}
}

func starString(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}
