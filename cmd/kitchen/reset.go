package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
	"github.com/vovakirdan/tui-kitchen/internal/storage"
)

var (
	flagResetYes  bool
	flagResetUser string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with a fresh profile",
	Long: `Wipe the saved stars, unlocked recipes, album, achievements and the
dish log shown by 'kitchen album'.

Examples:
  kitchen reset
  kitchen reset --yes
  kitchen reset --user alice   # Reset an SSH user's profile`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().StringVar(&flagResetUser, "user", "", "SSH user whose profile to reset (default: local player)")
}

func runReset(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(s.cfg.Storage.Path)
	if err != nil {
		fail("opening profile database: %v", err)
	}
	defer store.Close()

	ns := storage.UserNamespace(flagResetUser)
	profiles := kitchen.NewProfiles(store, ns, s.catalog.Policy())
	if err := profiles.Load(); err != nil {
		fail("loading profile: %v", err)
	}
	p := profiles.Profile()

	if !flagResetYes {
		fmt.Printf("Reset profile %q with %d stars and %d dishes? [y/N] ", ns, p.TotalStars, len(p.History))
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	if err := profiles.Reset(); err != nil {
		fail("%v", err)
	}
	fmt.Println("Profile reset. Happy cooking!")
}
