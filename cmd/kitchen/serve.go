package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kitchen/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the kitchen SSH server",
	Long: `Start an SSH server that allows users to connect and cook.

Each SSH user gets their own profile: stars, unlocked recipes and album are
kept separately per user name in the shared database. Remote sessions play
without sound.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.kitchen/host_key

Examples:
  kitchen serve                           # Listen on :23234 with auto-generated key
  kitchen serve --ssh :2222               # Listen on port 2222
  kitchen serve --host-key ./my_host_key  # Use specific host key
  kitchen serve --db ./kitchen.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = s.cfg.Storage.Path
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Kitchen = s.cfg
	cfg.Catalog = s.catalog
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg, newLogger(os.Stderr, "kitchen-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting kitchen SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
