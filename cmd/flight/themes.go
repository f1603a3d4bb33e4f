package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flight/internal/registry"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List glyph themes",
	Long:  `Shows every registered theme with its actor, ground and obstacle glyphs.`,
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

func runThemes(_ *cobra.Command, _ []string) {
	themes := registry.List()

	if len(themes) == 0 {
		fmt.Println("No themes available.")
		return
	}

	fmt.Println("Available themes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, t := range themes {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Printf("  %-*s  %-5s  %-6s  %-10s  %s\n", maxIDLen, "ID", "Actor", "Ground", "Obstacles", "Title")
	fmt.Printf("  %-*s  %-5s  %-6s  %-10s  %s\n", maxIDLen, "--", "-----", "------", "---------", "-----")

	for _, t := range themes {
		fmt.Printf("  %-*s  %-5s  %-6s  %-10s  %s\n", maxIDLen, t.ID,
			string(t.Glyphs.Actor), string(t.Glyphs.Ground), string(t.Glyphs.Obstacles), t.Title)
	}

	fmt.Println()
	fmt.Println("Run 'flight play --theme <id>' to fly with a theme.")
}
