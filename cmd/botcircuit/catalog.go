package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"botcircuit/internal/config"
)

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List selectable bot archetypes",
	Long:  `Shows every archetype with its base stats before part modifiers.`,
	Run:   runArchetypes,
}

func runArchetypes(cmd *cobra.Command, args []string) {
	fmt.Println("Available archetypes:")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-7s  %-6s  %-6s  %-9s  %s\n",
		"Archetype", "Speed", "Health", "Jump", "Dash", "Cooldown", "Collect bias")
	fmt.Printf("  %-10s  %-6s  %-7s  %-6s  %-6s  %-9s  %s\n",
		"---------", "-----", "------", "----", "----", "--------", "------------")

	for _, a := range config.Archetypes {
		s := a.Stats()
		fmt.Printf("  %-10s  %-6.1f  %-7d  %-6.1f  %-6.1f  %-9.1f  %.1f\n",
			a, s.BaseSpeed, s.MaxHealth, s.JumpImpulse, s.DashImpulse, s.DashCooldown, s.CollectibleBias)
	}

	fmt.Println()
	fmt.Println("Run 'botcircuit run --archetype <name>' to send one out.")
}

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "List the equippable part catalog",
	Long:  `Shows every part with its slot, rarity and unlock requirements.`,
	Run:   runParts,
}

func runParts(cmd *cobra.Command, args []string) {
	catalog, err := config.LoadCatalog("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading part catalog: %v\n", err)
		os.Exit(1)
	}

	parts := catalog.All()
	if len(parts) == 0 {
		fmt.Println("No parts in the catalog.")
		return
	}

	fmt.Println("Part catalog:")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-9s  %-6s  %s\n", "ID", "Slot", "Rarity", "Level", "Cost")
	fmt.Printf("  %-16s  %-8s  %-9s  %-6s  %s\n", "--", "----", "------", "-----", "----")

	for _, p := range parts {
		fmt.Printf("  %-16s  %-8s  %-9s  %-6d  %d\n", p.ID, p.Slot, p.Rarity, p.UnlockLevel, p.UnlockCost)
	}

	fmt.Println()
	fmt.Println("Run 'botcircuit run --part <id>' to equip a part for a run.")
}
