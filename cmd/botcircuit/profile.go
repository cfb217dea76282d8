package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"botcircuit/internal/economy"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the player profile and economy state",
	Long:  `Displays currency balances, level, energy, entitlements and lifetime statistics.`,
	Run:   runProfile,
}

func runProfile(cmd *cobra.Command, args []string) {
	logger := log.New(io.Discard)
	store, env := openProfile(logger)

	// Apply any offline regeneration before displaying, and persist it so
	// the anchor does not drift on repeated views.
	mgr := economy.NewManager(economy.DefaultConfig(), env.Economy, logger)
	if mgr.Regenerate(time.Now()) > 0 {
		env.Economy = mgr.State()
		if err := store.Save(env); err != nil {
			fmt.Printf("(warning: could not persist regenerated energy: %v)\n", err)
		}
	}
	st := mgr.State()

	fmt.Println("Player profile:")
	fmt.Println()
	fmt.Printf("  %-14s %d (%d XP", "Level", st.Level, st.TotalXP)
	if st.Level < economy.MaxLevel {
		fmt.Printf(", next at %d", economy.ThresholdFor(st.Level+1))
	}
	fmt.Println(")")
	fmt.Printf("  %-14s %d bolts, %d chips, %d tokens\n", "Balances", st.Bolts, st.Chips, st.Tokens)
	fmt.Printf("  %-14s %d/%d\n", "Energy", st.Energy, st.MaxEnergy)

	if mgr.PremiumActive(time.Now()) {
		fmt.Printf("  %-14s active until %s\n", "Premium", st.PremiumUntil.Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("  %-14s inactive\n", "Premium")
	}

	fmt.Println()
	fmt.Printf("  %-14s %d runs, %.1f units total\n", "Lifetime", st.Stats.TotalRuns, st.Stats.TotalDistance)
	fmt.Printf("  %-14s %.1f units, %.1fs survival\n", "Best", st.Stats.BestDistance, st.Stats.BestSurvivalTime)
	fmt.Printf("  %-14s %d collectibles, %d scrap\n", "Gathered", st.Stats.TotalCollectibles, st.Stats.TotalScrap)

	if len(st.UnlockedFeatures) > 0 {
		fmt.Println()
		fmt.Println("  Unlocked features:")
		for _, f := range st.UnlockedFeatures {
			fmt.Printf("    - %s\n", f)
		}
	}
	if len(st.Achievements) > 0 {
		fmt.Println()
		fmt.Println("  Achievements:")
		for _, a := range st.Achievements {
			fmt.Printf("    - %s\n", a)
		}
	}

	if len(env.Bots) > 0 {
		fmt.Println()
		fmt.Println("  Bots:")
		for _, b := range env.Bots {
			fmt.Printf("    %-12s %-10s level %-3d best %.1f units over %d runs\n",
				b.Name, b.Archetype, b.Level, b.BestDistance, b.TotalRuns)
		}
	}
}
