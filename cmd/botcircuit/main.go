// botcircuit runs autonomous lane-runner bots through procedurally
// generated courses and tracks their progression.
//
// Usage:
//
//	botcircuit run --archetype speed     - Run a bot through a course
//	botcircuit archetypes                - List bot archetypes
//	botcircuit parts                     - List the part catalog
//	botcircuit profile                   - Show the player profile
//	botcircuit history [bot]             - Show archived runs
//
// Global flags:
//
//	--fps <rate>    - Simulation tick rate (default: 60)
//	--seed <value>  - Course RNG seed for reproducible runs
//	--save <path>   - Profile save path (default: ~/.botcircuit/profile.sav)
//	--db <path>     - Run archive path (default: ~/.botcircuit/runs.db)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// appVersion participates in the save cipher key; bumping it invalidates
// existing saves on purpose.
const appVersion = "1.0.0"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagSavePath string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "botcircuit",
	Short: "Bot Circuit - autonomous lane-runner bot simulator",
	Long: `Bot Circuit simulates autonomous bots running procedurally generated
obstacle courses. Bots decide for themselves when to jump, slide and dash;
you build them, watch them run, and spend the scrap they bring home.

Available commands:
  run         - Run a bot through a generated course
  archetypes  - List selectable bot archetypes
  parts       - List the equippable part catalog
  profile     - Show the player profile and economy state
  history     - Show archived runs

Examples:
  botcircuit run --archetype speed --part sprint-servos
  botcircuit run --archetype tank --seed 42 --verbose
  botcircuit history rusty`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Simulation tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Course RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", "~/.botcircuit/profile.sav", "Path to the profile save file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.botcircuit/runs.db", "Path to the run archive database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(archetypesCmd)
	rootCmd.AddCommand(partsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(historyCmd)
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
