package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"botcircuit/internal/config"
	"botcircuit/internal/course"
	"botcircuit/internal/economy"
	"botcircuit/internal/save"
	"botcircuit/internal/sim"
	"botcircuit/internal/storage"
)

var (
	flagBotName   string
	flagArchetype string
	flagParts     []string
	flagLength    float64
	flagVerbose   bool
	flagWeights   string
	flagTuning    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a bot through a generated course",
	Long: `Builds a bot from the given archetype and parts, generates a course,
and lets the bot run it autonomously. One attempt energy is spent per run;
the result feeds the economy and the run archive.

Examples:
  botcircuit run --archetype speed --part sprint-servos
  botcircuit run --name rusty --archetype jumper --length 600 --verbose`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagBotName, "name", "rusty", "Bot name")
	runCmd.Flags().StringVar(&flagArchetype, "archetype", "balanced", "Bot archetype")
	runCmd.Flags().StringArrayVar(&flagParts, "part", nil, "Part ID to equip (repeatable)")
	runCmd.Flags().Float64Var(&flagLength, "length", 400, "Course length in distance units")
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print decision and collision events")
	runCmd.Flags().StringVar(&flagWeights, "weights", "", "Custom behavior weights YAML path")
	runCmd.Flags().StringVar(&flagTuning, "tuning", "", "Custom simulation tuning YAML path")
}

func runRun(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "botcircuit",
	})

	weights, err := config.LoadWeights(flagWeights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading behavior weights: %v\n", err)
		os.Exit(1)
	}
	tuning, err := config.LoadTuning(flagTuning)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
		os.Exit(1)
	}
	catalog, err := config.LoadCatalog("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading part catalog: %v\n", err)
		os.Exit(1)
	}

	store, env := openProfile(logger)
	mgr := economy.NewManager(economy.DefaultConfig(), env.Economy, logger)

	now := time.Now()
	if regenerated := mgr.Regenerate(now); regenerated > 0 {
		logger.Info("energy regenerated", "units", regenerated)
	}
	if !mgr.SpendEnergy(now) {
		st := mgr.State()
		fmt.Fprintf(os.Stderr, "No attempt energy left (%d/%d). Come back later.\n", st.Energy, st.MaxEnergy)
		os.Exit(1)
	}

	bot, err := buildBot(env, catalog, mgr.State().Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building bot: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	track := course.Generate(seed, flagLength, course.DefaultGeneratorConfig())

	session := sim.NewSession(weights, tuning)
	if flagVerbose {
		session.Events().Subscribe(printEvent)
	}

	if err := session.Start(bot, track); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%s) is running a %.0f-unit course (seed %d)...\n\n",
		bot.Name, bot.Archetype, flagLength, seed)

	dt := 1.0 / float64(flagFPS)
	// A hard tick ceiling guards against pathological tuning.
	maxTicks := flagFPS * 600
	for i := 0; i < maxTicks && session.State() == sim.StateActive; i++ {
		session.Tick(dt)
		session.FixedTick(dt)
	}
	session.Stop()

	stats := session.Statistics()
	reward := mgr.ApplyRunStatistics(stats, time.Now())
	bot.RecordRun(stats.Distance, stats.SurvivalTime)

	env.Economy = mgr.State()
	env.Bots = upsertSummary(env.Bots, bot.Summarize())
	if err := store.Save(env); err != nil {
		logger.Error("could not save profile", "error", err)
	}

	archiveRun(logger, stats)
	printRunSummary(stats, reward, mgr.State())
}

// buildBot restores the named bot from the profile when it exists, creates
// it otherwise, and equips the requested parts. Parts above the profile's
// level are rejected; cost and prerequisite checks happen at purchase time
// in the builder, not here.
func buildBot(env save.Envelope, catalog *config.Catalog, level int) (*config.BotConfiguration, error) {
	archetype, err := config.ParseArchetype(flagArchetype)
	if err != nil {
		return nil, err
	}

	var bot *config.BotConfiguration
	for _, s := range env.Bots {
		if s.Name == flagBotName && s.Archetype == archetype {
			if bot, err = config.RestoreBot(s, catalog); err != nil {
				return nil, err
			}
			break
		}
	}
	if bot == nil {
		if bot, err = config.NewBot(flagBotName, archetype); err != nil {
			return nil, err
		}
	}

	for _, id := range flagParts {
		part := catalog.Get(id)
		if part == nil {
			return nil, fmt.Errorf("unknown part %q", id)
		}
		if part.UnlockLevel > level {
			return nil, fmt.Errorf("part %q unlocks at level %d, profile is level %d", id, part.UnlockLevel, level)
		}
		if err := bot.Equip(part); err != nil {
			return nil, fmt.Errorf("equipping %q: %w", id, err)
		}
	}
	return bot, nil
}

func upsertSummary(bots []config.Summary, s config.Summary) []config.Summary {
	for i, existing := range bots {
		if existing.Name == s.Name && existing.Archetype == s.Archetype {
			bots[i] = s
			return bots
		}
	}
	return append(bots, s)
}

// openProfile opens the save store and loads the profile, falling back
// through the recovery chain if needed.
func openProfile(logger *log.Logger) (*save.Store, save.Envelope) {
	savePath := expandHome(flagSavePath)
	deviceID, err := save.DeviceID(filepath.Dir(savePath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving device identity: %v\n", err)
		os.Exit(1)
	}
	store := save.NewStore(savePath, save.NewCodec(deviceID, appVersion), logger)
	return store, store.Load()
}

func archiveRun(logger *log.Logger, stats sim.RunStatistics) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run archive", "error", err)
		return
	}
	defer db.Close()
	if _, err := db.SaveRun(stats); err != nil {
		logger.Warn("could not archive run", "error", err)
	}
}

func printEvent(e sim.Event) {
	switch ev := e.(type) {
	case sim.DecisionMade:
		fmt.Printf("  [%6.2fs] decide  %s\n", ev.Decision.ExecuteAt, ev.Decision.Rationale)
	case sim.ActionStarted:
		fmt.Printf("  [%6.2fs] action  %s\n", ev.At, ev.Action)
	case sim.ObstacleHit:
		if ev.Shielded {
			fmt.Printf("           hit     obstacle %d (shielded)\n", ev.EntityID)
		} else {
			fmt.Printf("           hit     obstacle %d for %d damage\n", ev.EntityID, ev.Damage)
		}
	case sim.CollectiblePicked:
		fmt.Printf("           pickup  collectible %d worth %d\n", ev.EntityID, ev.Value)
	case sim.PowerUpActivated:
		fmt.Printf("           powerup %s for %.1fs\n", ev.Power, ev.Duration)
	}
}

func printRunSummary(stats sim.RunStatistics, reward economy.RunReward, st economy.EconomyState) {
	outcome := "destroyed"
	if stats.Completed {
		outcome = "completed the course"
	}
	fmt.Printf("\nRun %s: %s (%s)\n", stats.RunID[:8], outcome, stats.Reason)
	fmt.Println()
	fmt.Printf("  %-16s %.1f units\n", "Distance", stats.Distance)
	fmt.Printf("  %-16s %.1fs\n", "Survival", stats.SurvivalTime)
	fmt.Printf("  %-16s %.1f units/s\n", "Average speed", stats.AverageSpeed)
	fmt.Printf("  %-16s %d jumps, %d slides, %d dashes\n", "Actions", stats.Jumps, stats.Slides, stats.Dashes)
	fmt.Printf("  %-16s %d avoided, %d hits, %d damage\n", "Obstacles", stats.Avoids, stats.Hits, stats.DamageTaken)
	fmt.Printf("  %-16s %d (%d scrap)\n", "Collectibles", stats.Collectibles, stats.ScrapCollected)
	fmt.Println()
	fmt.Printf("  %-16s +%d bolts, +%d XP", "Reward", reward.Bolts, reward.XP)
	if reward.LevelsGained > 0 {
		fmt.Printf(" (level up! now %d)", st.Level)
	}
	fmt.Println()
	for _, a := range reward.NewAchievements {
		fmt.Printf("  %-16s %s\n", "Achievement", a)
	}
	fmt.Printf("  %-16s %d bolts, %d chips, energy %d/%d\n", "Balance",
		st.Bolts, st.Chips, st.Energy, st.MaxEnergy)
}
