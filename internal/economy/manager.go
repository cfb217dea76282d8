package economy

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"botcircuit/internal/sim"
)

// Config holds the progression tunables.
type Config struct {
	// XPMultiplier scales every XP grant before accumulation.
	XPMultiplier float64
	// PremiumMultiplier additionally scales XP and bolt rewards while a
	// premium entitlement is active.
	PremiumMultiplier float64
	// EnergyRegenInterval is the real-time interval per regenerated unit.
	EnergyRegenInterval time.Duration
	// LevelBoltsGrant is the per-level bolt grant scale: reaching level n
	// grants n * LevelBoltsGrant bolts.
	LevelBoltsGrant int
	// ChipCadence grants one chip every ChipCadence levels.
	ChipCadence int
	// EnergyCadence raises the energy ceiling every EnergyCadence levels.
	EnergyCadence int
}

// DefaultConfig returns the standard progression tuning.
func DefaultConfig() Config {
	return Config{
		XPMultiplier:        1.0,
		PremiumMultiplier:   2.0,
		EnergyRegenInterval: 5 * time.Minute,
		LevelBoltsGrant:     25,
		ChipCadence:         5,
		EnergyCadence:       10,
	}
}

// RunReward summarizes what one finished run granted.
type RunReward struct {
	Bolts           int
	XP              int
	LevelsGained    int
	NewAchievements []string
}

// Manager is the single owner of an EconomyState. All gameplay mutation is
// funneled through it; the mutex makes that safe for multi-threaded hosts.
type Manager struct {
	mu     sync.Mutex
	cfg    Config
	state  EconomyState
	logger *log.Logger

	// xpFraction carries the sub-point remainder of scaled XP so that
	// many small additions land on the same total as one large one.
	xpFraction float64
}

// NewManager creates a manager owning the given state.
func NewManager(cfg Config, state EconomyState, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.XPMultiplier <= 0 {
		cfg.XPMultiplier = 1.0
	}
	if cfg.PremiumMultiplier <= 0 {
		cfg.PremiumMultiplier = 1.0
	}
	if cfg.EnergyRegenInterval <= 0 {
		cfg.EnergyRegenInterval = 5 * time.Minute
	}
	return &Manager{cfg: cfg, state: state, logger: logger}
}

// State returns a copy of the current state for inspection or persistence.
func (m *Manager) State() EconomyState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Restore replaces the owned state wholesale, as after an explicit load.
func (m *Manager) Restore(state EconomyState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.clone()
	m.xpFraction = 0
	return nil
}

// Balance returns the current balance of a currency.
func (m *Manager) Balance(c Currency) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b := m.state.balance(c); b != nil {
		return *b
	}
	return 0
}

// Add credits a currency. Negative amounts are ignored.
func (m *Manager) Add(c Currency, amount int) {
	if amount <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b := m.state.balance(c); b != nil {
		*b += amount
	}
}

// Spend debits a currency. It reports false and leaves the balance
// untouched when the balance is insufficient.
func (m *Manager) Spend(c Currency, amount int) bool {
	if amount < 0 {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.state.balance(c)
	if b == nil || *b < amount {
		return false
	}
	*b -= amount
	return true
}

// AddXP accumulates scaled XP and applies level-ups against the threshold
// table. It returns the number of levels gained.
func (m *Manager) AddXP(base int, now time.Time) int {
	if base <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addXP(base, now)
}

func (m *Manager) addXP(base int, now time.Time) int {
	scaled := float64(base) * m.cfg.XPMultiplier
	if m.premiumActive(now) {
		scaled *= m.cfg.PremiumMultiplier
	}
	scaled += m.xpFraction
	whole := int(scaled)
	m.xpFraction = scaled - float64(whole)
	m.state.TotalXP += whole

	gained := 0
	for m.state.Level < MaxLevel && m.state.TotalXP >= ThresholdFor(m.state.Level+1) {
		m.state.Level++
		gained++
		m.onLevelUp(m.state.Level)
	}
	return gained
}

// onLevelUp applies the grants a newly reached level carries.
func (m *Manager) onLevelUp(level int) {
	m.state.Bolts += level * m.cfg.LevelBoltsGrant
	if m.cfg.ChipCadence > 0 && level%m.cfg.ChipCadence == 0 {
		m.state.Chips++
	}
	if m.cfg.EnergyCadence > 0 && level%m.cfg.EnergyCadence == 0 {
		m.state.MaxEnergy++
	}
	if feature, ok := featureUnlocks[level]; ok && !m.state.hasFeature(feature) {
		m.state.UnlockedFeatures = append(m.state.UnlockedFeatures, feature)
		m.logger.Info("feature unlocked", "level", level, "feature", feature)
	}
	m.logger.Info("level up", "level", level)
}

// PremiumActive reports whether a premium entitlement is active at now.
func (m *Manager) PremiumActive(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.premiumActive(now)
}

func (m *Manager) premiumActive(now time.Time) bool {
	return now.Before(m.state.PremiumUntil)
}

// GrantPremium extends the premium expiry by the given duration from now.
// A grant never shortens an expiry already further out.
func (m *Manager) GrantPremium(now time.Time, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry := now.Add(d)
	if expiry.After(m.state.PremiumUntil) {
		m.state.PremiumUntil = expiry
	}
}

// RemoveAds permanently sets the ad-removal flag.
func (m *Manager) RemoveAds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.AdsRemoved = true
}

// Regenerate converts elapsed time since the energy anchor into whole
// regeneration ticks, capped at the ceiling. The anchor advances by exactly
// the applied multiple of the interval, so partial intervals carry over.
// It returns the number of units regenerated.
func (m *Manager) Regenerate(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regenerate(now)
}

func (m *Manager) regenerate(now time.Time) int {
	if m.premiumActive(now) || m.state.Energy >= m.state.MaxEnergy {
		m.state.EnergyAnchor = now
		return 0
	}
	elapsed := now.Sub(m.state.EnergyAnchor)
	if elapsed < 0 {
		// Clock went backwards; re-anchor rather than freeze regeneration.
		m.state.EnergyAnchor = now
		return 0
	}
	ticks := int(elapsed / m.cfg.EnergyRegenInterval)
	if ticks <= 0 {
		return 0
	}
	if room := m.state.MaxEnergy - m.state.Energy; ticks > room {
		ticks = room
	}
	m.state.Energy += ticks
	m.state.EnergyAnchor = m.state.EnergyAnchor.Add(time.Duration(ticks) * m.cfg.EnergyRegenInterval)
	return ticks
}

// SpendEnergy consumes one attempt. Regeneration is applied first; an
// active premium entitlement makes attempts unlimited and spends nothing.
// It reports false when no energy is available.
func (m *Manager) SpendEnergy(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.premiumActive(now) {
		return true
	}
	m.regenerate(now)
	if m.state.Energy <= 0 {
		return false
	}
	if m.state.Energy == m.state.MaxEnergy {
		// Leaving the full state starts the regeneration clock.
		m.state.EnergyAnchor = now
	}
	m.state.Energy--
	return true
}

// ApplyRunStatistics converts one finished run into currency, XP, record
// updates and achievement checks. The session calls it exactly once per
// run, on the completion callback.
func (m *Manager) ApplyRunStatistics(rs sim.RunStatistics, now time.Time) RunReward {
	m.mu.Lock()
	defer m.mu.Unlock()

	bolts := rs.ScrapCollected + int(rs.Distance/10)
	if m.premiumActive(now) {
		bolts = int(float64(bolts) * m.cfg.PremiumMultiplier)
	}
	m.state.Bolts += bolts

	xp := int(rs.Distance) + rs.Collectibles*5
	if rs.Completed {
		xp += completionBonusXP
	}
	levels := m.addXP(xp, now)

	st := &m.state.Stats
	st.recordRun(rs.Archetype)
	st.TotalDistance += rs.Distance
	st.TotalCollectibles += rs.Collectibles
	st.TotalScrap += rs.ScrapCollected
	if rs.Distance > st.BestDistance {
		st.BestDistance = rs.Distance
	}
	if rs.SurvivalTime > st.BestSurvivalTime {
		st.BestSurvivalTime = rs.SurvivalTime
	}

	unlocked := m.checkAchievements(rs)

	m.logger.Info("run applied",
		"run", rs.RunID,
		"bolts", bolts,
		"xp", xp,
		"levels", levels)

	return RunReward{Bolts: bolts, XP: xp, LevelsGained: levels, NewAchievements: unlocked}
}

// checkAchievements evaluates the achievement conditions against the run
// and lifetime statistics and records newly satisfied ones.
func (m *Manager) checkAchievements(rs sim.RunStatistics) []string {
	type check struct {
		name string
		met  bool
	}
	st := &m.state.Stats
	checks := []check{
		{"first-run", st.TotalRuns >= 1},
		{"finisher", rs.Completed},
		{"marathon-500", rs.Distance >= 500},
		{"survivor-120", rs.SurvivalTime >= 120},
		{"magpie-100", st.TotalCollectibles >= 100},
		{"untouchable", rs.Completed && rs.Hits == 0},
		{"veteran-50", st.TotalRuns >= 50},
	}

	var unlocked []string
	for _, c := range checks {
		if c.met && !m.state.hasAchievement(c.name) {
			m.state.Achievements = append(m.state.Achievements, c.name)
			unlocked = append(unlocked, c.name)
			m.logger.Info("achievement unlocked", "achievement", c.name)
		}
	}
	return unlocked
}

const completionBonusXP = 50
