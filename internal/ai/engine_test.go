package ai

import (
	"testing"

	"botcircuit/internal/config"
	"botcircuit/internal/course"
)

func testBot() BotState {
	return BotState{
		Distance:        0,
		Speed:           8,
		Grounded:        true,
		DashReady:       true,
		CollectibleBias: 1.0,
		RiskTolerance:   0.5,
	}
}

func obstacleAt(id int64, dist float64, hint course.ActionHint) course.Scanned {
	return course.Scanned{
		Entity: &course.Entity{
			ID: id, Kind: course.KindObstacle, Hint: hint,
			Severity: 2.0, BaseDamage: 20, Active: true,
		},
		Distance: dist,
	}
}

func collectibleAt(id int64, dist, offset float64, value int) course.Scanned {
	return course.Scanned{
		Entity: &course.Entity{
			ID: id, Kind: course.KindCollectible,
			Value: value, VerticalOffset: offset, Active: true,
		},
		Distance: dist,
	}
}

func TestCriticalObstacleEmitsAvoidance(t *testing.T) {
	e := NewEngine(config.DefaultWeights())
	bot := testBot()
	bot.Speed = 10

	// Obstacle 1.5 units ahead at speed 10: time-to-impact 0.15s, well
	// below the 1.5s critical threshold. Must not be a continue.
	d := e.Evaluate(0, bot, []course.Scanned{obstacleAt(1, 1.5, course.HintJump)})
	if d == nil {
		t.Fatal("Evaluate() emitted nothing for a critical obstacle")
	}
	if !d.Avoidance {
		t.Errorf("decision is not an avoidance: %s", d)
	}
	if d.Action == ActionContinue {
		t.Errorf("critical obstacle produced a continue decision: %s", d)
	}
	if d.Action != ActionJump {
		t.Errorf("grounded bot should jump a jump-hinted obstacle, got %s", d.Action)
	}
}

func TestAvoidanceBeforeCollectionRegardlessOfInsertionOrder(t *testing.T) {
	weights := config.DefaultWeights()
	bot := testBot()
	bot.Speed = 4

	scanAvoid := []course.Scanned{obstacleAt(1, 1, course.HintJump)}
	scanCollect := []course.Scanned{collectibleAt(2, 2, 0, 50)}

	// Collection queued first, avoidance second.
	e := NewEngine(weights)
	if d := e.Evaluate(0, bot, scanCollect); d == nil || !d.Collect {
		t.Fatalf("expected collection decision, got %v", d)
	}
	if d := e.Evaluate(0, bot, scanAvoid); d == nil || !d.Avoidance {
		t.Fatalf("expected avoidance decision, got %v", d)
	}
	if n := e.Pending(); n != 2 {
		t.Fatalf("Pending() = %d, want 2", n)
	}
	first := e.Next(10)
	if first == nil || !first.Avoidance {
		t.Errorf("avoidance was not popped first (collect queued first): %v", first)
	}
	if n := e.Pending(); n != 1 {
		t.Errorf("Pending() after pop = %d, want 1", n)
	}

	// Avoidance queued first, collection second.
	e = NewEngine(weights)
	if d := e.Evaluate(0, bot, scanAvoid); d == nil || !d.Avoidance {
		t.Fatalf("expected avoidance decision, got %v", d)
	}
	e.DecisionCompleted() // Force re-evaluation
	if d := e.Evaluate(0, bot, scanCollect); d == nil || !d.Collect {
		t.Fatalf("expected collection decision, got %v", d)
	}
	first = e.Next(10)
	if first == nil || !first.Avoidance {
		t.Errorf("avoidance was not popped first (avoid queued first): %v", first)
	}
}

func TestNeverExecutesBeforeScheduledTime(t *testing.T) {
	e := NewEngine(config.DefaultWeights())
	e.Push(&Decision{Action: ActionJump, ExecuteAt: 5.0, Priority: 10})

	if d := e.Next(4.9); d != nil {
		t.Errorf("Next(4.9) returned decision scheduled for 5.0: %s", d)
	}
	if d := e.Next(5.0); d == nil {
		t.Error("Next(5.0) did not return due decision")
	}
}

func TestDowngradeJumpToSlideWhenAirborne(t *testing.T) {
	e := NewEngine(config.DefaultWeights())
	bot := testBot()
	bot.Grounded = false

	d := e.Evaluate(0, bot, []course.Scanned{obstacleAt(1, 1, course.HintJump)})
	if d == nil {
		t.Fatal("no decision emitted")
	}
	if d.Action != ActionSlide {
		t.Errorf("airborne jump-avoidance = %s, want slide", d.Action)
	}
}

func TestDowngradeDashToJumpOnCooldown(t *testing.T) {
	e := NewEngine(config.DefaultWeights())
	bot := testBot()
	bot.DashReady = false

	d := e.Evaluate(0, bot, []course.Scanned{obstacleAt(1, 1, course.HintDash)})
	if d == nil {
		t.Fatal("no decision emitted")
	}
	if d.Action != ActionJump {
		t.Errorf("dash-avoidance on cooldown = %s, want jump", d.Action)
	}
}

func TestCollectionSkippedWhenObstacleInsideSafetyMargin(t *testing.T) {
	e := NewEngine(config.DefaultWeights())
	bot := testBot()
	bot.Speed = 4

	// Obstacle at 8 units is not critical at speed 4 (tti 2.0s), but it
	// sits within the collectible's safety margin (7 + 1.5).
	scan := []course.Scanned{
		obstacleAt(1, 8, course.HintJump),
		collectibleAt(2, 7, 0, 50),
	}
	d := e.Evaluate(0, bot, scan)
	if d != nil && d.Collect {
		t.Errorf("collection emitted with obstacle inside safety margin: %s", d)
	}
}

func TestCollectionActionByVerticalOffset(t *testing.T) {
	cases := []struct {
		offset float64
		want   Action
	}{
		{1.5, ActionJump},
		{-0.5, ActionSlide},
		{0.0, ActionContinue},
	}
	for _, tc := range cases {
		e := NewEngine(config.DefaultWeights())
		d := e.Evaluate(0, testBot(), []course.Scanned{collectibleAt(1, 5, tc.offset, 50)})
		if d == nil || !d.Collect {
			t.Fatalf("offset %v: expected collection decision, got %v", tc.offset, d)
		}
		if d.Action != tc.want {
			t.Errorf("offset %v: action = %s, want %s", tc.offset, d.Action, tc.want)
		}
	}
}

func TestClearCourseEmitsContinue(t *testing.T) {
	e := NewEngine(config.DefaultWeights())
	d := e.Evaluate(0, testBot(), nil)
	if d == nil {
		t.Fatal("no decision emitted on clear course")
	}
	if d.Action != ActionContinue || d.Avoidance || d.Collect {
		t.Errorf("clear course decision = %s", d)
	}
	if d.Priority >= 10 {
		t.Errorf("continue priority should be low, got %v", d.Priority)
	}
}

func TestReactionIntervalGatesReEvaluation(t *testing.T) {
	w := config.DefaultWeights()
	e := NewEngine(w)
	bot := testBot()

	if d := e.Evaluate(0, bot, nil); d == nil {
		t.Fatal("first evaluation emitted nothing")
	}
	// Queue drained; decision still notionally active, interval not elapsed.
	e.Next(0)
	if d := e.Evaluate(w.MaxReactionTime/2, bot, nil); d != nil {
		t.Errorf("re-evaluated before reaction interval elapsed: %s", d)
	}
	if d := e.Evaluate(w.MaxReactionTime+0.01, bot, nil); d == nil {
		t.Error("did not re-evaluate after reaction interval elapsed")
	}
}

func TestCloseObstacleForcesReEvaluation(t *testing.T) {
	w := config.DefaultWeights()
	e := NewEngine(w)
	bot := testBot()

	if d := e.Evaluate(0, bot, nil); d == nil {
		t.Fatal("first evaluation emitted nothing")
	}
	e.Next(0)

	// Interval not elapsed, but obstacle within the minimum threat distance.
	d := e.Evaluate(0.1, bot, []course.Scanned{obstacleAt(1, 1.0, course.HintSlide)})
	if d == nil || !d.Avoidance {
		t.Errorf("close obstacle did not force re-evaluation: %v", d)
	}
}
