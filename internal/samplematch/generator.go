package samplematch

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/internal/domain/teams"
)

// Shape of a generated match.
const (
	minShotsPerTeam   = 4
	shotsPerTeamRange = 14
	maxShotXG         = 0.8
	minShotXG         = 0.01
	stoppageChance    = 0.35
	maxStoppage       = 6
	penaltyChance     = 0.12
	ownGoalChance     = 0.08
	redCardChance     = 0.06
	yellowCardsMax    = 5
	substitutesMax    = 5
	competition       = "Pro League A"
)

// Generator builds plausible scraped matches between palette teams.
type Generator struct {
	rng   *rand.Rand
	teams []string
	day   time.Time
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64, palette *teams.Palette) *Generator {
	if palette == nil {
		palette = teams.NewPalette()
	}
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		teams: palette.Teams(),
		day:   time.Date(2024, time.July, 26, 0, 0, 0, 0, time.UTC),
	}
}

// Generate returns n matches.
func (g *Generator) Generate(n int) []matchfile.File {
	out := make([]matchfile.File, n)
	for i := range out {
		out[i] = g.Match(i)
	}
	return out
}

// Match builds the round-th match of the season.
func (g *Generator) Match(round int) matchfile.File {
	home, away := g.pair()
	f := matchfile.File{
		MatchID:     uuid.NewString(),
		Date:        g.day.AddDate(0, 0, 7*(round%34)).Format(time.DateOnly),
		Competition: competition,
		Home:        home,
		Away:        away,
	}

	goals := map[string]int{}
	for _, team := range []string{home, away} {
		for range minShotsPerTeam + g.rng.IntN(shotsPerTeamRange) {
			shot := g.shot(team)
			f.Shots = append(f.Shots, shot)
			if shot.Outcome != "Goal" {
				continue
			}
			goals[team]++
			desc := "Goal"
			if g.rng.Float64() < penaltyChance {
				desc = "Penalty Kick"
			}
			f.Events = append(f.Events, matchfile.Event{Minute: shot.Minute, Team: team, Description: desc, Player: shot.Player})
		}
	}

	if g.rng.Float64() < ownGoalChance {
		team := g.side(home, away)
		goals[team]++
		f.Events = append(f.Events, matchfile.Event{Minute: g.minute(), Team: team, Description: "Own Goal", Player: g.player()})
	}
	if g.rng.Float64() < redCardChance {
		f.Events = append(f.Events, matchfile.Event{Minute: g.minute(), Team: g.side(home, away), Description: "Red Card", Player: g.player()})
	}
	for range g.rng.IntN(yellowCardsMax) {
		f.Events = append(f.Events, matchfile.Event{Minute: g.minute(), Team: g.side(home, away), Description: "Yellow Card", Player: g.player()})
	}
	for range g.rng.IntN(substitutesMax) {
		f.Events = append(f.Events, matchfile.Event{Minute: g.minute(), Team: g.side(home, away), Description: "Substitute", Player: g.player()})
	}

	hg, ag := goals[home], goals[away]
	f.HomeGoals, f.AwayGoals = &hg, &ag
	return f
}

func (g *Generator) pair() (string, string) {
	i := g.rng.IntN(len(g.teams))
	j := g.rng.IntN(len(g.teams) - 1)
	if j >= i {
		j++
	}
	return g.teams[i], g.teams[j]
}

func (g *Generator) side(home, away string) string {
	if g.rng.IntN(2) == 0 {
		return home
	}
	return away
}

func (g *Generator) shot(team string) matchfile.Shot {
	xg := math.Round((minShotXG+g.rng.Float64()*(maxShotXG-minShotXG))*100) / 100
	outcome := "Saved"
	switch {
	case g.rng.Float64() < xg:
		outcome = "Goal"
	case g.rng.IntN(2) == 0:
		outcome = "Off Target"
	}
	return matchfile.Shot{Minute: g.minute(), Team: team, XG: xg, Player: g.player(), Outcome: outcome}
}

// minute returns a scraped minute string, with stoppage time at the end of
// either half.
func (g *Generator) minute() string {
	base := 1 + g.rng.IntN(90)
	if (base == 45 || base == 90) && g.rng.Float64() < stoppageChance {
		return fmt.Sprintf("%d+%d", base, 1+g.rng.IntN(maxStoppage))
	}
	return strconv.Itoa(base)
}

func (g *Generator) player() string {
	return "Player " + strconv.Itoa(1+g.rng.IntN(30))
}
