package main

import (
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhenders/baize/internal/config"
	"github.com/mhenders/baize/internal/database"
	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/store"
)

// Seeds a synthetic two-league season so every command has data to chew on
// without a real feed: five divisions of six pub teams, bridge players shared
// between divisions and between the leagues, six of ten rounds played.

const (
	teamsPerDivision = 6
	rosterSize       = 11
	playedRounds     = 6
	breakDishRate    = 0.07
)

var firstNames = []string{
	"Ana", "Bob", "Cal", "Dawn", "Eddie", "Fran", "Gus", "Holly", "Ian", "Jade",
	"Kev", "Lena", "Mick", "Nina", "Otis", "Pam", "Quinn", "Rosa", "Stan", "Tess",
}

var lastNames = []string{
	"Price", "Hill", "Carter", "Jones", "Okafor", "Novak", "Reid", "Shaw", "Patel", "Byrne",
	"Walsh", "Kaur", "Holt", "Mason", "Drake", "Flynn", "Gould", "Hartley", "Nash", "Quigley",
}

var pubNames = []string{
	"Red Lion", "Crown & Anchor", "Royal Oak", "White Hart", "Rose & Crown", "Black Horse",
	"Kings Head", "The Plough", "The Swan", "Railway Arms", "The George", "Fox & Hounds",
	"The Bell", "Queens Arms", "The Ship", "Market Tavern", "The Griffin", "Wheatsheaf",
	"Golden Lion", "The Star", "The Bull", "Old Mill", "The Vine", "Cricketers",
	"The Castle", "The Harrow", "Nags Head", "The Sun", "Hop Pole", "Three Tuns",
}

type divisionPlan struct {
	info    league.DivisionInfo
	teams   []string
	rosters map[string][]string
	// skill is the tier mean each roster's latent skill is drawn around.
	skill float64
}

type seeder struct {
	rng    *rand.Rand
	perm   []int
	nameAt int
	skills map[string]float64
}

func newSeeder(rng *rand.Rand) *seeder {
	return &seeder{
		rng:    rng,
		perm:   rng.Perm(len(firstNames) * len(lastNames)),
		skills: make(map[string]float64),
	}
}

func (s *seeder) nextName() string {
	idx := s.perm[s.nameAt]
	s.nameAt++
	return firstNames[idx%len(firstNames)] + " " + lastNames[idx/len(firstNames)]
}

// buildDivisions lays out both leagues. County runs slightly stronger than
// City at the same tier so the league calibrator has a real gap to find.
func (s *seeder) buildDivisions() []*divisionPlan {
	plans := []*divisionPlan{
		{info: league.DivisionInfo{Code: "c-prem", Name: "Premier Division", League: "City"}, skill: 0.62},
		{info: league.DivisionInfo{Code: "c-div1", Name: "Division 1", League: "City"}, skill: 0.50},
		{info: league.DivisionInfo{Code: "c-div2", Name: "Division 2", League: "City"}, skill: 0.38},
		{info: league.DivisionInfo{Code: "k-prem", Name: "Premier Division", League: "County"}, skill: 0.65},
		{info: league.DivisionInfo{Code: "k-div1", Name: "Division 1", League: "County"}, skill: 0.53},
	}
	for i, plan := range plans {
		plan.teams = pubNames[i*teamsPerDivision : (i+1)*teamsPerDivision]
		plan.rosters = make(map[string][]string, teamsPerDivision)
		for _, team := range plan.teams {
			roster := make([]string, 0, rosterSize)
			for len(roster) < rosterSize {
				name := s.nextName()
				roster = append(roster, name)
				s.skills[name] = clamp(plan.skill+s.rng.NormFloat64()*0.06, 0.2, 0.85)
			}
			plan.rosters[team] = roster
		}
	}
	return plans
}

// addBridgePlayers registers selected players in a second context so the
// calibrators have gaps to solve: adjacent divisions within each league, and
// a handful of players who turn out for both leagues. Two of the latter are
// spelled differently by the County scorekeepers.
func (s *seeder) addBridgePlayers(plans []*divisionPlan) {
	byCode := make(map[string]*divisionPlan, len(plans))
	for _, plan := range plans {
		byCode[plan.info.Code] = plan
	}

	s.crossRegister(byCode["c-prem"], byCode["c-div1"], 4, nil)
	s.crossRegister(byCode["c-div1"], byCode["c-div2"], 4, nil)
	s.crossRegister(byCode["k-prem"], byCode["k-div1"], 5, nil)

	s.crossRegister(byCode["c-prem"], byCode["k-prem"], 6, func(i int, name string) string {
		if i < 2 {
			return misspell(name)
		}
		return name
	})
}

// crossRegister appends n of one division's players to rosters in another,
// spread across its teams. rename lets the target context spell a name its
// own way.
func (s *seeder) crossRegister(from, to *divisionPlan, n int, rename func(i int, name string) string) {
	for i := 0; i < n; i++ {
		fromTeam := from.teams[i%len(from.teams)]
		toTeam := to.teams[(i+1)%len(to.teams)]
		name := from.rosters[fromTeam][i%rosterSize]
		target := name
		if rename != nil {
			target = rename(i, name)
			s.skills[target] = s.skills[name]
		}
		to.rosters[toTeam] = append(to.rosters[toTeam], target)
	}
}

// misspell drops one letter from the surname, close enough for the fuzzy
// matcher to still link the two spellings.
func misspell(name string) string {
	i := strings.LastIndex(name, " ")
	if i < 0 || len(name) < i+4 {
		return name
	}
	return name[:i+2] + name[i+3:]
}

// roundRobinRounds schedules the first half of a double round robin with the
// circle method: every team meets every other once.
func roundRobinRounds(teams []string) [][][2]string {
	n := len(teams)
	rot := make([]string, n)
	copy(rot, teams)

	rounds := make([][][2]string, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([][2]string, 0, n/2)
		for i := 0; i < n/2; i++ {
			round = append(round, [2]string{rot[i], rot[n-1-i]})
		}
		rounds = append(rounds, round)

		last := rot[n-1]
		copy(rot[2:], rot[1:n-1])
		rot[1] = last
	}
	return rounds
}

// playSeason schedules the full double round robin on consecutive Thursdays
// and plays out the first playedRounds of it frame by frame.
func (s *seeder) playSeason(plan *divisionPlan, startDate time.Time) ([]league.Fixture, []league.MatchResult, []league.FrameRecord) {
	rounds := roundRobinRounds(plan.teams)
	for _, round := range rounds {
		back := make([][2]string, 0, len(round))
		for _, m := range round {
			back = append(back, [2]string{m[1], m[0]})
		}
		rounds = append(rounds, back)
	}

	matchNo := make(map[string]int)
	var fixtures []league.Fixture
	var results []league.MatchResult
	var records []league.FrameRecord

	for r, round := range rounds {
		date := startDate.AddDate(0, 0, 7*r)
		for _, m := range round {
			home, away := m[0], m[1]
			fixtures = append(fixtures, league.Fixture{
				Division: plan.info.Code, HomeTeam: home, AwayTeam: away, Date: date,
			})
			if r >= playedRounds {
				continue
			}
			record := s.playMatch(plan, home, away, date, matchNo)
			h, a := record.Score()
			results = append(results, league.MatchResult{
				Division: plan.info.Code, HomeTeam: home, AwayTeam: away,
				HomeScore: h, AwayScore: a, Date: date,
			})
			records = append(records, record)
		}
	}
	return fixtures, results, records
}

func (s *seeder) playMatch(plan *divisionPlan, home, away string, date time.Time, matchNo map[string]int) league.FrameRecord {
	homeTen := playingTen(plan.rosters[home], matchNo[home])
	awayTen := playingTen(plan.rosters[away], matchNo[away])
	matchNo[home]++
	matchNo[away]++

	record := league.FrameRecord{Division: plan.info.Code, HomeTeam: home, AwayTeam: away, Date: date}
	for i := 0; i < league.FramesPerMatch; i++ {
		hp, ap := homeTen[i], awayTen[i]
		winner := league.AwaySide
		if s.rng.Float64() < frameProbability(s.skills[hp], s.skills[ap]) {
			winner = league.HomeSide
		}
		record.Frames = append(record.Frames, league.Frame{
			Set:        i/league.FramesPerSet + 1,
			Position:   i%league.FramesPerSet + 1,
			HomePlayer: hp,
			AwayPlayer: ap,
			Winner:     winner,
			BreakDish:  s.rng.Float64() < breakDishRate,
		})
	}
	return record
}

// playingTen rotates through the roster so everyone sits out equally often.
func playingTen(roster []string, matchNo int) []string {
	out := make([]string, league.FramesPerMatch)
	for i := range out {
		out[i] = roster[(2*matchNo+i)%len(roster)]
	}
	return out
}

func frameProbability(home, away float64) float64 {
	return clamp(0.5+(home-away)+0.04, 0.05, 0.95)
}

func accumulateStats(records []league.FrameRecord) []league.PlayerSeasonStats {
	type statKey struct{ player, team, division string }
	totals := make(map[statKey]*league.PlayerSeasonStats)
	at := func(player, team, division string) *league.PlayerSeasonStats {
		k := statKey{player, team, division}
		st, ok := totals[k]
		if !ok {
			st = &league.PlayerSeasonStats{Player: player, Team: team, Division: division}
			totals[k] = st
		}
		return st
	}

	for _, rec := range records {
		for _, f := range rec.Frames {
			hp := at(f.HomePlayer, rec.HomeTeam, rec.Division)
			ap := at(f.AwayPlayer, rec.AwayTeam, rec.Division)
			hp.Played++
			ap.Played++
			if f.Winner == league.HomeSide {
				hp.Won++
				if f.BreakDish {
					hp.BreakDishFor++
					ap.BreakDishAgainst++
				}
			} else {
				ap.Won++
				if f.BreakDish {
					ap.BreakDishFor++
					hp.BreakDishAgainst++
				}
			}
		}
	}

	out := make([]league.PlayerSeasonStats, 0, len(totals))
	for _, st := range totals {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Division != out[j].Division {
			return out[i].Division < out[j].Division
		}
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// priorRatings invents last season's aggregate rating for about 60% of the
// player base. Names iterate sorted so a fixed seed reproduces the draw.
func (s *seeder) priorRatings() map[string]league.PriorRating {
	names := make([]string, 0, len(s.skills))
	for name := range s.skills {
		names = append(names, name)
	}
	sort.Strings(names)

	priors := make(map[string]league.PriorRating)
	for _, name := range names {
		if s.rng.Float64() > 0.6 {
			continue
		}
		rating := clamp(s.skills[name]*100+s.rng.NormFloat64()*5, 20, 85)
		priors[name] = league.PriorRating{Rating: rating, Games: 6 + s.rng.Intn(25)}
	}
	return priors
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	log.Info("Starting season seeder...")
	cfg := config.Load()

	seed := int64(1)
	if raw := os.Getenv("SEEDER_SEED"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Error: SEEDER_SEED must be an integer, got %q", raw)
		}
		seed = parsed
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	startTime := time.Now()
	leagueStore := store.New(db)
	gen := newSeeder(rand.New(rand.NewSource(seed)))

	plans := gen.buildDivisions()
	gen.addBridgePlayers(plans)

	startDate := time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC)
	var fixtureCount, resultCount int
	var allRecords []league.FrameRecord

	for _, plan := range plans {
		if err := leagueStore.UpsertDivision(plan.info, plan.teams); err != nil {
			log.Fatalf("Failed to seed division %s: %s", plan.info.Code, err)
		}
		for _, team := range plan.teams {
			if err := leagueStore.UpsertRoster(plan.info.Code, team, plan.rosters[team]); err != nil {
				log.Fatalf("Failed to seed roster %s / %s: %s", plan.info.Code, team, err)
			}
		}

		fixtures, results, records := gen.playSeason(plan, startDate)
		for _, f := range fixtures {
			if err := leagueStore.UpsertFixture(f); err != nil {
				log.Fatalf("Failed to seed fixture: %s", err)
			}
		}
		for _, r := range results {
			if err := leagueStore.UpsertResult(r); err != nil {
				log.Fatalf("Failed to seed result: %s", err)
			}
		}
		for _, rec := range records {
			if err := leagueStore.UpsertFrameRecord(rec); err != nil {
				log.Fatalf("Failed to seed frame record: %s", err)
			}
		}

		fixtureCount += len(fixtures)
		resultCount += len(results)
		allRecords = append(allRecords, records...)
		log.Info("Seeded division", "division", plan.info.Code, "fixtures", len(fixtures), "results", len(results))
	}

	stats := accumulateStats(allRecords)
	if err := leagueStore.UpsertPlayerStats(stats); err != nil {
		log.Fatalf("Failed to seed player statistics: %s", err)
	}
	priors := gen.priorRatings()
	if err := leagueStore.UpsertPriorRatings(priors); err != nil {
		log.Fatalf("Failed to seed prior ratings: %s", err)
	}

	log.Info("Season seeded",
		"divisions", len(plans),
		"players", len(gen.skills),
		"fixtures", fixtureCount,
		"results", resultCount,
		"stats", len(stats),
		"priors", len(priors),
		"duration", time.Since(startTime),
	)
}
