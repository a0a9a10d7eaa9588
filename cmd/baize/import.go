package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/league"
)

var (
	importFile    string
	importReplace bool
)

// The bundle carries dates as dd-mm-yyyy text, the way league fixture lists
// publish them; parsing happens here, not in the store.
type importBundle struct {
	Divisions []importDivision              `json:"divisions"`
	Rosters   []importRoster                `json:"rosters"`
	Results   []importResult                `json:"results"`
	Fixtures  []importFixture               `json:"fixtures"`
	Frames    []importFrameRecord           `json:"frames"`
	Stats     []league.PlayerSeasonStats    `json:"stats"`
	Priors    map[string]league.PriorRating `json:"priors"`
}

type importDivision struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	League string   `json:"league"`
	Teams  []string `json:"teams"`
}

type importRoster struct {
	Division string   `json:"division"`
	Team     string   `json:"team"`
	Players  []string `json:"players"`
}

type importResult struct {
	Division  string `json:"division"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Date      string `json:"date"`
}

type importFixture struct {
	Division string `json:"division"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Date     string `json:"date"`
}

type importFrameRecord struct {
	Division string         `json:"division"`
	HomeTeam string         `json:"home_team"`
	AwayTeam string         `json:"away_team"`
	Date     string         `json:"date"`
	Frames   []league.Frame `json:"frames"`
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a season bundle into the snapshot database",
	Long: `Import reads a JSON bundle of divisions, rosters, results, fixtures, frame
records, player statistics and prior ratings, and upserts it all. Re-importing
a corrected bundle replaces the affected rows; --replace clears the league
data first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("--file is required")
		}
		raw, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("failed to read bundle: %w", err)
		}
		var bundle importBundle
		if err := json.Unmarshal(raw, &bundle); err != nil {
			return fmt.Errorf("failed to parse bundle %s: %w", importFile, err)
		}

		if importReplace {
			if err := leagueStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear league data: %w", err)
			}
		}

		teams := 0
		for _, d := range bundle.Divisions {
			if err := leagueStore.UpsertDivision(league.DivisionInfo{Code: d.Code, Name: d.Name, League: d.League}, d.Teams); err != nil {
				return fmt.Errorf("failed to import division %s: %w", d.Code, err)
			}
			teams += len(d.Teams)
		}
		for _, r := range bundle.Rosters {
			if err := leagueStore.UpsertRoster(r.Division, r.Team, r.Players); err != nil {
				return fmt.Errorf("failed to import roster %s/%s: %w", r.Division, r.Team, err)
			}
		}
		for _, r := range bundle.Results {
			date, err := league.ParseDate(r.Date)
			if err != nil {
				return fmt.Errorf("result %s vs %s: %w", r.HomeTeam, r.AwayTeam, err)
			}
			result := league.MatchResult{
				Division:  r.Division,
				HomeTeam:  r.HomeTeam,
				AwayTeam:  r.AwayTeam,
				HomeScore: r.HomeScore,
				AwayScore: r.AwayScore,
				Date:      date,
			}
			if err := leagueStore.UpsertResult(result); err != nil {
				return fmt.Errorf("failed to import result %s vs %s: %w", r.HomeTeam, r.AwayTeam, err)
			}
		}
		for _, f := range bundle.Fixtures {
			date, err := league.ParseDate(f.Date)
			if err != nil {
				return fmt.Errorf("fixture %s vs %s: %w", f.HomeTeam, f.AwayTeam, err)
			}
			fixture := league.Fixture{Division: f.Division, HomeTeam: f.HomeTeam, AwayTeam: f.AwayTeam, Date: date}
			if err := leagueStore.UpsertFixture(fixture); err != nil {
				return fmt.Errorf("failed to import fixture %s vs %s: %w", f.HomeTeam, f.AwayTeam, err)
			}
		}
		for _, rec := range bundle.Frames {
			date, err := league.ParseDate(rec.Date)
			if err != nil {
				return fmt.Errorf("frames %s vs %s: %w", rec.HomeTeam, rec.AwayTeam, err)
			}
			record := league.FrameRecord{
				Division: rec.Division,
				HomeTeam: rec.HomeTeam,
				AwayTeam: rec.AwayTeam,
				Date:     date,
				Frames:   rec.Frames,
			}
			if err := leagueStore.UpsertFrameRecord(record); err != nil {
				return fmt.Errorf("failed to import frames %s vs %s: %w", rec.HomeTeam, rec.AwayTeam, err)
			}
		}
		if len(bundle.Stats) > 0 {
			if err := leagueStore.UpsertPlayerStats(bundle.Stats); err != nil {
				return fmt.Errorf("failed to import player statistics: %w", err)
			}
		}
		if len(bundle.Priors) > 0 {
			if err := leagueStore.UpsertPriorRatings(bundle.Priors); err != nil {
				return fmt.Errorf("failed to import prior ratings: %w", err)
			}
		}

		fmt.Printf("Imported %d divisions, %d teams, %d rosters, %d results, %d fixtures, %d frame records\n",
			len(bundle.Divisions), teams, len(bundle.Rosters), len(bundle.Results), len(bundle.Fixtures), len(bundle.Frames))
		fmt.Printf("Player statistics: %d rows, prior ratings: %d players\n", len(bundle.Stats), len(bundle.Priors))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importFile, "file", "", "path to the JSON season bundle")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "clear existing league data first")
}
