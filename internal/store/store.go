package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mhenders/baize/internal/league"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertDivision(division league.DivisionInfo, teams []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO divisions (code, name, league) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			league = excluded.league;
	`, division.Code, division.Name, division.League)
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, team := range teams {
		if _, err = tx.Exec(`INSERT OR IGNORE INTO teams (division, name) VALUES (?, ?)`, division.Code, team); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *store) UpsertRoster(division, team string, players []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO rosters (division, team, player) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, player := range players {
		if _, err = stmt.Exec(division, team, player); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// UpsertResult inserts a completed match. Corrections replace the score
// wholesale: a result with the same teams and date overwrites the old one.
func (s *store) UpsertResult(result league.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO results (division, home_team, away_team, home_score, away_score, match_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(division, home_team, away_team, match_date) DO UPDATE SET
			home_score = excluded.home_score,
			away_score = excluded.away_score;
	`, result.Division, result.HomeTeam, result.AwayTeam, result.HomeScore, result.AwayScore, league.FormatDate(result.Date))
	return err
}

func (s *store) UpsertFixture(fixture league.Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO fixtures (division, home_team, away_team, match_date)
		VALUES (?, ?, ?, ?)
	`, fixture.Division, fixture.HomeTeam, fixture.AwayTeam, league.FormatDate(fixture.Date))
	return err
}

func (s *store) UpsertFrameRecord(record league.FrameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO frames (division, home_team, away_team, match_date, set_no, position, home_player, away_player, winner, break_dish)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(division, home_team, away_team, match_date, set_no, position) DO UPDATE SET
			home_player = excluded.home_player,
			away_player = excluded.away_player,
			winner = excluded.winner,
			break_dish = excluded.break_dish;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	date := league.FormatDate(record.Date)
	for _, f := range record.Frames {
		_, err = stmt.Exec(record.Division, record.HomeTeam, record.AwayTeam, date,
			f.Set, f.Position, f.HomePlayer, f.AwayPlayer, string(f.Winner), f.BreakDish)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// UpsertPlayerStats stores season aggregates. They arrive whole, so the
// upsert replaces counts rather than accumulating them.
func (s *store) UpsertPlayerStats(stats []league.PlayerSeasonStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO player_stats (player, team, division, played, won, bd_for, bd_against, forfeits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player, team, division) DO UPDATE SET
			played = excluded.played,
			won = excluded.won,
			bd_for = excluded.bd_for,
			bd_against = excluded.bd_against,
			forfeits = excluded.forfeits;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, st := range stats {
		_, err = stmt.Exec(st.Player, st.Team, st.Division, st.Played, st.Won, st.BreakDishFor, st.BreakDishAgainst, st.Forfeits)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *store) UpsertPriorRatings(priors map[string]league.PriorRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO prior_ratings (player, rating, games) VALUES (?, ?, ?)
		ON CONFLICT(player) DO UPDATE SET
			rating = excluded.rating,
			games = excluded.games;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for player, prior := range priors {
		if _, err = stmt.Exec(player, prior.Rating, prior.Games); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the whole league back into the in-memory bundle the
// engine consumes.
func (s *store) LoadSnapshot() (*league.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &league.Snapshot{
		Teams:   make(map[string][]string),
		Rosters: make(map[string][]string),
		Priors:  make(map[string]league.PriorRating),
	}

	if err := s.loadDivisions(snap); err != nil {
		return nil, err
	}
	if err := s.loadTeams(snap); err != nil {
		return nil, err
	}
	if err := s.loadRosters(snap); err != nil {
		return nil, err
	}
	if err := s.loadResults(snap); err != nil {
		return nil, err
	}
	if err := s.loadFixtures(snap); err != nil {
		return nil, err
	}
	if err := s.loadFrames(snap); err != nil {
		return nil, err
	}
	if err := s.loadStats(snap); err != nil {
		return nil, err
	}
	if err := s.loadPriors(snap); err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *store) loadDivisions(snap *league.Snapshot) error {
	rows, err := s.db.Query(`SELECT code, name, league FROM divisions ORDER BY code`)
	if err != nil {
		return fmt.Errorf("failed to query divisions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d league.DivisionInfo
		if err := rows.Scan(&d.Code, &d.Name, &d.League); err != nil {
			return fmt.Errorf("failed to scan division row: %w", err)
		}
		snap.Divisions = append(snap.Divisions, d)
	}
	return rows.Err()
}

func (s *store) loadTeams(snap *league.Snapshot) error {
	rows, err := s.db.Query(`SELECT division, name FROM teams ORDER BY division, name`)
	if err != nil {
		return fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var division, name string
		if err := rows.Scan(&division, &name); err != nil {
			return fmt.Errorf("failed to scan team row: %w", err)
		}
		snap.Teams[division] = append(snap.Teams[division], name)
	}
	return rows.Err()
}

func (s *store) loadRosters(snap *league.Snapshot) error {
	rows, err := s.db.Query(`SELECT division, team, player FROM rosters ORDER BY division, team, player`)
	if err != nil {
		return fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var division, team, player string
		if err := rows.Scan(&division, &team, &player); err != nil {
			return fmt.Errorf("failed to scan roster row: %w", err)
		}
		key := league.RosterKey(division, team)
		snap.Rosters[key] = append(snap.Rosters[key], player)
	}
	return rows.Err()
}

func (s *store) loadResults(snap *league.Snapshot) error {
	rows, err := s.db.Query(`
		SELECT division, home_team, away_team, home_score, away_score, match_date
		FROM results ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r league.MatchResult
		var date string
		if err := rows.Scan(&r.Division, &r.HomeTeam, &r.AwayTeam, &r.HomeScore, &r.AwayScore, &date); err != nil {
			return fmt.Errorf("failed to scan result row: %w", err)
		}
		r.Date, err = league.ParseDate(date)
		if err != nil {
			log.Error("Skipping result with unparseable date", "date", date, "error", err)
			continue
		}
		snap.Results = append(snap.Results, r)
	}
	return rows.Err()
}

func (s *store) loadFixtures(snap *league.Snapshot) error {
	rows, err := s.db.Query(`
		SELECT division, home_team, away_team, match_date
		FROM fixtures ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to query fixtures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f league.Fixture
		var date string
		if err := rows.Scan(&f.Division, &f.HomeTeam, &f.AwayTeam, &date); err != nil {
			return fmt.Errorf("failed to scan fixture row: %w", err)
		}
		f.Date, err = league.ParseDate(date)
		if err != nil {
			log.Error("Skipping fixture with unparseable date", "date", date, "error", err)
			continue
		}
		snap.Fixtures = append(snap.Fixtures, f)
	}
	return rows.Err()
}

func (s *store) loadFrames(snap *league.Snapshot) error {
	rows, err := s.db.Query(`
		SELECT division, home_team, away_team, match_date, set_no, position, home_player, away_player, winner, break_dish
		FROM frames ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to query frames: %w", err)
	}
	defer rows.Close()

	// Rows regroup into one record per match.
	index := make(map[string]int)
	for rows.Next() {
		var division, home, away, date, winner string
		var f league.Frame
		if err := rows.Scan(&division, &home, &away, &date, &f.Set, &f.Position, &f.HomePlayer, &f.AwayPlayer, &winner, &f.BreakDish); err != nil {
			return fmt.Errorf("failed to scan frame row: %w", err)
		}
		f.Winner = league.Side(winner)

		key := division + "|" + home + "|" + away + "|" + date
		i, ok := index[key]
		if !ok {
			parsed, err := league.ParseDate(date)
			if err != nil {
				log.Error("Skipping frame with unparseable date", "date", date, "error", err)
				continue
			}
			snap.Frames = append(snap.Frames, league.FrameRecord{
				Division: division, HomeTeam: home, AwayTeam: away, Date: parsed,
			})
			i = len(snap.Frames) - 1
			index[key] = i
		}
		snap.Frames[i].Frames = append(snap.Frames[i].Frames, f)
	}
	return rows.Err()
}

func (s *store) loadStats(snap *league.Snapshot) error {
	rows, err := s.db.Query(`
		SELECT player, team, division, played, won, bd_for, bd_against, forfeits
		FROM player_stats ORDER BY division, team, player
	`)
	if err != nil {
		return fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st league.PlayerSeasonStats
		if err := rows.Scan(&st.Player, &st.Team, &st.Division, &st.Played, &st.Won, &st.BreakDishFor, &st.BreakDishAgainst, &st.Forfeits); err != nil {
			return fmt.Errorf("failed to scan player stats row: %w", err)
		}
		snap.Stats = append(snap.Stats, st)
	}
	return rows.Err()
}

func (s *store) loadPriors(snap *league.Snapshot) error {
	rows, err := s.db.Query(`SELECT player, rating, games FROM prior_ratings`)
	if err != nil {
		return fmt.Errorf("failed to query prior ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var player string
		var prior league.PriorRating
		if err := rows.Scan(&player, &prior.Rating, &prior.Games); err != nil {
			return fmt.Errorf("failed to scan prior rating row: %w", err)
		}
		snap.Priors[player] = prior
	}
	return rows.Err()
}

// SaveSimReport persists a season projection. A missing ID gets a fresh
// UUID and a zero CreatedAt gets the current time, both written back to the
// report.
func (s *store) SaveSimReport(report *SimReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	payload, err := msgpack.Marshal(report.Projections)
	if err != nil {
		return fmt.Errorf("failed to encode report payload: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sim_reports (id, division, created_at, payload) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			division = excluded.division,
			created_at = excluded.created_at,
			payload = excluded.payload;
	`, report.ID, report.Division, report.CreatedAt.Unix(), payload)
	return err
}

// LatestSimReport returns the most recent report for a division, or for any
// division when the argument is empty. No report is (nil, nil), not an error.
func (s *store) LatestSimReport(division string) (*SimReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, division, created_at, payload FROM sim_reports`
	args := []any{}
	if division != "" {
		query += ` WHERE division = ?`
		args = append(args, division)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT 1`

	var report SimReport
	var createdAt int64
	var payload []byte
	err := s.db.QueryRow(query, args...).Scan(&report.ID, &report.Division, &createdAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sim report: %w", err)
	}

	report.CreatedAt = time.Unix(createdAt, 0)
	if err := msgpack.Unmarshal(payload, &report.Projections); err != nil {
		return nil, fmt.Errorf("failed to decode report payload: %w", err)
	}
	return &report, nil
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, table := range []string{
		"sim_reports", "prior_ratings", "player_stats", "frames",
		"fixtures", "results", "rosters", "teams", "divisions",
	} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}
