package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/praxislabs/compass/internal/domain/model"
)

// Postgres connection defaults.
const (
	defaultSchema       = "coaching"
	defaultConnLifetime = 30 * time.Minute
	defaultMaxOpenConns = 8
)

// PostgresOption applies a configuration option to the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithSchema sets the schema holding the coaching tables.
func WithSchema(schema string) PostgresOption {
	return func(p *PostgresStore) {
		if schema != "" {
			p.schema = schema
		}
	}
}

// WithMaxOpenConns bounds the connection pool.
func WithMaxOpenConns(n int) PostgresOption {
	return func(p *PostgresStore) {
		if n > 0 {
			p.maxOpenConns = n
		}
	}
}

// PostgresStore reads the six record sets from Postgres via the pgx
// database/sql driver.
type PostgresStore struct {
	db           *sql.DB
	schema       string
	maxOpenConns int
}

// NewPostgresStore opens a connection pool against the given URL.
func NewPostgresStore(url string, opts ...PostgresOption) (*PostgresStore, error) {
	p := &PostgresStore{
		schema:       defaultSchema,
		maxOpenConns: defaultMaxOpenConns,
	}
	for _, opt := range opts {
		opt(p)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	db.SetMaxOpenConns(p.maxOpenConns)
	db.SetConnMaxLifetime(defaultConnLifetime)
	p.db = db
	return p, nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Ping verifies connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return nil
}

// People reads the roster.
func (p *PostgresStore) People(ctx context.Context) ([]model.Person, error) {
	q := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, program, cohort, status, department
		FROM %s.people
		ORDER BY id`, p.schema)
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: people: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.Person
	for rows.Next() {
		var rec model.Person
		var first, last, email, program, cohort, status, dept sql.NullString
		if err := rows.Scan(&rec.ID, &first, &last, &email, &program, &cohort, &status, &dept); err != nil {
			return nil, fmt.Errorf("%w: people: %w", ErrQuery, err)
		}
		rec.FirstName = first.String
		rec.LastName = last.String
		rec.Email = email.String
		rec.Program = program.String
		rec.Cohort = cohort.String
		rec.Status = status.String
		rec.Department = dept.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: people: %w", ErrQuery, err)
	}
	return out, nil
}

// Sessions reads the coaching-session facts.
func (p *PostgresStore) Sessions(ctx context.Context) ([]model.Session, error) {
	q := fmt.Sprintf(`
		SELECT id, employee_name, person_id, email, session_date, status,
		       duration_minutes, notes, program_name, program_code, cohort
		FROM %s.sessions
		ORDER BY session_date`, p.schema)
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: sessions: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		var rec model.Session
		var name, personID, email, status, notes, progName, progCode, cohort sql.NullString
		var date sql.NullTime
		var duration sql.NullInt64
		if err := rows.Scan(&rec.ID, &name, &personID, &email, &date, &status,
			&duration, &notes, &progName, &progCode, &cohort); err != nil {
			return nil, fmt.Errorf("%w: sessions: %w", ErrQuery, err)
		}
		rec.EmployeeName = name.String
		rec.PersonID = personID.String
		rec.Email = email.String
		rec.Date = date.Time
		rec.Status = status.String
		rec.DurationMinutes = int(duration.Int64)
		rec.Notes = notes.String
		rec.ProgramName = progName.String
		rec.ProgramCode = progCode.String
		rec.Cohort = cohort.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sessions: %w", ErrQuery, err)
	}
	return out, nil
}

// Scores reads the pre/post competency measurements.
func (p *PostgresStore) Scores(ctx context.Context) ([]model.CompetencyScore, error) {
	q := fmt.Sprintf(`
		SELECT email, program, competency, pre_score, post_score, feedback, wins
		FROM %s.competency_scores`, p.schema)
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: scores: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.CompetencyScore
	for rows.Next() {
		var rec model.CompetencyScore
		var email, program, comp, feedback, wins sql.NullString
		var pre, post sql.NullFloat64
		if err := rows.Scan(&email, &program, &comp, &pre, &post, &feedback, &wins); err != nil {
			return nil, fmt.Errorf("%w: scores: %w", ErrQuery, err)
		}
		rec.Email = email.String
		rec.Program = program.String
		rec.Competency = comp.String
		rec.Pre = pre.Float64 // NULL coerces to 0: "not assessed"
		rec.Post = post.Float64
		rec.Feedback = feedback.String
		rec.Wins = wins.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scores: %w", ErrQuery, err)
	}
	return out, nil
}

// Surveys reads the exit-survey responses. NULL scores stay nil so absence
// remains distinguishable from an answered zero.
func (p *PostgresStore) Surveys(ctx context.Context) ([]model.SurveyResponse, error) {
	q := fmt.Sprintf(`
		SELECT email, nps, satisfaction, feedback
		FROM %s.survey_responses`, p.schema)
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: surveys: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.SurveyResponse
	for rows.Next() {
		var rec model.SurveyResponse
		var email, feedback sql.NullString
		var nps, sat sql.NullFloat64
		if err := rows.Scan(&email, &nps, &sat, &feedback); err != nil {
			return nil, fmt.Errorf("%w: surveys: %w", ErrQuery, err)
		}
		rec.Email = email.String
		rec.Feedback = feedback.String
		if nps.Valid {
			v := nps.Float64
			rec.NPS = &v
		}
		if sat.Valid {
			v := sat.Float64
			rec.Satisfaction = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: surveys: %w", ErrQuery, err)
	}
	return out, nil
}

// Baselines reads the onboarding survey entries.
func (p *PostgresStore) Baselines(ctx context.Context) ([]model.BaselineEntry, error) {
	q := fmt.Sprintf(`
		SELECT company, role, years_experience, stress, energy, engagement,
		       competencies, focus_areas
		FROM %s.baseline_entries`, p.schema)
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: baselines: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.BaselineEntry
	for rows.Next() {
		var rec model.BaselineEntry
		var company, role, years sql.NullString
		var stress, energy, engagement sql.NullFloat64
		var comps, focus []byte
		if err := rows.Scan(&company, &role, &years, &stress, &energy, &engagement, &comps, &focus); err != nil {
			return nil, fmt.Errorf("%w: baselines: %w", ErrQuery, err)
		}
		rec.Company = company.String
		rec.Role = role.String
		rec.YearsExperience = years.String
		rec.Stress = stress.Float64
		rec.Energy = energy.Float64
		rec.Engagement = engagement.Float64
		rec.Competencies = decodeFloatMap(comps)
		rec.FocusAreas = decodeBoolMap(focus)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: baselines: %w", ErrQuery, err)
	}
	return out, nil
}

// Configs reads the per-account program configuration.
func (p *PostgresStore) Configs(ctx context.Context) ([]model.ProgramConfig, error) {
	q := fmt.Sprintf(`
		SELECT account, sessions_per_person, program_type, start_date, end_date, notes
		FROM %s.program_configs`, p.schema)
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: configs: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.ProgramConfig
	for rows.Next() {
		var rec model.ProgramConfig
		var account, progType, notes sql.NullString
		var sessions sql.NullInt64
		var start, end sql.NullTime
		if err := rows.Scan(&account, &sessions, &progType, &start, &end, &notes); err != nil {
			return nil, fmt.Errorf("%w: configs: %w", ErrQuery, err)
		}
		rec.Account = account.String
		rec.SessionsPerPerson = int(sessions.Int64)
		rec.ProgramType = progType.String
		rec.Notes = notes.String
		if start.Valid {
			t := start.Time
			rec.StartDate = &t
		}
		if end.Valid {
			t := end.Time
			rec.EndDate = &t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: configs: %w", ErrQuery, err)
	}
	return out, nil
}

// InitSchema creates the schema and tables when they do not exist.
func (p *PostgresStore) InitSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, p.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.people (
				id text PRIMARY KEY,
				first_name text,
				last_name text,
				email text,
				program text,
				cohort text,
				status text,
				department text
			)`, p.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.sessions (
				id text PRIMARY KEY,
				employee_name text,
				person_id text,
				email text,
				session_date timestamptz,
				status text,
				duration_minutes integer,
				notes text,
				program_name text,
				program_code text,
				cohort text
			)`, p.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.competency_scores (
				id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
				email text,
				program text,
				competency text,
				pre_score numeric(5,2),
				post_score numeric(5,2),
				feedback text,
				wins text
			)`, p.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.survey_responses (
				id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
				email text,
				nps numeric(4,1),
				satisfaction numeric(4,1),
				feedback text
			)`, p.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.baseline_entries (
				id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
				company text,
				role text,
				years_experience text,
				stress numeric(4,1),
				energy numeric(4,1),
				engagement numeric(4,1),
				competencies jsonb,
				focus_areas jsonb
			)`, p.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.program_configs (
				account text PRIMARY KEY,
				sessions_per_person integer,
				program_type text,
				start_date date,
				end_date date,
				notes text
			)`, p.schema),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_sessions_date_idx ON %s.sessions (session_date)`, p.schema, p.schema),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_sessions_program_idx ON %s.sessions (program_name)`, p.schema, p.schema),
	}
	for _, stmt := range stmts {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: init schema: %w", ErrQuery, err)
		}
	}
	return nil
}

// Seed inserts a small demo data set when the people table is empty.
func (p *PostgresStore) Seed(ctx context.Context) error {
	var count int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s.people`, p.schema)
	if err := p.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return fmt.Errorf("%w: seed: %w", ErrQuery, err)
	}
	if count > 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: seed: %w", ErrQuery, err)
	}
	defer tx.Rollback() //nolint:errcheck

	people := fmt.Sprintf(`
		INSERT INTO %s.people (id, first_name, last_name, email, program, cohort)
		VALUES ($1, $2, $3, $4, $5, $6)`, p.schema)
	for _, row := range demoPeople() {
		if _, err := tx.ExecContext(ctx, people, row.ID, row.FirstName, row.LastName, row.Email, row.Program, row.Cohort); err != nil {
			return fmt.Errorf("%w: seed people: %w", ErrQuery, err)
		}
	}

	sessions := fmt.Sprintf(`
		INSERT INTO %s.sessions (id, employee_name, person_id, session_date, status, program_name)
		VALUES ($1, $2, $3, $4, $5, $6)`, p.schema)
	for _, row := range demoSessions() {
		id := row.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, sessions, id, row.EmployeeName, row.PersonID, row.Date, row.Status, row.ProgramName); err != nil {
			return fmt.Errorf("%w: seed sessions: %w", ErrQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: seed: %w", ErrQuery, err)
	}
	return nil
}
