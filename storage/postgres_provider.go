package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"preschool-finder/models"
	"preschool-finder/utils"
)

// PostgresProvider loads facility records from the preschool warehouse.
type PostgresProvider struct {
	db *sqlx.DB
}

// NewPostgresProvider connects to PostgreSQL, retrying the initial ping,
// creates the schema if needed and returns a ready-to-use provider.
func NewPostgresProvider(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresProvider, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	p := &PostgresProvider{db: db}
	if err := p.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return p, nil
}

func (p *PostgresProvider) Name() string { return "postgres" }

func (p *PostgresProvider) migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS preschools (
			seq            BIGSERIAL,
			id             TEXT PRIMARY KEY,
			name           TEXT             NOT NULL,
			description    TEXT             NOT NULL DEFAULT '',
			address        TEXT             NOT NULL DEFAULT '',
			city           TEXT             NOT NULL DEFAULT '',
			state          TEXT             NOT NULL DEFAULT '',
			zip_code       TEXT             NOT NULL DEFAULT '',
			county         TEXT             NOT NULL DEFAULT '',
			latitude       DOUBLE PRECISION,
			longitude      DOUBLE PRECISION,
			phone          TEXT             NOT NULL DEFAULT '',
			website        TEXT             NOT NULL DEFAULT '',
			rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count   INTEGER          NOT NULL DEFAULT 0,
			tuition        TEXT             NOT NULL DEFAULT '',
			hours          TEXT             NOT NULL DEFAULT '',
			age_range      TEXT             NOT NULL DEFAULT '',
			curriculum     TEXT             NOT NULL DEFAULT '',
			program_type   TEXT             NOT NULL DEFAULT '',
			license_number TEXT             NOT NULL DEFAULT '',
			capacity       INTEGER          NOT NULL DEFAULT 0,
			data_source    TEXT             NOT NULL DEFAULT '',
			features       TEXT[]           NOT NULL DEFAULT '{}',
			images         TEXT[]           NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS reviews (
			seq          BIGSERIAL,
			id           TEXT PRIMARY KEY,
			preschool_id TEXT             NOT NULL REFERENCES preschools(id) ON DELETE CASCADE,
			author_id    TEXT             NOT NULL DEFAULT '',
			author_name  TEXT             NOT NULL DEFAULT '',
			rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
			title        TEXT             NOT NULL DEFAULT '',
			body         TEXT             NOT NULL DEFAULT '',
			review_date  TEXT             NOT NULL DEFAULT '',
			likes        INTEGER          NOT NULL DEFAULT 0,
			dislikes     INTEGER          NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_preschools_city   ON preschools(city);
		CREATE INDEX IF NOT EXISTS idx_preschools_rating ON preschools(rating);
		CREATE INDEX IF NOT EXISTS idx_reviews_preschool ON reviews(preschool_id);
	`)
	return err
}

type facilityRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Address       string          `db:"address"`
	City          string          `db:"city"`
	State         string          `db:"state"`
	PostalCode    string          `db:"zip_code"`
	County        string          `db:"county"`
	Latitude      sql.NullFloat64 `db:"latitude"`
	Longitude     sql.NullFloat64 `db:"longitude"`
	Phone         string          `db:"phone"`
	Website       string          `db:"website"`
	Rating        float64         `db:"rating"`
	ReviewCount   int             `db:"review_count"`
	Tuition       string          `db:"tuition"`
	Hours         string          `db:"hours"`
	AgeRange      string          `db:"age_range"`
	Curriculum    string          `db:"curriculum"`
	ProgramType   string          `db:"program_type"`
	LicenseNumber string          `db:"license_number"`
	Capacity      int             `db:"capacity"`
	DataSource    string          `db:"data_source"`
	Features      pq.StringArray  `db:"features"`
	Images        pq.StringArray  `db:"images"`
}

type reviewRow struct {
	ID          string  `db:"id"`
	PreschoolID string  `db:"preschool_id"`
	AuthorID    string  `db:"author_id"`
	AuthorName  string  `db:"author_name"`
	Rating      float64 `db:"rating"`
	Title       string  `db:"title"`
	Body        string  `db:"body"`
	ReviewDate  string  `db:"review_date"`
	Likes       int     `db:"likes"`
	Dislikes    int     `db:"dislikes"`
}

const selectFacilities = `
	SELECT id, name, description, address, city, state, zip_code, county,
	       latitude, longitude, phone, website, rating, review_count, tuition,
	       hours, age_range, curriculum, program_type, license_number, capacity,
	       data_source, features, images
	FROM preschools
	ORDER BY seq`

const selectReviews = `
	SELECT id, preschool_id, author_id, author_name, rating, title, body,
	       review_date, likes, dislikes
	FROM reviews
	ORDER BY seq`

// LoadAll retrieves every stored facility with its reviews, in insertion order.
func (p *PostgresProvider) LoadAll(ctx context.Context) ([]*models.FacilityRecord, error) {
	var rows []facilityRow
	if err := p.db.SelectContext(ctx, &rows, selectFacilities); err != nil {
		return nil, fmt.Errorf("postgres: fetch preschools: %w", err)
	}

	var reviews []reviewRow
	if err := p.db.SelectContext(ctx, &reviews, selectReviews); err != nil {
		return nil, fmt.Errorf("postgres: fetch reviews: %w", err)
	}

	byPreschool := make(map[string][]models.ReviewRecord)
	for _, rv := range reviews {
		byPreschool[rv.PreschoolID] = append(byPreschool[rv.PreschoolID], models.ReviewRecord{
			ID:         rv.ID,
			AuthorID:   rv.AuthorID,
			AuthorName: rv.AuthorName,
			Rating:     rv.Rating,
			Title:      rv.Title,
			Text:       rv.Body,
			Date:       rv.ReviewDate,
			Likes:      rv.Likes,
			Dislikes:   rv.Dislikes,
		})
	}

	records := make([]*models.FacilityRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.toRecord()
		rec.Reviews = byPreschool[row.ID]
		records = append(records, rec)
	}
	return records, nil
}

func (row facilityRow) toRecord() *models.FacilityRecord {
	rec := &models.FacilityRecord{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		Address:       row.Address,
		City:          row.City,
		State:         row.State,
		PostalCode:    row.PostalCode,
		County:        row.County,
		Phone:         row.Phone,
		Website:       row.Website,
		Rating:        row.Rating,
		ReviewCount:   row.ReviewCount,
		Tuition:       row.Tuition,
		Hours:         row.Hours,
		AgeRange:      row.AgeRange,
		Curriculum:    row.Curriculum,
		ProgramType:   row.ProgramType,
		LicenseNumber: row.LicenseNumber,
		Capacity:      row.Capacity,
		DataSource:    row.DataSource,
		Features:      []string(row.Features),
		Images:        []string(row.Images),
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		lat, lon := row.Latitude.Float64, row.Longitude.Float64
		rec.Latitude, rec.Longitude = &lat, &lon
	}
	return rec
}

const importBatchSize = 50

// Import replaces the stored data set with records, in a single transaction.
func (p *PostgresProvider) Import(ctx context.Context, records []*models.FacilityRecord) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM preschools"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	facilities := make([]facilityRow, 0, len(records))
	var reviews []reviewRow
	for _, r := range records {
		facilities = append(facilities, rowFromRecord(r))
		for _, rv := range r.Reviews {
			reviews = append(reviews, reviewRow{
				ID:          rv.ID,
				PreschoolID: r.ID,
				AuthorID:    rv.AuthorID,
				AuthorName:  rv.AuthorName,
				Rating:      rv.Rating,
				Title:       rv.Title,
				Body:        rv.Text,
				ReviewDate:  rv.Date,
				Likes:       rv.Likes,
				Dislikes:    rv.Dislikes,
			})
		}
	}

	for i := 0; i < len(facilities); i += importBatchSize {
		end := min(i+importBatchSize, len(facilities))
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO preschools (id, name, description, address, city, state, zip_code,
				county, latitude, longitude, phone, website, rating, review_count, tuition,
				hours, age_range, curriculum, program_type, license_number, capacity,
				data_source, features, images)
			VALUES (:id, :name, :description, :address, :city, :state, :zip_code,
				:county, :latitude, :longitude, :phone, :website, :rating, :review_count, :tuition,
				:hours, :age_range, :curriculum, :program_type, :license_number, :capacity,
				:data_source, :features, :images)`, facilities[i:end]); err != nil {
			return fmt.Errorf("postgres: insert preschools: %w", err)
		}
	}

	for i := 0; i < len(reviews); i += importBatchSize {
		end := min(i+importBatchSize, len(reviews))
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO reviews (id, preschool_id, author_id, author_name, rating, title,
				body, review_date, likes, dislikes)
			VALUES (:id, :preschool_id, :author_id, :author_name, :rating, :title,
				:body, :review_date, :likes, :dislikes)`, reviews[i:end]); err != nil {
			return fmt.Errorf("postgres: insert reviews: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func rowFromRecord(r *models.FacilityRecord) facilityRow {
	row := facilityRow{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		County:        r.County,
		Phone:         r.Phone,
		Website:       r.Website,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Tuition:       r.Tuition,
		Hours:         r.Hours,
		AgeRange:      r.AgeRange,
		Curriculum:    r.Curriculum,
		ProgramType:   r.ProgramType,
		LicenseNumber: r.LicenseNumber,
		Capacity:      r.Capacity,
		DataSource:    r.DataSource,
		Features:      nonNil(r.Features),
		Images:        nonNil(r.Images),
	}
	if c, ok := r.Coordinates(); ok {
		row.Latitude = sql.NullFloat64{Float64: c.Latitude, Valid: true}
		row.Longitude = sql.NullFloat64{Float64: c.Longitude, Valid: true}
	}
	return row
}

// nonNil keeps empty lists from being stored as NULL.
func nonNil(list []string) pq.StringArray {
	if list == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(list)
}

func (p *PostgresProvider) Close() error {
	return p.db.Close()
}
