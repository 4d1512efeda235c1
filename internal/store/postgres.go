package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/storefront-cli/internal/model"
)

// Pool abstracts *pgxpool.Pool so tests can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS brands (
	id                UUID PRIMARY KEY,
	website_url       TEXT NOT NULL UNIQUE,
	brand_name        TEXT,
	about_brand       TEXT,
	extraction_status TEXT NOT NULL DEFAULT 'success',
	error_message     TEXT,
	extracted_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id               UUID PRIMARY KEY,
	brand_id         UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	external_id      BIGINT,
	title            TEXT NOT NULL,
	handle           TEXT,
	price            TEXT,
	compare_at_price TEXT,
	vendor           TEXT,
	product_type     TEXT,
	tags             JSONB,
	images           JSONB,
	variants         JSONB,
	available        BOOLEAN NOT NULL DEFAULT TRUE,
	description      TEXT
);

CREATE TABLE IF NOT EXISTS hero_products (
	id          UUID PRIMARY KEY,
	brand_id    UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	handle      TEXT,
	price       TEXT,
	images      JSONB,
	description TEXT
);

CREATE TABLE IF NOT EXISTS policies (
	id          UUID PRIMARY KEY,
	brand_id    UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	policy_type TEXT NOT NULL,
	title       TEXT NOT NULL,
	content     TEXT,
	url         TEXT
);

CREATE TABLE IF NOT EXISTS faqs (
	id       UUID PRIMARY KEY,
	brand_id UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS social_handles (
	id       UUID PRIMARY KEY,
	brand_id UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	platform TEXT NOT NULL,
	url      TEXT NOT NULL,
	handle   TEXT
);

CREATE TABLE IF NOT EXISTS contact_info (
	id        UUID PRIMARY KEY,
	brand_id  UUID NOT NULL UNIQUE REFERENCES brands(id) ON DELETE CASCADE,
	emails    JSONB,
	phones    JSONB,
	addresses JSONB
);

CREATE TABLE IF NOT EXISTS important_links (
	id       UUID PRIMARY KEY,
	brand_id UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	title    TEXT NOT NULL,
	url      TEXT NOT NULL,
	category TEXT
);

CREATE TABLE IF NOT EXISTS competitors (
	id                  UUID PRIMARY KEY,
	brand_id            UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	competitor_brand_id UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	discovered_via      TEXT,
	similarity_score    DOUBLE PRECISION,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(brand_id, competitor_brand_id)
);

CREATE TABLE IF NOT EXISTS competitor_jobs (
	id                UUID PRIMARY KEY,
	brand_id          UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	status            TEXT NOT NULL DEFAULT 'pending',
	competitors_found INT NOT NULL DEFAULT 0,
	error_message     TEXT,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at      TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);
CREATE INDEX IF NOT EXISTS idx_hero_products_brand_id ON hero_products(brand_id);
CREATE INDEX IF NOT EXISTS idx_competitors_brand_id ON competitors(brand_id);
CREATE INDEX IF NOT EXISTS idx_competitor_jobs_brand_id ON competitor_jobs(brand_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: begin save profile")
	}
	defer tx.Rollback(ctx)

	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM brands WHERE website_url = $1`, p.WebsiteURL,
	).Scan(&existingID)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		p.ID = uuid.New().String()
		_, err = tx.Exec(ctx,
			`INSERT INTO brands (id, website_url, brand_name, about_brand, extraction_status, error_message, extracted_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.WebsiteURL, p.BrandName, p.AboutBrand, string(p.Status), p.ErrorMessage, p.ExtractedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: insert brand")
		}
	case err != nil:
		return nil, eris.Wrap(err, "postgres: lookup brand by url")
	default:
		p.ID = existingID
		_, err = tx.Exec(ctx,
			`UPDATE brands SET brand_name = $1, about_brand = $2, extraction_status = $3, error_message = $4, extracted_at = $5 WHERE id = $6`,
			p.BrandName, p.AboutBrand, string(p.Status), p.ErrorMessage, p.ExtractedAt, p.ID,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: update brand")
		}
		for _, table := range []string{
			"products", "hero_products", "policies", "faqs",
			"social_handles", "contact_info", "important_links",
		} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE brand_id = $1`, p.ID); err != nil {
				return nil, eris.Wrapf(err, "postgres: clear %s", table)
			}
		}
	}

	if err := insertPGChildren(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, eris.Wrap(err, "postgres: commit save profile")
	}
	return p, nil
}

func insertPGChildren(ctx context.Context, tx pgx.Tx, p *model.Profile) error {
	for _, prod := range p.Catalog {
		tags, images, variants, err := marshalProductJSON(prod)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO products (id, brand_id, external_id, title, handle, price, compare_at_price, vendor, product_type, tags, images, variants, available, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			uuid.New().String(), p.ID, prod.ExternalID, prod.Title, prod.Handle, prod.Price,
			prod.CompareAtPrice, prod.Vendor, prod.ProductType, tags, images, variants,
			prod.Available, prod.Description,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert product")
		}
	}

	for _, prod := range p.HeroProducts {
		images, err := json.Marshal(prod.Images)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal hero images")
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO hero_products (id, brand_id, title, handle, price, images, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New().String(), p.ID, prod.Title, prod.Handle, prod.Price, string(images), prod.Description,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert hero product")
		}
	}

	for _, pol := range p.Policies {
		_, err := tx.Exec(ctx,
			`INSERT INTO policies (id, brand_id, policy_type, title, content, url) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), p.ID, string(pol.Type), pol.Title, pol.Content, pol.URL,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert policy")
		}
	}

	for _, faq := range p.FAQs {
		_, err := tx.Exec(ctx,
			`INSERT INTO faqs (id, brand_id, question, answer) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), p.ID, faq.Question, faq.Answer,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert faq")
		}
	}

	for _, sh := range p.SocialHandles {
		_, err := tx.Exec(ctx,
			`INSERT INTO social_handles (id, brand_id, platform, url, handle) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), p.ID, string(sh.Platform), sh.URL, sh.Handle,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert social handle")
		}
	}

	if len(p.Contact.Emails) > 0 || len(p.Contact.Phones) > 0 || len(p.Contact.Addresses) > 0 {
		emails, phones, addresses, err := marshalContactJSON(p.Contact)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO contact_info (id, brand_id, emails, phones, addresses) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), p.ID, emails, phones, addresses,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert contact info")
		}
	}

	for _, link := range p.ImportantLinks {
		_, err := tx.Exec(ctx,
			`INSERT INTO important_links (id, brand_id, title, url, category) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), p.ID, link.Title, link.URL, string(link.Category),
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert important link")
		}
	}

	return nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.scanBrand(ctx, `SELECT id, website_url, brand_name, about_brand, extraction_status, error_message, extracted_at FROM brands WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, eris.Wrapf(ErrNotFound, "postgres: profile %s", id)
	}
	if err := s.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) GetProfileByURL(ctx context.Context, websiteURL string) (*model.Profile, error) {
	p, err := s.scanBrand(ctx, `SELECT id, website_url, brand_name, about_brand, extraction_status, error_message, extracted_at FROM brands WHERE website_url = $1`, websiteURL)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) scanBrand(ctx context.Context, query string, arg any) (*model.Profile, error) {
	var p model.Profile
	var brandName, aboutBrand, errMsg *string

	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.WebsiteURL, &brandName, &aboutBrand, &p.Status, &errMsg, &p.ExtractedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan brand")
	}
	p.BrandName = deref(brandName)
	p.AboutBrand = deref(aboutBrand)
	p.ErrorMessage = deref(errMsg)
	return &p, nil
}

func (s *PostgresStore) loadChildren(ctx context.Context, p *model.Profile) error {
	var err error
	if p.Catalog, err = s.loadProducts(ctx, p.ID); err != nil {
		return err
	}
	if p.HeroProducts, err = s.loadHeroProducts(ctx, p.ID); err != nil {
		return err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT policy_type, title, content, url FROM policies WHERE brand_id = $1`, p.ID)
	if err != nil {
		return eris.Wrap(err, "postgres: load policies")
	}
	defer rows.Close()
	for rows.Next() {
		var pol model.Policy
		var content, u *string
		if err := rows.Scan(&pol.Type, &pol.Title, &content, &u); err != nil {
			return eris.Wrap(err, "postgres: scan policy")
		}
		pol.Content = deref(content)
		pol.URL = deref(u)
		p.Policies = append(p.Policies, pol)
	}
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "postgres: iterate policies")
	}

	faqRows, err := s.pool.Query(ctx,
		`SELECT question, answer FROM faqs WHERE brand_id = $1`, p.ID)
	if err != nil {
		return eris.Wrap(err, "postgres: load faqs")
	}
	defer faqRows.Close()
	for faqRows.Next() {
		var f model.FAQ
		if err := faqRows.Scan(&f.Question, &f.Answer); err != nil {
			return eris.Wrap(err, "postgres: scan faq")
		}
		p.FAQs = append(p.FAQs, f)
	}
	if err := faqRows.Err(); err != nil {
		return eris.Wrap(err, "postgres: iterate faqs")
	}

	shRows, err := s.pool.Query(ctx,
		`SELECT platform, url, handle FROM social_handles WHERE brand_id = $1`, p.ID)
	if err != nil {
		return eris.Wrap(err, "postgres: load social handles")
	}
	defer shRows.Close()
	for shRows.Next() {
		var sh model.SocialHandle
		var handle *string
		if err := shRows.Scan(&sh.Platform, &sh.URL, &handle); err != nil {
			return eris.Wrap(err, "postgres: scan social handle")
		}
		sh.Handle = deref(handle)
		p.SocialHandles = append(p.SocialHandles, sh)
	}
	if err := shRows.Err(); err != nil {
		return eris.Wrap(err, "postgres: iterate social handles")
	}

	var emails, phones, addresses *string
	err = s.pool.QueryRow(ctx,
		`SELECT emails, phones, addresses FROM contact_info WHERE brand_id = $1`, p.ID,
	).Scan(&emails, &phones, &addresses)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return eris.Wrap(err, "postgres: load contact info")
	}
	if err == nil {
		if p.Contact, err = unmarshalContactJSON(deref(emails), deref(phones), deref(addresses)); err != nil {
			return err
		}
	}

	linkRows, err := s.pool.Query(ctx,
		`SELECT title, url, category FROM important_links WHERE brand_id = $1`, p.ID)
	if err != nil {
		return eris.Wrap(err, "postgres: load important links")
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var l model.ImportantLink
		var category *string
		if err := linkRows.Scan(&l.Title, &l.URL, &category); err != nil {
			return eris.Wrap(err, "postgres: scan important link")
		}
		l.Category = model.LinkCategory(deref(category))
		p.ImportantLinks = append(p.ImportantLinks, l)
	}
	return eris.Wrap(linkRows.Err(), "postgres: iterate important links")
}

func (s *PostgresStore) loadProducts(ctx context.Context, brandID string) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT external_id, title, handle, price, compare_at_price, vendor, product_type, tags, images, variants, available, description
		 FROM products WHERE brand_id = $1`, brandID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load products")
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var prod model.Product
		var externalID *int64
		var handle, price, compareAt, vendor, productType, tags, images, variants, desc *string
		err := rows.Scan(&externalID, &prod.Title, &handle, &price, &compareAt,
			&vendor, &productType, &tags, &images, &variants, &prod.Available, &desc)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan product")
		}
		if externalID != nil {
			prod.ExternalID = *externalID
		}
		prod.Handle = deref(handle)
		prod.Price = deref(price)
		prod.CompareAtPrice = deref(compareAt)
		prod.Vendor = deref(vendor)
		prod.ProductType = deref(productType)
		prod.Description = deref(desc)
		if err := unmarshalProductJSON(&prod, deref(tags), deref(images), deref(variants)); err != nil {
			return nil, err
		}
		products = append(products, prod)
	}
	return products, eris.Wrap(rows.Err(), "postgres: iterate products")
}

func (s *PostgresStore) loadHeroProducts(ctx context.Context, brandID string) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT title, handle, price, images, description FROM hero_products WHERE brand_id = $1`, brandID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load hero products")
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var prod model.Product
		var handle, price, images, desc *string
		if err := rows.Scan(&prod.Title, &handle, &price, &images, &desc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan hero product")
		}
		prod.Handle = deref(handle)
		prod.Price = deref(price)
		prod.Description = deref(desc)
		if images != nil && *images != "" {
			if err := json.Unmarshal([]byte(*images), &prod.Images); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal hero images")
			}
		}
		products = append(products, prod)
	}
	return products, eris.Wrap(rows.Err(), "postgres: iterate hero products")
}

func (s *PostgresStore) ListProfiles(ctx context.Context) ([]model.ProfileSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT b.id, b.website_url, b.brand_name, b.extraction_status, b.extracted_at,
		        (SELECT COUNT(*) FROM products p WHERE p.brand_id = b.id)
		 FROM brands b ORDER BY b.extracted_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list profiles")
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (s *PostgresStore) AddCompetitor(ctx context.Context, profileID, competitorID, discoveredVia string) error {
	if profileID == competitorID {
		return eris.Errorf("postgres: profile %s cannot be its own competitor", profileID)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO competitors (id, brand_id, competitor_brand_id, discovered_via, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (brand_id, competitor_brand_id) DO NOTHING`,
		uuid.New().String(), profileID, competitorID, discoveredVia, time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: add competitor")
}

func (s *PostgresStore) ListCompetitors(ctx context.Context, profileID string) ([]model.ProfileSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT b.id, b.website_url, b.brand_name, b.extraction_status, b.extracted_at,
		        (SELECT COUNT(*) FROM products p WHERE p.brand_id = b.id)
		 FROM competitors c JOIN brands b ON b.id = c.competitor_brand_id
		 WHERE c.brand_id = $1 ORDER BY c.created_at`, profileID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list competitors")
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]model.ProfileSummary, error) {
	var out []model.ProfileSummary
	for rows.Next() {
		var sum model.ProfileSummary
		var brandName *string
		if err := rows.Scan(&sum.ID, &sum.WebsiteURL, &brandName, &sum.Status, &sum.ExtractedAt, &sum.ProductCount); err != nil {
			return nil, eris.Wrap(err, "postgres: scan profile summary")
		}
		sum.BrandName = deref(brandName)
		out = append(out, sum)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate summaries")
}

func (s *PostgresStore) CreateJob(ctx context.Context, profileID string) (*model.AnalysisJob, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO competitor_jobs (id, brand_id, status, created_at) VALUES ($1, $2, $3, $4)`,
		id, profileID, string(model.JobStatusPending), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert job")
	}

	return &model.AnalysisJob{
		ID:        id,
		ProfileID: profileID,
		Status:    model.JobStatusPending,
		CreatedAt: now,
	}, nil
}

func (s *PostgresStore) UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, competitorsFound int, errMsg string) error {
	var completedAt *time.Time
	if status == model.JobStatusCompleted || status == model.JobStatusFailed {
		t := time.Now().UTC()
		completedAt = &t
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE competitor_jobs SET status = $1, competitors_found = $2, error_message = $3, completed_at = $4 WHERE id = $5`,
		string(status), competitorsFound, errMsg, completedAt, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "job %s", jobID)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	var errMsg *string
	var completedAt *time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT id, brand_id, status, competitors_found, error_message, created_at, completed_at
		 FROM competitor_jobs WHERE id = $1`, jobID,
	).Scan(&job.ID, &job.ProfileID, &job.Status, &job.CompetitorsFound, &errMsg, &job.CreatedAt, &completedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: job %s", jobID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get job")
	}
	job.ErrorMessage = deref(errMsg)
	job.CompletedAt = completedAt
	return &job, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
