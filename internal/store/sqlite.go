package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/storefront-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS brands (
	id                TEXT PRIMARY KEY,
	website_url       TEXT NOT NULL UNIQUE,
	brand_name        TEXT,
	about_brand       TEXT,
	extraction_status TEXT NOT NULL DEFAULT 'success',
	error_message     TEXT,
	extracted_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS products (
	id               TEXT PRIMARY KEY,
	brand_id         TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	external_id      INTEGER,
	title            TEXT NOT NULL,
	handle           TEXT,
	price            TEXT,
	compare_at_price TEXT,
	vendor           TEXT,
	product_type     TEXT,
	tags             TEXT,
	images           TEXT,
	variants         TEXT,
	available        INTEGER NOT NULL DEFAULT 1,
	description      TEXT
);

CREATE TABLE IF NOT EXISTS hero_products (
	id          TEXT PRIMARY KEY,
	brand_id    TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	handle      TEXT,
	price       TEXT,
	images      TEXT,
	description TEXT
);

CREATE TABLE IF NOT EXISTS policies (
	id          TEXT PRIMARY KEY,
	brand_id    TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	policy_type TEXT NOT NULL,
	title       TEXT NOT NULL,
	content     TEXT,
	url         TEXT
);

CREATE TABLE IF NOT EXISTS faqs (
	id       TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS social_handles (
	id       TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	platform TEXT NOT NULL,
	url      TEXT NOT NULL,
	handle   TEXT
);

CREATE TABLE IF NOT EXISTS contact_info (
	id        TEXT PRIMARY KEY,
	brand_id  TEXT NOT NULL UNIQUE REFERENCES brands(id) ON DELETE CASCADE,
	emails    TEXT,
	phones    TEXT,
	addresses TEXT
);

CREATE TABLE IF NOT EXISTS important_links (
	id       TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	title    TEXT NOT NULL,
	url      TEXT NOT NULL,
	category TEXT
);

CREATE TABLE IF NOT EXISTS competitors (
	id                  TEXT PRIMARY KEY,
	brand_id            TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	competitor_brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	discovered_via      TEXT,
	similarity_score    REAL,
	created_at          DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE(brand_id, competitor_brand_id)
);

CREATE TABLE IF NOT EXISTS competitor_jobs (
	id                TEXT PRIMARY KEY,
	brand_id          TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	status            TEXT NOT NULL DEFAULT 'pending',
	competitors_found INTEGER NOT NULL DEFAULT 0,
	error_message     TEXT,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at      DATETIME
);

CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);
CREATE INDEX IF NOT EXISTS idx_hero_products_brand_id ON hero_products(brand_id);
CREATE INDEX IF NOT EXISTS idx_competitors_brand_id ON competitors(brand_id);
CREATE INDEX IF NOT EXISTS idx_competitor_jobs_brand_id ON competitor_jobs(brand_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin save profile")
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM brands WHERE website_url = ?`, p.WebsiteURL,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		p.ID = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO brands (id, website_url, brand_name, about_brand, extraction_status, error_message, extracted_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.WebsiteURL, p.BrandName, p.AboutBrand, string(p.Status), p.ErrorMessage, p.ExtractedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: insert brand")
		}
	case err != nil:
		return nil, eris.Wrap(err, "sqlite: lookup brand by url")
	default:
		p.ID = existingID
		_, err = tx.ExecContext(ctx,
			`UPDATE brands SET brand_name = ?, about_brand = ?, extraction_status = ?, error_message = ?, extracted_at = ? WHERE id = ?`,
			p.BrandName, p.AboutBrand, string(p.Status), p.ErrorMessage, p.ExtractedAt, p.ID,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: update brand")
		}
		for _, table := range []string{
			"products", "hero_products", "policies", "faqs",
			"social_handles", "contact_info", "important_links",
		} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE brand_id = ?`, p.ID); err != nil {
				return nil, eris.Wrapf(err, "sqlite: clear %s", table)
			}
		}
	}

	if err := insertChildren(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit save profile")
	}
	return p, nil
}

// execer covers both *sql.Tx and *sql.DB for the child-row inserts.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertChildren(ctx context.Context, tx execer, p *model.Profile) error {
	for _, prod := range p.Catalog {
		tags, images, variants, err := marshalProductJSON(prod)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO products (id, brand_id, external_id, title, handle, price, compare_at_price, vendor, product_type, tags, images, variants, available, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), p.ID, prod.ExternalID, prod.Title, prod.Handle, prod.Price,
			prod.CompareAtPrice, prod.Vendor, prod.ProductType, tags, images, variants,
			prod.Available, prod.Description,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert product")
		}
	}

	for _, prod := range p.HeroProducts {
		images, err := json.Marshal(prod.Images)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal hero images")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO hero_products (id, brand_id, title, handle, price, images, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), p.ID, prod.Title, prod.Handle, prod.Price, string(images), prod.Description,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert hero product")
		}
	}

	for _, pol := range p.Policies {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO policies (id, brand_id, policy_type, title, content, url) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), p.ID, string(pol.Type), pol.Title, pol.Content, pol.URL,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert policy")
		}
	}

	for _, faq := range p.FAQs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO faqs (id, brand_id, question, answer) VALUES (?, ?, ?, ?)`,
			uuid.New().String(), p.ID, faq.Question, faq.Answer,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert faq")
		}
	}

	for _, sh := range p.SocialHandles {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO social_handles (id, brand_id, platform, url, handle) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), p.ID, string(sh.Platform), sh.URL, sh.Handle,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert social handle")
		}
	}

	if len(p.Contact.Emails) > 0 || len(p.Contact.Phones) > 0 || len(p.Contact.Addresses) > 0 {
		emails, phones, addresses, err := marshalContactJSON(p.Contact)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO contact_info (id, brand_id, emails, phones, addresses) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), p.ID, emails, phones, addresses,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert contact info")
		}
	}

	for _, link := range p.ImportantLinks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO important_links (id, brand_id, title, url, category) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), p.ID, link.Title, link.URL, string(link.Category),
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert important link")
		}
	}

	return nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.scanBrand(ctx, `SELECT id, website_url, brand_name, about_brand, extraction_status, error_message, extracted_at FROM brands WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: profile %s", id)
	}
	if err := s.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStore) GetProfileByURL(ctx context.Context, websiteURL string) (*model.Profile, error) {
	p, err := s.scanBrand(ctx, `SELECT id, website_url, brand_name, about_brand, extraction_status, error_message, extracted_at FROM brands WHERE website_url = ?`, websiteURL)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStore) scanBrand(ctx context.Context, query string, arg any) (*model.Profile, error) {
	var p model.Profile
	var brandName, aboutBrand, errMsg sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.WebsiteURL, &brandName, &aboutBrand, &p.Status, &errMsg, &p.ExtractedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan brand")
	}
	p.BrandName = brandName.String
	p.AboutBrand = aboutBrand.String
	p.ErrorMessage = errMsg.String
	return &p, nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, p *model.Profile) error {
	var err error
	if p.Catalog, err = s.loadProducts(ctx, p.ID); err != nil {
		return err
	}
	if p.HeroProducts, err = s.loadHeroProducts(ctx, p.ID); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT policy_type, title, content, url FROM policies WHERE brand_id = ?`, p.ID)
	if err != nil {
		return eris.Wrap(err, "sqlite: load policies")
	}
	defer rows.Close()
	for rows.Next() {
		var pol model.Policy
		var content, u sql.NullString
		if err := rows.Scan(&pol.Type, &pol.Title, &content, &u); err != nil {
			return eris.Wrap(err, "sqlite: scan policy")
		}
		pol.Content = content.String
		pol.URL = u.String
		p.Policies = append(p.Policies, pol)
	}
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: iterate policies")
	}

	faqRows, err := s.db.QueryContext(ctx,
		`SELECT question, answer FROM faqs WHERE brand_id = ?`, p.ID)
	if err != nil {
		return eris.Wrap(err, "sqlite: load faqs")
	}
	defer faqRows.Close()
	for faqRows.Next() {
		var f model.FAQ
		if err := faqRows.Scan(&f.Question, &f.Answer); err != nil {
			return eris.Wrap(err, "sqlite: scan faq")
		}
		p.FAQs = append(p.FAQs, f)
	}
	if err := faqRows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: iterate faqs")
	}

	shRows, err := s.db.QueryContext(ctx,
		`SELECT platform, url, handle FROM social_handles WHERE brand_id = ?`, p.ID)
	if err != nil {
		return eris.Wrap(err, "sqlite: load social handles")
	}
	defer shRows.Close()
	for shRows.Next() {
		var sh model.SocialHandle
		var handle sql.NullString
		if err := shRows.Scan(&sh.Platform, &sh.URL, &handle); err != nil {
			return eris.Wrap(err, "sqlite: scan social handle")
		}
		sh.Handle = handle.String
		p.SocialHandles = append(p.SocialHandles, sh)
	}
	if err := shRows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: iterate social handles")
	}

	var emails, phones, addresses sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT emails, phones, addresses FROM contact_info WHERE brand_id = ?`, p.ID,
	).Scan(&emails, &phones, &addresses)
	if err != nil && err != sql.ErrNoRows {
		return eris.Wrap(err, "sqlite: load contact info")
	}
	if err == nil {
		if p.Contact, err = unmarshalContactJSON(emails.String, phones.String, addresses.String); err != nil {
			return err
		}
	}

	linkRows, err := s.db.QueryContext(ctx,
		`SELECT title, url, category FROM important_links WHERE brand_id = ?`, p.ID)
	if err != nil {
		return eris.Wrap(err, "sqlite: load important links")
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var l model.ImportantLink
		var category sql.NullString
		if err := linkRows.Scan(&l.Title, &l.URL, &category); err != nil {
			return eris.Wrap(err, "sqlite: scan important link")
		}
		l.Category = model.LinkCategory(category.String)
		p.ImportantLinks = append(p.ImportantLinks, l)
	}
	return eris.Wrap(linkRows.Err(), "sqlite: iterate important links")
}

func (s *SQLiteStore) loadProducts(ctx context.Context, brandID string) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT external_id, title, handle, price, compare_at_price, vendor, product_type, tags, images, variants, available, description
		 FROM products WHERE brand_id = ?`, brandID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load products")
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var prod model.Product
		var externalID sql.NullInt64
		var handle, price, compareAt, vendor, productType, tags, images, variants, desc sql.NullString
		err := rows.Scan(&externalID, &prod.Title, &handle, &price, &compareAt,
			&vendor, &productType, &tags, &images, &variants, &prod.Available, &desc)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan product")
		}
		prod.ExternalID = externalID.Int64
		prod.Handle = handle.String
		prod.Price = price.String
		prod.CompareAtPrice = compareAt.String
		prod.Vendor = vendor.String
		prod.ProductType = productType.String
		prod.Description = desc.String
		if err := unmarshalProductJSON(&prod, tags.String, images.String, variants.String); err != nil {
			return nil, err
		}
		products = append(products, prod)
	}
	return products, eris.Wrap(rows.Err(), "sqlite: iterate products")
}

func (s *SQLiteStore) loadHeroProducts(ctx context.Context, brandID string) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, handle, price, images, description FROM hero_products WHERE brand_id = ?`, brandID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load hero products")
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var prod model.Product
		var handle, price, images, desc sql.NullString
		if err := rows.Scan(&prod.Title, &handle, &price, &images, &desc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan hero product")
		}
		prod.Handle = handle.String
		prod.Price = price.String
		prod.Description = desc.String
		if images.String != "" {
			if err := json.Unmarshal([]byte(images.String), &prod.Images); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal hero images")
			}
		}
		products = append(products, prod)
	}
	return products, eris.Wrap(rows.Err(), "sqlite: iterate hero products")
}

func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]model.ProfileSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.website_url, b.brand_name, b.extraction_status, b.extracted_at,
		        (SELECT COUNT(*) FROM products p WHERE p.brand_id = b.id)
		 FROM brands b ORDER BY b.extracted_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list profiles")
	}
	defer rows.Close()

	var out []model.ProfileSummary
	for rows.Next() {
		var sum model.ProfileSummary
		var brandName sql.NullString
		if err := rows.Scan(&sum.ID, &sum.WebsiteURL, &brandName, &sum.Status, &sum.ExtractedAt, &sum.ProductCount); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan profile summary")
		}
		sum.BrandName = brandName.String
		out = append(out, sum)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate profiles")
}

func (s *SQLiteStore) AddCompetitor(ctx context.Context, profileID, competitorID, discoveredVia string) error {
	if profileID == competitorID {
		return eris.Errorf("sqlite: profile %s cannot be its own competitor", profileID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO competitors (id, brand_id, competitor_brand_id, discovered_via, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), profileID, competitorID, discoveredVia, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: add competitor")
}

func (s *SQLiteStore) ListCompetitors(ctx context.Context, profileID string) ([]model.ProfileSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.website_url, b.brand_name, b.extraction_status, b.extracted_at,
		        (SELECT COUNT(*) FROM products p WHERE p.brand_id = b.id)
		 FROM competitors c JOIN brands b ON b.id = c.competitor_brand_id
		 WHERE c.brand_id = ? ORDER BY c.created_at`, profileID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list competitors")
	}
	defer rows.Close()

	var out []model.ProfileSummary
	for rows.Next() {
		var sum model.ProfileSummary
		var brandName sql.NullString
		if err := rows.Scan(&sum.ID, &sum.WebsiteURL, &brandName, &sum.Status, &sum.ExtractedAt, &sum.ProductCount); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan competitor")
		}
		sum.BrandName = brandName.String
		out = append(out, sum)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate competitors")
}

func (s *SQLiteStore) CreateJob(ctx context.Context, profileID string) (*model.AnalysisJob, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO competitor_jobs (id, brand_id, status, created_at) VALUES (?, ?, ?, ?)`,
		id, profileID, string(model.JobStatusPending), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert job")
	}

	return &model.AnalysisJob{
		ID:        id,
		ProfileID: profileID,
		Status:    model.JobStatusPending,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, competitorsFound int, errMsg string) error {
	var completedAt any
	if status == model.JobStatusCompleted || status == model.JobStatusFailed {
		completedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE competitor_jobs SET status = ?, competitors_found = ?, error_message = ?, completed_at = ? WHERE id = ?`,
		string(status), competitorsFound, errMsg, completedAt, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update job %s", jobID)
	}
	return checkRowsAffected(res, "job", jobID)
}

func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	var errMsg sql.NullString
	var completedAt sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT id, brand_id, status, competitors_found, error_message, created_at, completed_at
		 FROM competitor_jobs WHERE id = ?`, jobID,
	).Scan(&job.ID, &job.ProfileID, &job.Status, &job.CompetitorsFound, &errMsg, &job.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: job %s", jobID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get job")
	}
	job.ErrorMessage = errMsg.String
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	return &job, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

func marshalProductJSON(prod model.Product) (tags, images, variants string, err error) {
	t, err := json.Marshal(prod.Tags)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal tags")
	}
	i, err := json.Marshal(prod.Images)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal images")
	}
	v, err := json.Marshal(prod.Variants)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal variants")
	}
	return string(t), string(i), string(v), nil
}

func unmarshalProductJSON(prod *model.Product, tags, images, variants string) error {
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &prod.Tags); err != nil {
			return eris.Wrap(err, "store: unmarshal tags")
		}
	}
	if images != "" {
		if err := json.Unmarshal([]byte(images), &prod.Images); err != nil {
			return eris.Wrap(err, "store: unmarshal images")
		}
	}
	if variants != "" {
		if err := json.Unmarshal([]byte(variants), &prod.Variants); err != nil {
			return eris.Wrap(err, "store: unmarshal variants")
		}
	}
	return nil
}

func marshalContactJSON(c model.ContactInfo) (emails, phones, addresses string, err error) {
	e, err := json.Marshal(c.Emails)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal emails")
	}
	p, err := json.Marshal(c.Phones)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal phones")
	}
	a, err := json.Marshal(c.Addresses)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal addresses")
	}
	return string(e), string(p), string(a), nil
}

func unmarshalContactJSON(emails, phones, addresses string) (model.ContactInfo, error) {
	var c model.ContactInfo
	if emails != "" {
		if err := json.Unmarshal([]byte(emails), &c.Emails); err != nil {
			return c, eris.Wrap(err, "store: unmarshal emails")
		}
	}
	if phones != "" {
		if err := json.Unmarshal([]byte(phones), &c.Phones); err != nil {
			return c, eris.Wrap(err, "store: unmarshal phones")
		}
	}
	if addresses != "" {
		if err := json.Unmarshal([]byte(addresses), &c.Addresses); err != nil {
			return c, eris.Wrap(err, "store: unmarshal addresses")
		}
	}
	return c, nil
}
