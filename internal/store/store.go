// Package store reads directory listings from the PostgreSQL database.
// The database is owned by the directory application; this package
// only reads, never writes. Proposed changes are emitted as SQL files
// by the output package for human review.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/logging"
)

// Mode selects which listings a fetch returns.
type Mode string

// Fetch modes.
const (
	// ModeTest fetches the most recent listings up to the test limit.
	ModeTest Mode = "test"

	// ModeAll fetches every published listing.
	ModeAll Mode = "all"

	// ModeOperator fetches listings whose operator name matches.
	ModeOperator Mode = "operator"

	// ModeName fetches listings whose name matches.
	ModeName Mode = "name"
)

// FetchOptions narrow a listing fetch.
type FetchOptions struct {
	Mode      Mode
	Operator  string // operator name filter for ModeOperator
	Name      string // listing name filter for ModeName
	TestLimit int    // row cap for ModeTest
}

// Store reads listings from PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.NewQueryError("", "connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewQueryError("", "ping", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

const listingColumns = `
	d.id, d.name, d.slug, d.number_of_units, d.status, d.development_type,
	d.region, d.area, d.postcode, d.website_url, d.description,
	d.completion_date, d.latitude, d.longitude,
	o.id, o.name, o.slug, o.website,
	a.id, a.name, a.slug, a.website`

const listingJoins = `
	FROM developments d
	LEFT JOIN operators o ON o.id = d.operator_id
	LEFT JOIN asset_owners a ON a.id = d.asset_owner_id`

// FetchListings returns published listings with joined operator and
// asset owner data, newest first, filtered per the options.
func (s *Store) FetchListings(ctx context.Context, opts FetchOptions) ([]developments.Listing, error) {
	query := "SELECT" + listingColumns + listingJoins + "\n\tWHERE d.is_published = true"
	var args []any

	switch opts.Mode {
	case ModeName:
		args = append(args, "%"+opts.Name+"%")
		query += fmt.Sprintf("\n\tAND d.name ILIKE $%d", len(args))
	case ModeOperator:
		args = append(args, "%"+opts.Operator+"%")
		query += fmt.Sprintf("\n\tAND o.name ILIKE $%d", len(args))
	}

	query += "\n\tORDER BY d.created_at DESC"

	if opts.Mode == ModeTest && opts.TestLimit > 0 {
		args = append(args, opts.TestLimit)
		query += fmt.Sprintf("\n\tLIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.NewQueryError("developments", "fetch listings", err)
	}
	defer rows.Close()

	var listings []developments.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryError("developments", "iterate listings", err)
	}

	logging.Info().
		Int("listings", len(listings)).
		Str("mode", string(opts.Mode)).
		Msg("Listings fetched")

	return listings, nil
}

func scanListing(rows pgx.Rows) (developments.Listing, error) {
	var (
		listing   developments.Listing
		status    *string
		devType   *string
		region    *string
		area      *string
		postcode  *string
		website   *string
		desc      *string
		completed *string
		operator  nullableOrg
		owner     nullableOrg
	)

	err := rows.Scan(
		&listing.ID, &listing.Name, &listing.Slug, &listing.NumberOfUnits,
		&status, &devType, &region, &area, &postcode, &website, &desc,
		&completed, &listing.Latitude, &listing.Longitude,
		&operator.id, &operator.name, &operator.slug, &operator.website,
		&owner.id, &owner.name, &owner.slug, &owner.website,
	)
	if err != nil {
		return developments.Listing{}, errors.NewQueryError("developments", "scan listing", err)
	}

	listing.Status = deref(status)
	listing.Type = deref(devType)
	listing.Region = deref(region)
	listing.Area = deref(area)
	listing.Postcode = deref(postcode)
	listing.WebsiteURL = deref(website)
	listing.Description = deref(desc)
	listing.CompletionDate = deref(completed)
	listing.Operator = operator.organization()
	listing.AssetOwner = owner.organization()

	return listing, nil
}

// FetchExistingNames returns every stored development name mapped to
// its slug, lowercased for case-insensitive matching.
func (s *Store) FetchExistingNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, slug FROM developments`)
	if err != nil {
		return nil, errors.NewQueryError("developments", "fetch names", err)
	}
	defer rows.Close()

	existing := make(map[string]string)
	for rows.Next() {
		var name, slug string
		if err := rows.Scan(&name, &slug); err != nil {
			return nil, errors.NewQueryError("developments", "scan name", err)
		}
		name = strings.TrimSpace(name)
		slug = strings.TrimSpace(slug)
		if name != "" && slug != "" {
			existing[strings.ToLower(name)] = slug
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryError("developments", "iterate names", err)
	}
	return existing, nil
}

// nullableOrg scans a LEFT JOINed organization whose columns may all
// be NULL.
type nullableOrg struct {
	id      *string
	name    *string
	slug    *string
	website *string
}

func (o nullableOrg) organization() *developments.Organization {
	if o.id == nil {
		return nil
	}
	return &developments.Organization{
		ID:      *o.id,
		Name:    deref(o.name),
		Slug:    deref(o.slug),
		Website: deref(o.website),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
