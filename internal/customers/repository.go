package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Create(ctx context.Context, customer Customer) (int64, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const customerColumns = `
	id, first_name, last_name, email,
	primary_address_street, primary_address_city, primary_address_state,
	primary_address_zip, primary_address_country,
	phone_cell, phone_home, phone_work, notes,
	marketing_consent, marketing_consent_date,
	privacy_policy_agreed, privacy_policy_agreed_date,
	customer_since, active`

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns)
	row := r.db.QueryRow(ctx, query, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Consented != nil {
		conditions = append(conditions, fmt.Sprintf("marketing_consent = $%d", argPos))
		args = append(args, *req.Consented)
		argPos++
	}

	if req.Search != nil && *req.Search != "" {
		searchPattern := "%" + *req.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, searchPattern)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM customers
		%s
		ORDER BY customer_since DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, customerColumns, whereClause, argPos, argPos+1)

	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *c)
	}

	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, customer Customer) (int64, error) {
	const query = `
		INSERT INTO customers (
			first_name, last_name, email,
			primary_address_street, primary_address_city, primary_address_state,
			primary_address_zip, primary_address_country,
			phone_cell, phone_home, phone_work, notes,
			marketing_consent, marketing_consent_date,
			privacy_policy_agreed, privacy_policy_agreed_date,
			customer_since, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18
		)
		RETURNING id`

	var consentDate pgtype.Timestamptz
	if customer.MarketingConsentDate != nil {
		consentDate = pgtype.Timestamptz{Time: *customer.MarketingConsentDate, Valid: true}
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.PrimaryAddressStreet,
		customer.PrimaryAddressCity,
		customer.PrimaryAddressState,
		customer.PrimaryAddressZip,
		customer.PrimaryAddressCountry,
		customer.PhoneCell,
		pgtype.Text{String: getString(customer.PhoneHome), Valid: customer.PhoneHome != nil},
		pgtype.Text{String: getString(customer.PhoneWork), Valid: customer.PhoneWork != nil},
		pgtype.Text{String: getString(customer.Notes), Valid: customer.Notes != nil},
		customer.MarketingConsent,
		consentDate,
		customer.PrivacyPolicyAgreed,
		customer.PrivacyPolicyAgreedDate,
		customer.CustomerSince,
		customer.Active,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateEmail, customer.Email)
		}
		return 0, err
	}
	return id, nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	var phoneHome, phoneWork, notes pgtype.Text
	var consentDate pgtype.Timestamptz
	var agreedDate, since pgtype.Timestamptz

	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email,
		&c.PrimaryAddressStreet, &c.PrimaryAddressCity, &c.PrimaryAddressState,
		&c.PrimaryAddressZip, &c.PrimaryAddressCountry,
		&c.PhoneCell, &phoneHome, &phoneWork, &notes,
		&c.MarketingConsent, &consentDate,
		&c.PrivacyPolicyAgreed, &agreedDate,
		&since, &c.Active,
	)
	if err != nil {
		return nil, err
	}

	if phoneHome.Valid {
		val := phoneHome.String
		c.PhoneHome = &val
	}
	if phoneWork.Valid {
		val := phoneWork.String
		c.PhoneWork = &val
	}
	if notes.Valid {
		val := notes.String
		c.Notes = &val
	}
	if consentDate.Valid {
		val := consentDate.Time
		c.MarketingConsentDate = &val
	}
	if agreedDate.Valid {
		c.PrivacyPolicyAgreedDate = agreedDate.Time
	}
	if since.Valid {
		c.CustomerSince = since.Time
	}
	return &c, nil
}

func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
