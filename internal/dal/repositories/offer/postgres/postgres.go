package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/pkg/apperr"
)

// OfferDal represents the offer data access layer model.
type OfferDal struct {
	ID               int64     `db:"id"`
	OfferType        string    `db:"offer_type"`
	PromoType        string    `db:"promo_type"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	MinValueCents    int64     `db:"min_value_cents"`
	OfferAmountCents int64     `db:"offer_amount_cents"`
	PromoCode        string    `db:"promo_code"`
	Pincode          string    `db:"pincode"`
	IsActive         bool      `db:"is_active"`
	StartValidity    time.Time `db:"start_validity"`
	EndValidity      time.Time `db:"end_validity"`
	VendorIDs        []int64   `db:"vendor_ids"`
	Banks            []string  `db:"banks"`
	Bins             []int64   `db:"bins"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ToModel converts OfferDal to the service layer Offer model.
func (o *OfferDal) ToModel() (*offer.Offer, error) {
	offerType, err := offer.ParseOfferType(o.OfferType)
	if err != nil {
		return nil, err
	}

	return &offer.Offer{
		ID:               o.ID,
		OfferType:        offerType,
		PromoType:        offer.PromoType(o.PromoType),
		Title:            o.Title,
		Description:      o.Description,
		MinValueCents:    o.MinValueCents,
		OfferAmountCents: o.OfferAmountCents,
		PromoCode:        o.PromoCode,
		Pincode:          o.Pincode,
		IsActive:         o.IsActive,
		StartValidity:    o.StartValidity,
		EndValidity:      o.EndValidity,
		VendorIDs:        o.VendorIDs,
		Banks:            o.Banks,
		Bins:             o.Bins,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}, nil
}

var offerColumns = []string{
	"id",
	"offer_type",
	"promo_type",
	"title",
	"description",
	"min_value_cents",
	"offer_amount_cents",
	"promo_code",
	"pincode",
	"is_active",
	"start_validity",
	"end_validity",
	"vendor_ids",
	"banks",
	"bins",
	"created_at",
	"updated_at",
}

type OfferPostgresRepository struct {
	conn postgres.Querier
}

func NewOfferPostgresRepository(conn postgres.Querier) *OfferPostgresRepository {
	return &OfferPostgresRepository{
		conn: conn,
	}
}

func (r *OfferPostgresRepository) scanOffer(row interface{ Scan(dest ...any) error }) (*offer.Offer, error) {
	var dal OfferDal
	err := row.Scan(
		&dal.ID,
		&dal.OfferType,
		&dal.PromoType,
		&dal.Title,
		&dal.Description,
		&dal.MinValueCents,
		&dal.OfferAmountCents,
		&dal.PromoCode,
		&dal.Pincode,
		&dal.IsActive,
		&dal.StartValidity,
		&dal.EndValidity,
		&dal.VendorIDs,
		&dal.Banks,
		&dal.Bins,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert offer dal to model: %w", err)
	}

	return model, nil
}

// Insert stores a new offer and returns it with its id set.
func (r *OfferPostgresRepository) Insert(ctx context.Context, o offer.Offer) (*offer.Offer, error) {
	now := time.Now()
	query, args, err := sq.Insert("offers").
		Columns(
			"offer_type",
			"promo_type",
			"title",
			"description",
			"min_value_cents",
			"offer_amount_cents",
			"promo_code",
			"pincode",
			"is_active",
			"start_validity",
			"end_validity",
			"vendor_ids",
			"banks",
			"bins",
			"created_at",
			"updated_at",
		).
		Values(
			o.OfferType,
			o.PromoType,
			o.Title,
			o.Description,
			o.MinValueCents,
			o.OfferAmountCents,
			o.PromoCode,
			o.Pincode,
			o.IsActive,
			o.StartValidity,
			o.EndValidity,
			o.VendorIDs,
			o.Banks,
			o.Bins,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(offerColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build offer insert: %w", err)
	}

	inserted, err := r.scanOffer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert offer: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves one offer, failing NotFound when it does not exist.
func (r *OfferPostgresRepository) GetByID(ctx context.Context, id int64) (*offer.Offer, error) {
	query, args, err := sq.Select(offerColumns...).
		From("offers").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build offer query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offer: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}

		return nil, apperr.NotFound("offer %d not found", id)
	}

	model, err := r.scanOffer(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}

	return model, nil
}

// Update overwrites the offer's discount rule.
func (r *OfferPostgresRepository) Update(ctx context.Context, o offer.Offer) error {
	query, args, err := sq.Update("offers").
		Set("offer_type", o.OfferType).
		Set("promo_type", o.PromoType).
		Set("title", o.Title).
		Set("description", o.Description).
		Set("min_value_cents", o.MinValueCents).
		Set("offer_amount_cents", o.OfferAmountCents).
		Set("promo_code", o.PromoCode).
		Set("pincode", o.Pincode).
		Set("is_active", o.IsActive).
		Set("start_validity", o.StartValidity).
		Set("end_validity", o.EndValidity).
		Set("vendor_ids", o.VendorIDs).
		Set("banks", o.Banks).
		Set("bins", o.Bins).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": o.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build offer update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("offer %d not found", o.ID)
	}

	return nil
}
