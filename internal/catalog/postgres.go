package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/azorix/solarstore/internal/domain"
)

// PostgresService implements Service using PostgreSQL.
type PostgresService struct {
	pool *pgxpool.Pool
}

var _ Service = (*PostgresService)(nil)

// NewPostgresService creates a PostgreSQL-backed catalog service.
func NewPostgresService(pool *pgxpool.Pool) *PostgresService {
	return &PostgresService{pool: pool}
}

// ListProducts returns all products, newest first.
func (s *PostgresService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, price, mrp, image, badges
		FROM products
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_products", "failed to list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list_products", "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.list_products", "failed to read products")
	}

	return products, nil
}

// GetProduct retrieves a product by ID.
func (s *PostgresService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, price, mrp, image, badges
		FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("catalog.get_product", "product", id)
		}
		return nil, domain.Internal(err, "catalog.get_product", "failed to query product")
	}

	return &p, nil
}

// ListOffers returns all active offers.
func (s *PostgresService) ListOffers(ctx context.Context) ([]domain.OfferDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, discount_type, discount_value, coupon_code, description, terms, badge
		FROM offers
		WHERE active
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_offers", "failed to list offers")
	}
	defer rows.Close()

	var offers []domain.OfferDetail
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list_offers", "failed to scan offer")
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.list_offers", "failed to read offers")
	}

	return offers, nil
}

// GetOffer retrieves an offer by ID.
func (s *PostgresService) GetOffer(ctx context.Context, id string) (*domain.OfferDetail, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, discount_type, discount_value, coupon_code, description, terms, badge
		FROM offers WHERE id = $1`, id)

	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("catalog.get_offer", "offer", id)
		}
		return nil, domain.Internal(err, "catalog.get_offer", "failed to query offer")
	}

	return &o, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p      domain.Product
		image  *string
		badges []string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.MRP, &image, &badges); err != nil {
		return domain.Product{}, err
	}

	if image != nil {
		p.Image = *image
	}
	p.Image = NormalizeImage(p.Image, domain.FallbackProductImage)
	p.Badges = NormalizeBadges(badges)

	return p, nil
}

func scanOffer(row pgx.Row) (domain.OfferDetail, error) {
	var (
		o            domain.OfferDetail
		discountType string
		couponCode   *string
		description  *string
		terms        *string
		badge        *string
	)
	if err := row.Scan(&o.ID, &o.Title, &discountType, &o.DiscountValue, &couponCode, &description, &terms, &badge); err != nil {
		return domain.OfferDetail{}, err
	}

	o.DiscountType = domain.DiscountType(discountType)
	o.DiscountValue = NormalizeDiscountValue(o.DiscountValue)
	if couponCode != nil {
		o.CouponCode = *couponCode
	}
	if description != nil {
		o.Description = *description
	}
	if terms != nil {
		o.Terms = *terms
	}
	if badge != nil {
		o.Badge = *badge
	}

	return o, nil
}
