package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wooplugin/gswc/internal/domain"
)

type MySQLCatalog struct {
	db *sql.DB
}

func NewMySQLCatalog(db *sql.DB) *MySQLCatalog {
	return &MySQLCatalog{db: db}
}

const productColumns = `p.id, p.sku, p.name, p.description, p.short_description,
	p.permalink, p.image_link, p.price, p.regular_price, p.sale_price,
	p.in_stock, p.purchasable, p.weight, p.global_unique_id, p.status,
	p.kind, p.created_at`

func (c *MySQLCatalog) FindProducts(ctx context.Context, q Query) ([]domain.Product, error) {
	var sb strings.Builder
	args := make([]any, 0, 8)

	sb.WriteString(`SELECT ` + productColumns + ` FROM products p WHERE p.kind <> ?`)
	args = append(args, string(domain.KindVariation))

	if q.Status != "" {
		sb.WriteString(` AND p.status = ?`)
		args = append(args, q.Status)
	}
	if q.InStockOnly {
		sb.WriteString(` AND p.in_stock = 1`)
	}
	if len(q.ExcludeCategoryIDs) > 0 {
		sb.WriteString(` AND NOT EXISTS (
			SELECT 1 FROM product_terms t
			WHERE t.product_id = p.id AND t.taxonomy = 'product_cat'
			  AND t.term_id IN (` + placeholders(len(q.ExcludeCategoryIDs)) + `))`)
		for _, id := range q.ExcludeCategoryIDs {
			args = append(args, id)
		}
	}
	if len(q.ExcludeTagIDs) > 0 {
		sb.WriteString(` AND NOT EXISTS (
			SELECT 1 FROM product_terms t
			WHERE t.product_id = p.id AND t.taxonomy = 'product_tag'
			  AND t.term_id IN (` + placeholders(len(q.ExcludeTagIDs)) + `))`)
		for _, id := range q.ExcludeTagIDs {
			args = append(args, id)
		}
	}

	sb.WriteString(` ORDER BY p.created_at DESC, p.id DESC`)

	if q.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, q.Limit)
	}

	rows, err := c.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find products failed: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0, 64)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Relations row by row (optimize to batched loads later).
	for i := range out {
		if err := c.loadRelations(ctx, &out[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (c *MySQLCatalog) GetProduct(ctx context.Context, id uint64) (domain.Product, bool, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.id = ?`,
		id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}

	if err := c.loadRelations(ctx, &p); err != nil {
		return domain.Product{}, false, err
	}

	return p, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (domain.Product, error) {
	var p domain.Product
	var kind string

	err := r.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.ShortDescription,
		&p.Permalink, &p.ImageLink, &p.Price, &p.RegularPrice, &p.SalePrice,
		&p.InStock, &p.Purchasable, &p.Weight, &p.GlobalUniqueID, &p.Status,
		&kind, &p.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.Kind = domain.ProductKind(kind)
	return p, nil
}

func (c *MySQLCatalog) loadRelations(ctx context.Context, p *domain.Product) error {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT url FROM product_gallery WHERE product_id = ? ORDER BY position`,
		p.ID,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			rows.Close()
			return err
		}
		p.GalleryImageLinks = append(p.GalleryImageLinks, url)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = c.db.QueryContext(
		ctx,
		`SELECT taxonomy, term_id, name FROM product_terms WHERE product_id = ? ORDER BY position, term_id`,
		p.ID,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var taxonomy, name string
		var termID uint64
		if err := rows.Scan(&taxonomy, &termID, &name); err != nil {
			rows.Close()
			return err
		}
		switch taxonomy {
		case "product_cat":
			p.CategoryIDs = append(p.CategoryIDs, termID)
			p.CategoryNames = append(p.CategoryNames, name)
		case "product_tag":
			p.TagIDs = append(p.TagIDs, termID)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if p.Kind == domain.KindVariable {
		rows, err = c.db.QueryContext(
			ctx,
			`SELECT id FROM products WHERE parent_id = ? ORDER BY id`,
			p.ID,
		)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id uint64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			p.ChildIDs = append(p.ChildIDs, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}

	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
