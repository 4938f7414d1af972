package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, sku, name, description, category_id, supplier_id, cost_price, sale_price,
	current_stock, minimum_stock, image_url, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.TenantID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID,
		&p.CostPrice, &p.SalePrice, &p.CurrentStock, &p.MinimumStock, &p.ImageURL, &p.Active,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.TenantID, product.SKU, product.Name, product.Description,
		product.CategoryID, product.SupplierID, product.CostPrice, product.SalePrice,
		product.CurrentStock, product.MinimumStock, product.ImageURL, product.Active,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isCheckViolation(err):
			return domain.ErrInsufficientStock
		case isForeignKeyViolation(err), isInvalidText(err):
			return fmt.Errorf("%w: categoría o proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, where string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+where, args...))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto del tenant por ID.
func (r *ProductRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetBySKU obtiene un producto por tenant y SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `tenant_id = $1 AND sku = $2`, tenantID, sku)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update", `tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

// Update actualiza un producto existente. No permite modificar costo ni stock (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $3, name = $4, description = $5, category_id = $6, supplier_id = $7,
			sale_price = $8, minimum_stock = $9, image_url = $10, active = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		product.TenantID, product.ID, product.SKU, product.Name, product.Description,
		product.CategoryID, product.SupplierID, product.SalePrice, product.MinimumStock,
		product.ImageURL, product.Active, product.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err), isInvalidText(err):
			return fmt.Errorf("%w: categoría o proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe stock y costo promedio (usado por el libro de movimientos).
func (r *ProductRepo) UpdateStock(ctx context.Context, tenantID, id string, stock int64, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $3, cost_price = $4, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, stock, cost,
	)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// productWhere condiciones compartidas por List y Count.
func productWhere(tenantID string, filter repository.ProductFilter) (string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("active = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	return strings.Join(where, " AND "), args
}

// List lista productos del tenant con filtros y paginación.
func (r *ProductRepo) List(ctx context.Context, tenantID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	where, args := productWhere(tenantID, filter)
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return r.list(ctx, query, args...)
}

// ListAll todos los productos del tenant, para reportes y alertas.
func (r *ProductRepo) ListAll(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 ORDER BY name, id`, tenantID)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidText(err) {
			return list, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	// category_id mal formado: ningún producto coincide.
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return make([]*entity.Product, 0), nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Count total de productos del tenant que cumplen el filtro.
func (r *ProductRepo) Count(ctx context.Context, tenantID string, filter repository.ProductFilter) (int, error) {
	where, args := productWhere(tenantID, filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&n); err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina un producto. Con movimientos registrados la FK lo impide (ErrConflict).
func (r *ProductRepo) Delete(ctx context.Context, tenantID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto tiene movimientos registrados", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
