package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationColumns = `id, reference, client_name, client_phone, type, total_amount, status, stock_debited_at, created_at, updated_at`

// QuotationRepo persiste el agregado Quotation (cabecera + líneas) sobre PostgreSQL.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// NextReferenceSequence incrementa el contador del día con un upsert atómico.
func (r *QuotationRepo) NextReferenceSequence(ctx context.Context, day time.Time) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO quotation_counters (day, last_value) VALUES ($1::date, 1)
		ON CONFLICT (day) DO UPDATE SET last_value = quotation_counters.last_value + 1
		RETURNING last_value`,
		day.Format("2006-01-02"),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next reference sequence: %w", err)
	}
	return seq, nil
}

// Create inserta cabecera y líneas en una sola transacción (savepoint si ya hay una abierta).
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO quotations (`+quotationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			q.ID, q.Reference, q.ClientName, q.ClientPhone, q.Type, q.TotalAmount, q.Status,
			q.StockDebitedAt, q.CreatedAt, q.UpdatedAt,
		)
		if err != nil {
			return err
		}
		for i, l := range q.Lines {
			_, err := tx.Exec(ctx, `
				INSERT INTO quotation_lines (quotation_id, position, product_id, length, width, quantity, surface, unit_price, total_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				q.ID, i, l.ProductID, l.Length, l.Width, l.Quantity, l.Surface, l.UnitPrice, l.TotalPrice,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID obtiene la cotización con sus líneas (en orden) y el nombre de cada producto.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getOne(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
func (r *QuotationRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getOne(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1 FOR UPDATE`, id)
}

func (r *QuotationRepo) getOne(ctx context.Context, query, id string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Quotation{q}); err != nil {
		return nil, err
	}
	return q, nil
}

// List lista cotizaciones, más recientes primero.
func (r *QuotationRepo) List(ctx context.Context, filter repository.QuotationFilter) ([]*entity.Quotation, error) {
	return r.queryMany(ctx, `
		SELECT `+quotationColumns+` FROM quotations
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC, reference DESC
		LIMIT $3 OFFSET $4`,
		filter.Status, filter.Type, filter.Limit, filter.Offset,
	)
}

// Count cuenta las cotizaciones que cumplen el filtro.
func (r *QuotationRepo) Count(ctx context.Context, filter repository.QuotationFilter) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM quotations WHERE ($1 = '' OR status = $1) AND ($2 = '' OR type = $2)`,
		filter.Status, filter.Type,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotations: %w", err)
	}
	return n, nil
}

// Search busca el texto literal dentro de la referencia o del nombre del cliente.
func (r *QuotationRepo) Search(ctx context.Context, term string) ([]*entity.Quotation, error) {
	pattern := "%" + escapeLike(term) + "%"
	return r.queryMany(ctx, `
		SELECT `+quotationColumns+` FROM quotations
		WHERE reference ILIKE $1 ESCAPE '\' OR client_name ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC, reference DESC`,
		pattern,
	)
}

// UpdateStatus cambia el estado y, si corresponde, la marca de stock descontado.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, id, status string, stockDebitedAt *time.Time, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE quotations SET status = $2, stock_debited_at = $3, updated_at = $4 WHERE id = $1`,
		id, status, stockDebitedAt, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cotización; las líneas se borran en cascada.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuotationRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Quotation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga en una sola consulta las líneas de todas las cotizaciones dadas.
func (r *QuotationRepo) attachLines(ctx context.Context, list []*entity.Quotation) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Quotation, len(list))
	ids := make([]string, 0, len(list))
	for _, q := range list {
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT l.quotation_id, l.product_id, p.name, l.length, l.width, l.quantity, l.surface, l.unit_price, l.total_price
		FROM quotation_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.quotation_id = ANY($1::uuid[])
		ORDER BY l.quotation_id, l.position`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("list quotation lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var quotationID string
		var l entity.QuotationLine
		if err := rows.Scan(&quotationID, &l.ProductID, &l.ProductName, &l.Length, &l.Width,
			&l.Quantity, &l.Surface, &l.UnitPrice, &l.TotalPrice); err != nil {
			return fmt.Errorf("scan quotation line: %w", err)
		}
		if q := byID[quotationID]; q != nil {
			q.Lines = append(q.Lines, l)
		}
	}
	return rows.Err()
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	if err := row.Scan(&q.ID, &q.Reference, &q.ClientName, &q.ClientPhone, &q.Type, &q.TotalAmount,
		&q.Status, &q.StockDebitedAt, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}
