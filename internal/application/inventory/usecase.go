package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/inventory"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de inventario (IN, OUT, ADJUSTMENT)
// de forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInputDTO entrada para registrar un movimiento.
// IN/OUT: Quantity es la magnitud (> 0). ADJUSTMENT: Quantity es un delta con signo (≠ 0).
type MovementInputDTO struct {
	UserID    string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Reference string
}

// MovementResult movimiento persistido y stock resultante del producto.
type MovementResult struct {
	Movement *entity.InventoryMovement
	Stock    decimal.Decimal
}

// RegisterMovement inicia una transacción, bloquea la fila del producto, calcula el nuevo stock
// y guarda el movimiento. El stock nunca queda negativo (ErrInsufficientStock).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var result MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		next, err := inventory.ApplyMovement(product.Stock, input.Type, input.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Current:     product.Stock,
					Requested:   input.Quantity.Abs(),
				}
			}
			return fmt.Errorf("%w: movimiento %s de %s", err, input.Type, input.Quantity)
		}
		if err := productRepo.UpdateStock(ctx, product.ID, next); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			TransactionID: uuid.New().String(),
			ProductID:     product.ID,
			Type:          input.Type,
			Quantity:      next.Sub(product.Stock), // con signo: IN +, OUT -
			Reference:     input.Reference,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = MovementResult{Movement: mov, Stock: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByTransaction devuelve los movimientos de una operación (ej. los OUT de una cotización validada).
func (uc *RegisterMovementUseCase) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	if transactionID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByTransaction(ctx, transactionID)
}

// ListByProduct devuelve el kardex de un producto, más recientes primero.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
}
