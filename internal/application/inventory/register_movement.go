package inventory

import (
	"context"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	res, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMovementResponse{
		Movement: ToMovementResponse(res.Movement),
		Stock:    res.Stock,
	}, nil
}

// ToMovementResponse convierte un movimiento al DTO de salida.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reference:     m.Reference,
		Date:          m.Date,
		CreatedBy:     m.CreatedBy,
	}
}
