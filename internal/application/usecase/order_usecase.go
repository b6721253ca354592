package usecase

import (
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// OrderUseCase lecturas de órdenes de fabricación. Las transiciones de
// estado (salvo el consumo) pertenecen al módulo de órdenes.
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// GetByID obtiene una orden con su snapshot de BOM.
func (uc *OrderUseCase) GetByID(id string) (*entity.ManufacturingOrder, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{Kind: "orden", ID: id}
	}
	return order, nil
}
