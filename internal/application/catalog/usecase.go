// Package catalog cubre las altas y lecturas mínimas de catálogo
// (productos y terceros) que el motor de pedidos necesita para operar.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/gestion-comercial/internal/application/dto"
	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// UseCase expone el catálogo mínimo: productos y terceros.
type UseCase struct {
	productRepo repository.ProductRepository
	partnerRepo repository.PartnerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, partnerRepo repository.PartnerRepository) *UseCase {
	return &UseCase{productRepo: productRepo, partnerRepo: partnerRepo}
}

// CreateProduct da de alta un producto de catálogo.
func (uc *UseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.NewString(),
		SKU:         in.SKU,
		Name:        in.Name,
		Price:       in.Price,
		AverageCost: in.AverageCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// GetProduct devuelve un producto por ID, nil si no existe.
func (uc *UseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return productToResponse(p), nil
}

// ListProducts lista productos paginados.
func (uc *UseCase) ListProducts(limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productToResponse(p))
	}
	return out, nil
}

// CreatePartner da de alta un tercero (cliente, proveedor o ambos).
func (uc *UseCase) CreatePartner(in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.PartnerKindClient, entity.PartnerKindSupplier, entity.PartnerKindBoth:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Partner{
		ID:        uuid.NewString(),
		Kind:      in.Kind,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.partnerRepo.Create(p); err != nil {
		return nil, err
	}
	return partnerToResponse(p), nil
}

// GetPartner devuelve un tercero por ID, nil si no existe.
func (uc *UseCase) GetPartner(id string) (*dto.PartnerResponse, error) {
	p, err := uc.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return partnerToResponse(p), nil
}

// ListPartners lista terceros paginados.
func (uc *UseCase) ListPartners(limit, offset int) ([]*dto.PartnerResponse, error) {
	list, err := uc.partnerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, partnerToResponse(p))
	}
	return out, nil
}

func productToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Price:       p.Price,
		AverageCost: p.AverageCost,
		CreatedAt:   p.CreatedAt,
	}
}

func partnerToResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        p.ID,
		Name:      p.Name,
		TaxID:     p.TaxID,
		Kind:      p.Kind,
		Email:     p.Email,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}
