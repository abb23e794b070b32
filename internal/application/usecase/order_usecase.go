package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

// OrderUseCase maneja los pedidos del marketplace. El total y el precio de
// cada línea los fija siempre el servidor con el precio vigente del producto.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, companyRepo: companyRepo, productRepo: productRepo}
}

// Create registra un pedido de un usuario contra una empresa. Todas las
// líneas deben referenciar productos de esa empresa; el precio se congela al
// valor vigente del producto en el momento del pedido.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CompanyID == "" {
		return nil, fmt.Errorf("%w: company_id es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe contener al menos un item", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: in.CompanyID,
		CreatedAt: time.Now(),
	}
	total := decimal.Zero
	items := make([]*entity.OrderItem, 0, len(in.Items))
	for _, req := range in.Items {
		if req.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, req.ProductID)
		}
		if product.CompanyID != in.CompanyID {
			return nil, fmt.Errorf("%w: el producto %s no pertenece a la empresa", domain.ErrInvalidInput, req.ProductID)
		}
		item := &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Price:     product.Price,
		}
		total = total.Add(item.Quantity.Mul(item.Price))
		items = append(items, item)
	}
	order.Total = total

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := uc.orderRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	return toOrderResponse(order, items), nil
}

// Get obtiene un pedido. Lo ven el comprador o la empresa vendedora.
func (uc *OrderUseCase) Get(ctx context.Context, userID, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != userID && (companyID == "" || order.CompanyID != companyID) {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItemsByOrderID(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// ListMine lista los pedidos del usuario autenticado.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

// ListByCompany lista los pedidos recibidos por la empresa.
func (uc *OrderUseCase) ListByCompany(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

func (uc *OrderUseCase) toResponses(orders []*entity.Order) ([]*dto.OrderResponse, error) {
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := uc.orderRepo.GetItemsByOrderID(order.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrderResponse(order, items))
	}
	return out, nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		CompanyID: order.CompanyID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Items:     make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}
