package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CreateInput — данные для создания товара.
type CreateInput struct {
	Name        string
	Description string
	PriceMinor  int64
	Currency    string
	Status      domain.ProductStatus
	StockQty    int32
}

// UpdateInput — данные для обновления товара. Фото меняется отдельной операцией.
type UpdateInput struct {
	Name        string
	Description string
	PriceMinor  int64
	Currency    string
	Status      domain.ProductStatus
	StockQty    int32
}

// Service управляет каталогом товаров.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{products: products, logger: logger}
}

// Create добавляет товар в каталог. Пустой статус трактуется как active.
func (s *Service) Create(in CreateInput) (domain.Product, error) {
	if in.Status == "" {
		in.Status = domain.ProductStatusActive
	}

	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		PriceMinor:  in.PriceMinor,
		Currency:    in.Currency,
		Status:      in.Status,
		StockQty:    in.StockQty,
		CreatedAt:   time.Now().UTC(),
	}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	if err := s.products.Create(product); err != nil {
		s.logger.WithError(err).WithField("name", in.Name).Error("failed to create product")
		return domain.Product{}, err
	}
	return product, nil
}

// Get возвращает товар по идентификатору.
func (s *Service) Get(productID string) (domain.Product, error) {
	return s.products.Get(productID)
}

// List возвращает весь каталог.
func (s *Service) List() ([]domain.Product, error) {
	return s.products.List()
}

// Update перезаписывает атрибуты товара. Изменение цены не затрагивает
// уже созданные заказы: их позиции хранят ценовой снапшот.
func (s *Service) Update(productID string, in UpdateInput) (domain.Product, error) {
	product, err := s.products.Get(productID)
	if err != nil {
		return domain.Product{}, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.PriceMinor = in.PriceMinor
	product.Currency = in.Currency
	product.Status = in.Status
	product.StockQty = in.StockQty
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	if err := s.products.Save(product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// SetPhoto валидирует и сохраняет изображение товара.
func (s *Service) SetPhoto(productID, contentType string, data []byte) (domain.Product, error) {
	if err := domain.ValidatePhoto(contentType, int64(len(data))); err != nil {
		return domain.Product{}, err
	}

	product, err := s.products.Get(productID)
	if err != nil {
		return domain.Product{}, err
	}
	product.Photo = data

	if err := s.products.Save(product); err != nil {
		return domain.Product{}, fmt.Errorf("save product photo: %w", err)
	}
	return product, nil
}

// Delete удаляет товар. Товар, на который ссылаются позиции заказов,
// удалить нельзя: вернётся ErrProductInUse.
func (s *Service) Delete(productID string) error {
	if _, err := s.products.Get(productID); err != nil {
		return err
	}
	return s.products.Delete(productID)
}
