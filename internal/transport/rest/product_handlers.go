package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
)

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.List()
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	product, err := s.catalog.Create(catalog.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		Currency:    req.Currency,
		Status:      domain.ProductStatus(req.Status),
		StockQty:    req.StockQty,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (s *Server) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	product, err := s.catalog.Update(c.Param("id"), catalog.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		Currency:    req.Currency,
		Status:      domain.ProductStatus(req.Status),
		StockQty:    req.StockQty,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.catalog.Delete(c.Param("id")); err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) uploadProductPhoto(c *gin.Context) {
	contentType, data, err := readPhotoUpload(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	product, err := s.catalog.SetPhoto(c.Param("id"), contentType, data)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

// readPhotoUpload читает файл из multipart-поля "photo".
func readPhotoUpload(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return "", nil, domain.ErrPhotoEmpty
	}
	if fileHeader.Size > domain.MaxPhotoBytes {
		return "", nil, domain.ErrPhotoTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Header.Get("Content-Type"), data, nil
}
