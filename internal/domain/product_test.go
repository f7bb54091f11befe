package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func makeProduct() domain.Product {
	return domain.Product{
		ID:         "product-1",
		Name:       "Laptop Pro 15",
		PriceMinor: 129999,
		Currency:   "USD",
		Status:     domain.ProductStatusActive,
		StockQty:   10,
	}
}

func TestProductValidateInvariants_Ok(t *testing.T) {
	product := makeProduct()
	if errs := product.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestProductValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(p *domain.Product)
	}{
		{
			name: "no name",
			mut: func(p *domain.Product) {
				p.Name = ""
			},
		},
		{
			name: "negative price",
			mut: func(p *domain.Product) {
				p.PriceMinor = -1
			},
		},
		{
			name: "no currency",
			mut: func(p *domain.Product) {
				p.Currency = ""
			},
		},
		{
			name: "unknown status",
			mut: func(p *domain.Product) {
				p.Status = "archived"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := makeProduct()
			tc.mut(&product)

			if len(product.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	if !domain.RoleAdmin.Valid() || !domain.RoleUser.Valid() {
		t.Fatal("expected admin and user roles to be valid")
	}
	if domain.Role("root").Valid() {
		t.Fatal("expected unknown role to be invalid")
	}
}
