package catalog_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newService(t *testing.T) (*catalog.Service, domain.ProductRepository) {
	t.Helper()
	products := memory.NewProductRepository(nil)
	return catalog.NewService(products, nil), products
}

func validInput() catalog.CreateInput {
	return catalog.CreateInput{
		Name:       "Wireless Mouse",
		PriceMinor: 2999,
		Currency:   "USD",
		StockQty:   10,
	}
}

func TestCreate(t *testing.T) {
	svc, _ := newService(t)

	product, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == "" {
		t.Fatal("expected generated product id")
	}
	if product.Status != domain.ProductStatusActive {
		t.Fatalf("expected default active status, got %s", product.Status)
	}

	stored, err := svc.Get(product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.PriceMinor != 2999 {
		t.Fatalf("expected price 2999, got %d", stored.PriceMinor)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newService(t)

	cases := []struct {
		name   string
		mutate func(*catalog.CreateInput)
		want   error
	}{
		{
			name:   "empty name",
			mutate: func(in *catalog.CreateInput) { in.Name = "" },
			want:   domain.ErrProductNameRequired,
		},
		{
			name:   "negative price",
			mutate: func(in *catalog.CreateInput) { in.PriceMinor = -1 },
			want:   domain.ErrPriceNegative,
		},
		{
			name:   "empty currency",
			mutate: func(in *catalog.CreateInput) { in.Currency = "" },
			want:   domain.ErrCurrencyRequired,
		},
		{
			name:   "unknown status",
			mutate: func(in *catalog.CreateInput) { in.Status = "archived" },
			want:   domain.ErrInvalidProductStatus,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.Create(in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newService(t)

	product, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(product.ID, catalog.UpdateInput{
		Name:       "Wireless Mouse v2",
		PriceMinor: 3499,
		Currency:   "USD",
		Status:     domain.ProductStatusInactive,
		StockQty:   5,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Wireless Mouse v2" || updated.PriceMinor != 3499 {
		t.Fatalf("unexpected product: %+v", updated)
	}
	if updated.Status != domain.ProductStatusInactive {
		t.Fatalf("expected inactive, got %s", updated.Status)
	}

	if _, err := svc.Update("missing", catalog.UpdateInput{Name: "x", Currency: "USD", Status: domain.ProductStatusActive}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSetPhoto(t *testing.T) {
	svc, _ := newService(t)

	product, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	photo := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	updated, err := svc.SetPhoto(product.ID, "image/jpeg", photo)
	if err != nil {
		t.Fatalf("set photo failed: %v", err)
	}
	if !bytes.Equal(updated.Photo, photo) {
		t.Fatal("expected stored photo bytes")
	}
}

func TestSetPhoto_Validation(t *testing.T) {
	svc, _ := newService(t)

	product, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cases := []struct {
		name        string
		contentType string
		data        []byte
		want        error
	}{
		{name: "empty file", contentType: "image/png", data: nil, want: domain.ErrPhotoEmpty},
		{name: "oversized file", contentType: "image/png", data: make([]byte, domain.MaxPhotoBytes+1), want: domain.ErrPhotoTooLarge},
		{name: "executable", contentType: "application/octet-stream", data: []byte{0x4D, 0x5A}, want: domain.ErrPhotoUnsupportedType},
		{name: "svg", contentType: "image/svg+xml", data: []byte("<svg/>"), want: domain.ErrPhotoUnsupportedType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SetPhoto(product.ID, tc.contentType, tc.data); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	orders := memory.NewOrderRepository()
	products := memory.NewProductRepository(orders)
	svc := catalog.NewService(products, nil)

	product, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := svc.Delete(product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}
