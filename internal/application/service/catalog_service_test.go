package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.products.CreateProduct(context.Background(), &CreateProductInput{
		Name:      "   ",
		UnitType:  "litre",
		UnitValue: 0,
		Price:     -1,
	})
	appErr := requireStatus(t, err, http.StatusUnprocessableEntity)

	var fields []string
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "unit_type", "unit_value", "price"}, fields)

	_, err = env.products.CreateProduct(context.Background(), &CreateProductInput{
		Name:      strings.Repeat("x", 256),
		UnitType:  enum.UnitTypeWeight,
		UnitValue: 1,
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

func TestProductService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.products.CreateProduct(ctx, &CreateProductInput{
		Name:      " Basmati Rice ",
		UnitType:  enum.UnitTypeWeight,
		UnitValue: 1000,
		Category:  "Grains",
		Price:     120,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Basmati Rice", p.Name)

	updated, err := env.products.UpdateProduct(ctx, &UpdateProductInput{ID: p.ID, Price: ptr(130.0)})
	require.NoError(t, err)
	assert.Equal(t, 130.0, updated.Price)
	assert.Equal(t, "Grains", updated.Category)

	_, err = env.products.UpdateProduct(ctx, &UpdateProductInput{ID: p.ID, UnitValue: ptr(0.0)})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	env.addProduct(t, "Sugar", 40)
	list, err := env.products.ListProducts(ctx, &repository.ProductFilterParams{Search: "rice"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, p.ID, list.Items[0].ID)

	require.NoError(t, env.products.DeleteProduct(ctx, p.ID))
	_, err = env.products.GetProduct(ctx, p.ID)
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, env.products.DeleteProduct(ctx, p.ID), http.StatusNotFound)
}

func TestProductService_DeleteKeepsBillLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.addProduct(t, "Tea", 80)

	bill, err := env.billing.CreateBill(ctx, &CreateBillInput{
		CustomerName: "Asha",
		Items:        []BillItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, env.products.DeleteProduct(ctx, p.ID))

	stored, err := env.billing.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tea", stored.Products[0].Name)
	assert.Equal(t, 80.0, stored.Products[0].UnitPrice)
}

func TestCategoryService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCategoryService(env.store.Categories())

	grains, err := svc.CreateCategory(ctx, "Grains")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "grains")
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.CreateCategory(ctx, "")
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = svc.CreateCategory(ctx, "Dairy")
	require.NoError(t, err)

	renamed, err := svc.UpdateCategory(ctx, grains.ID, "GRAINS")
	require.NoError(t, err)
	assert.Equal(t, "GRAINS", renamed.Name)

	_, err = svc.UpdateCategory(ctx, grains.ID, "dairy")
	requireStatus(t, err, http.StatusConflict)

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteCategory(ctx, grains.ID))
	_, err = svc.GetCategory(ctx, grains.ID)
	requireStatus(t, err, http.StatusNotFound)
}
