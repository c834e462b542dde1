package store

import (
	"context"
	"sync"

	"fjacquet/ledger/internal/models"
)

// MockSubcategoryStore is an in-memory subcategory repository for tests.
type MockSubcategoryStore struct {
	Subcategories []models.Subcategory

	// Error flags for testing error conditions
	FindByCategoryError error
	FindDefaultError    error
	FindAllError        error

	mu                  sync.Mutex
	findByCategoryCalls int
	findDefaultCalls    int
}

// FindByCategory returns the active mock subcategories of mainType.
func (m *MockSubcategoryStore) FindByCategory(_ context.Context, mainType models.MainCategoryType) ([]models.Subcategory, error) {
	m.mu.Lock()
	m.findByCategoryCalls++
	m.mu.Unlock()

	if m.FindByCategoryError != nil {
		return nil, m.FindByCategoryError
	}
	var out []models.Subcategory
	for _, s := range m.Subcategories {
		if s.MainCategoryType == mainType && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

// FindDefault returns the first mock subcategory of mainType flagged default.
func (m *MockSubcategoryStore) FindDefault(_ context.Context, mainType models.MainCategoryType) (*models.Subcategory, error) {
	m.mu.Lock()
	m.findDefaultCalls++
	m.mu.Unlock()

	if m.FindDefaultError != nil {
		return nil, m.FindDefaultError
	}
	for i := range m.Subcategories {
		if m.Subcategories[i].MainCategoryType == mainType && m.Subcategories[i].IsDefault {
			sub := m.Subcategories[i]
			return &sub, nil
		}
	}
	return nil, nil
}

// FindAll returns a copy of the mock subcategories.
func (m *MockSubcategoryStore) FindAll(_ context.Context) ([]models.Subcategory, error) {
	if m.FindAllError != nil {
		return nil, m.FindAllError
	}
	return append([]models.Subcategory(nil), m.Subcategories...), nil
}

// Calls returns how many times FindByCategory and FindDefault were called.
func (m *MockSubcategoryStore) Calls() (findByCategory, findDefault int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findByCategoryCalls, m.findDefaultCalls
}

// MockMerchantStore is an in-memory merchant repository for tests.
type MockMerchantStore struct {
	Merchants    []models.Merchant
	FindAllError error

	mu    sync.Mutex
	calls int
}

// FindAll returns a copy of the mock merchants in slice order.
func (m *MockMerchantStore) FindAll(_ context.Context) ([]models.Merchant, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}
	return append([]models.Merchant(nil), m.Merchants...), nil
}

// Calls returns how many times FindAll was called.
func (m *MockMerchantStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
