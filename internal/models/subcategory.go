package models

import "time"

// Subcategory is a node of the per-main-category classification hierarchy.
// It is seed data; the classification pipeline only reads it.
type Subcategory struct {
	ID               string           `json:"id" yaml:"id" db:"id"`
	MainCategoryType MainCategoryType `json:"categoryType" yaml:"category_type" db:"category_type"`
	Name             string           `json:"name" yaml:"name" db:"name"`
	ParentID         *string          `json:"parentId" yaml:"parent_id,omitempty" db:"parent_id"`
	DisplayOrder     int              `json:"displayOrder" yaml:"display_order" db:"display_order"`
	Icon             *string          `json:"icon,omitempty" yaml:"icon,omitempty" db:"icon"`
	Color            *string          `json:"color,omitempty" yaml:"color,omitempty" db:"color"`
	IsDefault        bool             `json:"isDefault" yaml:"is_default" db:"is_default"`
	IsActive         bool             `json:"isActive" yaml:"is_active" db:"is_active"`
	CreatedAt        time.Time        `json:"createdAt" yaml:"created_at,omitempty" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" yaml:"updated_at,omitempty" db:"updated_at"`
}

// IsRoot reports whether the subcategory has no parent.
func (s Subcategory) IsRoot() bool {
	return s.ParentID == nil || *s.ParentID == ""
}

// ParentKey returns the parent id, or "" for a root.
func (s Subcategory) ParentKey() string {
	if s.IsRoot() {
		return ""
	}
	return *s.ParentID
}

// StringPtr returns a pointer to s. Handy for optional fields in fixtures.
func StringPtr(s string) *string {
	return &s
}
