package models

import "time"

// CategoryTreeNode is a Subcategory rendered with its nested children.
// Children is nil, never empty, when the node has no children, so the field
// disappears from JSON and YAML output.
type CategoryTreeNode struct {
	ID               string             `json:"id" yaml:"id"`
	MainCategoryType MainCategoryType   `json:"categoryType" yaml:"category_type"`
	Name             string             `json:"name" yaml:"name"`
	ParentID         *string            `json:"parentId" yaml:"parent_id"`
	DisplayOrder     int                `json:"displayOrder" yaml:"display_order"`
	Icon             *string            `json:"icon" yaml:"icon"`
	Color            *string            `json:"color" yaml:"color"`
	IsDefault        bool               `json:"isDefault" yaml:"is_default"`
	IsActive         bool               `json:"isActive" yaml:"is_active"`
	CreatedAt        string             `json:"createdAt" yaml:"created_at"`
	UpdatedAt        string             `json:"updatedAt" yaml:"updated_at"`
	Children         []CategoryTreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewCategoryTreeNode copies s into a childless node.
func NewCategoryTreeNode(s Subcategory) CategoryTreeNode {
	return CategoryTreeNode{
		ID:               s.ID,
		MainCategoryType: s.MainCategoryType,
		Name:             s.Name,
		ParentID:         s.ParentID,
		DisplayOrder:     s.DisplayOrder,
		Icon:             s.Icon,
		Color:            s.Color,
		IsDefault:        s.IsDefault,
		IsActive:         s.IsActive,
		CreatedAt:        formatTimestamp(s.CreatedAt),
		UpdatedAt:        formatTimestamp(s.UpdatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
