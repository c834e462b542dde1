// Package categorytree rebuilds the subcategory hierarchy from a flat list
// of parent references.
package categorytree

import (
	"sort"

	"fjacquet/ledger/internal/models"
)

// Build returns the root nodes of subs with their descendants nested.
// Siblings are ordered by DisplayOrder, ties keeping input order. A node
// with no children has a nil Children slice.
//
// A node already on the path from the root is not expanded a second time,
// so parent cycles reachable from a root terminate. Nodes that only form a
// cycle have no root ancestor and are left out.
func Build(subs []models.Subcategory) []models.CategoryTreeNode {
	byParent := make(map[string][]models.Subcategory, len(subs))
	for _, s := range subs {
		key := s.ParentKey()
		byParent[key] = append(byParent[key], s)
	}
	return resolve(byParent, "", make(map[string]struct{}))
}

// BuildForType is Build over the subcategories of one main category type.
func BuildForType(subs []models.Subcategory, mainType models.MainCategoryType) []models.CategoryTreeNode {
	filtered := make([]models.Subcategory, 0, len(subs))
	for _, s := range subs {
		if s.MainCategoryType == mainType {
			filtered = append(filtered, s)
		}
	}
	return Build(filtered)
}

func resolve(byParent map[string][]models.Subcategory, parentKey string, onPath map[string]struct{}) []models.CategoryTreeNode {
	bucket := byParent[parentKey]
	if len(bucket) == 0 {
		return nil
	}

	sorted := make([]models.Subcategory, len(bucket))
	copy(sorted, bucket)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})

	nodes := make([]models.CategoryTreeNode, 0, len(sorted))
	for _, s := range sorted {
		node := models.NewCategoryTreeNode(s)
		if _, seen := onPath[s.ID]; !seen {
			onPath[s.ID] = struct{}{}
			node.Children = resolve(byParent, s.ID, onPath)
			delete(onPath, s.ID)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// FlatNode is a tree node with its depth, roots being at depth 0.
type FlatNode struct {
	Depth int
	Node  models.CategoryTreeNode
}

// Flatten lists nodes and their descendants in depth-first pre-order.
func Flatten(nodes []models.CategoryTreeNode) []FlatNode {
	var out []FlatNode
	var walk func([]models.CategoryTreeNode, int)
	walk = func(level []models.CategoryTreeNode, depth int) {
		for _, n := range level {
			out = append(out, FlatNode{Depth: depth, Node: n})
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)
	return out
}

// Count returns the number of nodes in the forest.
func Count(nodes []models.CategoryTreeNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + Count(node.Children)
	}
	return n
}
