// Package store provides the file-backed repositories of subcategories,
// merchants and classification keywords.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// Default seed file names, looked up with FindConfigFile.
const (
	DefaultSubcategoriesFile = "subcategories.yaml"
	DefaultMerchantsFile     = "merchants.yaml"
	DefaultKeywordsFile      = "keywords.yaml"
)

// FindConfigFile looks for a configuration file in standard locations:
// the working directory, ./config, ./database and ~/.config/ledger.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "ledger", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// readSeedFile resolves and reads filename. A missing file yields nil data
// and no error so that an absent seed file reads as empty.
func readSeedFile(filename string, logger logging.Logger) ([]byte, string, error) {
	path, err := FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.WithField(logging.FieldFile, filename).Warn("Seed file not found")
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("error resolving %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, path, nil
}

// decodeSeedList decodes a seed document that is either a bare sequence or
// a mapping carrying the sequence under key. A mapping without key is an
// error so that a misspelled key never reads as an empty list.
func decodeSeedList(data []byte, key string, out any) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return root.Decode(out)
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == key {
				return root.Content[i+1].Decode(out)
			}
		}
		return fmt.Errorf("line %d: missing top-level %q key", root.Line, key)
	default:
		return fmt.Errorf("line %d: expected a list or a %q mapping", root.Line, key)
	}
}

// LoadSubcategories reads subcategories from a YAML file holding either a
// top-level "subcategories" list or a bare list.
func LoadSubcategories(filename string, logger logging.Logger) ([]models.Subcategory, error) {
	logger = logging.OrDefault(logger)
	data, path, err := readSeedFile(filename, logger)
	if err != nil || data == nil {
		return nil, err
	}

	var subs []models.Subcategory
	if err := decodeSeedList(data, "subcategories", &subs); err != nil {
		return nil, fmt.Errorf("error parsing subcategories file %s: %w", path, err)
	}

	if err := ValidateSubcategories(subs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(subs)},
	).Debug("Loaded subcategories")
	return subs, nil
}

// LoadMerchants reads merchants from a YAML file holding either a
// top-level "merchants" list or a bare list. File order is match priority.
func LoadMerchants(filename string, logger logging.Logger) ([]models.Merchant, error) {
	logger = logging.OrDefault(logger)
	data, path, err := readSeedFile(filename, logger)
	if err != nil || data == nil {
		return nil, err
	}

	var merchants []models.Merchant
	if err := decodeSeedList(data, "merchants", &merchants); err != nil {
		return nil, fmt.Errorf("error parsing merchants file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(merchants))
	for _, m := range merchants {
		if m.ID == "" {
			return nil, &domainerror.ValidationError{Field: "merchant.id", Value: m.Name, Err: errors.New("id is required")}
		}
		if _, dup := seen[m.ID]; dup {
			return nil, &domainerror.ValidationError{Field: "merchant.id", Value: m.ID, Err: errors.New("duplicate id")}
		}
		if err := m.ValidateNames(); err != nil {
			return nil, fmt.Errorf("%s: merchant %s: %w", path, m.ID, err)
		}
		seen[m.ID] = struct{}{}
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(merchants)},
	).Debug("Loaded merchants")
	return merchants, nil
}

// LoadKeywordConfig reads the keyword table, keyed by main category type
// and then subcategory id.
func LoadKeywordConfig(filename string, logger logging.Logger) (map[models.MainCategoryType]map[string][]string, error) {
	logger = logging.OrDefault(logger)
	data, path, err := readSeedFile(filename, logger)
	if err != nil || data == nil {
		return nil, err
	}

	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing keywords file %s: %w", path, err)
	}

	entries := make(map[models.MainCategoryType]map[string][]string, len(raw))
	count := 0
	for key, subs := range raw {
		mainType, err := models.ParseMainCategoryType(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		entries[mainType] = subs
		count += len(subs)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: count},
	).Debug("Loaded keyword configuration")
	return entries, nil
}

// ValidateSubcategories rejects unknown main category types and duplicate ids.
func ValidateSubcategories(subs []models.Subcategory) error {
	seen := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		if !s.MainCategoryType.IsValid() {
			return &domainerror.ValidationError{Field: "category_type", Value: string(s.MainCategoryType), Err: domainerror.ErrInvalidMainCategory}
		}
		if _, dup := seen[s.ID]; dup {
			return &domainerror.ValidationError{Field: "subcategory.id", Value: s.ID, Err: errors.New("duplicate id")}
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// SubcategoryStore serves subcategories from a YAML seed file, loaded on
// first use.
type SubcategoryStore struct {
	File   string
	logger logging.Logger

	once sync.Once
	subs []models.Subcategory
	err  error
}

// NewSubcategoryStore creates a SubcategoryStore reading file.
func NewSubcategoryStore(file string, logger logging.Logger) *SubcategoryStore {
	if file == "" {
		file = DefaultSubcategoriesFile
	}
	return &SubcategoryStore{File: file, logger: logging.OrDefault(logger)}
}

// NewSubcategoryStoreFrom serves an in-memory subcategory list.
func NewSubcategoryStoreFrom(subs []models.Subcategory) *SubcategoryStore {
	s := &SubcategoryStore{logger: logging.GetLogger()}
	s.once.Do(func() { s.subs = append([]models.Subcategory(nil), subs...) })
	return s
}

func (s *SubcategoryStore) load() ([]models.Subcategory, error) {
	s.once.Do(func() {
		s.subs, s.err = LoadSubcategories(s.File, s.logger)
	})
	if s.err != nil {
		return nil, &domainerror.StoreError{Op: "load subcategories", Err: s.err}
	}
	return s.subs, nil
}

// FindByCategory returns the active subcategories of mainType in file order.
func (s *SubcategoryStore) FindByCategory(ctx context.Context, mainType models.MainCategoryType) ([]models.Subcategory, error) {
	subs, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []models.Subcategory
	for _, sub := range subs {
		if sub.MainCategoryType == mainType && sub.IsActive {
			out = append(out, sub)
		}
	}
	return out, nil
}

// FindDefault returns the first subcategory of mainType flagged default,
// or nil when there is none.
func (s *SubcategoryStore) FindDefault(ctx context.Context, mainType models.MainCategoryType) (*models.Subcategory, error) {
	subs, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].MainCategoryType == mainType && subs[i].IsDefault {
			sub := subs[i]
			return &sub, nil
		}
	}
	return nil, nil
}

// FindAll returns every subcategory, active or not.
func (s *SubcategoryStore) FindAll(ctx context.Context) ([]models.Subcategory, error) {
	subs, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]models.Subcategory(nil), subs...), nil
}

// MerchantStore serves merchants from a YAML seed file, loaded on first use.
type MerchantStore struct {
	File   string
	logger logging.Logger

	once      sync.Once
	merchants []models.Merchant
	err       error
}

// NewMerchantStore creates a MerchantStore reading file.
func NewMerchantStore(file string, logger logging.Logger) *MerchantStore {
	if file == "" {
		file = DefaultMerchantsFile
	}
	return &MerchantStore{File: file, logger: logging.OrDefault(logger)}
}

// FindAll returns the merchants in file order.
func (s *MerchantStore) FindAll(ctx context.Context) ([]models.Merchant, error) {
	s.once.Do(func() {
		s.merchants, s.err = LoadMerchants(s.File, s.logger)
	})
	if s.err != nil {
		return nil, &domainerror.StoreError{Op: "load merchants", Err: s.err}
	}
	return append([]models.Merchant(nil), s.merchants...), nil
}
