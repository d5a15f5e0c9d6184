// Package catalog serves the studio's static service list and gallery.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// CategoryAll selects every gallery item.
const CategoryAll = "all"

type Service struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Images      []string `yaml:"images" json:"images"`
	Features    []string `yaml:"features" json:"features"`
}

type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

type GalleryItem struct {
	ID        string           `yaml:"id" json:"id"`
	Title     string           `yaml:"title" json:"title"`
	Image     string           `yaml:"image" json:"image"`
	Category  string           `yaml:"category" json:"category"`
	ServiceID string           `yaml:"serviceId" json:"serviceId"`
	Price     *decimal.Decimal `yaml:"-" json:"price"`
	RawPrice  string           `yaml:"price" json:"-"`
}

type Catalog struct {
	services   []Service
	categories []Category
	gallery    []GalleryItem

	byService map[string]int
	byGallery map[string]int
}

type document struct {
	Services   []Service     `yaml:"services"`
	Categories []Category    `yaml:"categories"`
	Gallery    []GalleryItem `yaml:"gallery"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog document and checks its references.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		services:   doc.Services,
		categories: doc.Categories,
		byService:  make(map[string]int, len(doc.Services)),
		byGallery:  make(map[string]int, len(doc.Gallery)),
	}
	for i, s := range doc.Services {
		if s.ID == "" {
			return nil, fmt.Errorf("catalog: service #%d has no id", i)
		}
		if _, dup := c.byService[s.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate service %q", s.ID)
		}
		c.byService[s.ID] = i
	}

	known := make(map[string]struct{}, len(doc.Categories))
	for _, cat := range doc.Categories {
		known[cat.ID] = struct{}{}
	}

	for _, item := range doc.Gallery {
		if _, dup := c.byGallery[item.ID]; dup || item.ID == "" {
			return nil, fmt.Errorf("catalog: gallery item %q missing or duplicated", item.ID)
		}

		if _, ok := c.byService[item.ServiceID]; !ok {
			return nil, fmt.Errorf("catalog: gallery item %q references unknown service %q", item.ID, item.ServiceID)
		}
		if _, ok := known[item.Category]; !ok {
			return nil, fmt.Errorf("catalog: gallery item %q has unknown category %q", item.ID, item.Category)
		}
		if item.RawPrice != "" {
			p, err := decimal.NewFromString(item.RawPrice)
			if err != nil || p.IsNegative() {
				return nil, fmt.Errorf("catalog: gallery item %q has invalid price %q", item.ID, item.RawPrice)
			}
			item.Price = &p
		}
		c.byGallery[item.ID] = len(c.gallery)
		c.gallery = append(c.gallery, item)
	}

	return c, nil
}

func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

func (c *Catalog) Service(id string) (Service, bool) {
	i, ok := c.byService[id]
	if !ok {
		return Service{}, false
	}
	return c.services[i], true
}

// HasService is used by the design wizard to validate the chosen service.
func (c *Catalog) HasService(id string) bool {
	_, ok := c.byService[id]
	return ok
}

// GalleryItem looks up a gallery entry by id. The cart takes titles and
// prices from here, never from the client.
func (c *Catalog) GalleryItem(id string) (GalleryItem, bool) {
	i, ok := c.byGallery[id]
	if !ok {
		return GalleryItem{}, false
	}
	return c.gallery[i], true
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Gallery filters by category. Empty or CategoryAll returns everything; an
// unknown category returns an empty list.
func (c *Catalog) Gallery(category string) []GalleryItem {
	out := make([]GalleryItem, 0, len(c.gallery))
	for _, item := range c.gallery {
		if category == "" || category == CategoryAll || item.Category == category {
			out = append(out, item)
		}
	}
	return out
}
