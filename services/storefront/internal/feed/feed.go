// Package feed renders products as a Google Merchant Center RSS 2.0 feed.
package feed

import (
	"bytes"
	"fmt"

	"github.com/vinabike/storefront/services/storefront/internal/domain"
)

const (
	ConditionNew      = "new"
	AvailabilityIn    = "in stock"
	AvailabilityOut   = "out of stock"
	placeholderImage  = "/images/placeholder.jpg"
	productPathPrefix = "/products/"
)

type Channel struct {
	Title       string
	Link        string
	Description string
}

// Defaults fill item fields the product row leaves empty.
type Defaults struct {
	Brand           string
	ProductCategory string
	Currency        string
}

type Item struct {
	ID              string
	Title           string
	Description     string
	Link            string
	ImageLink       string
	Availability    string
	Price           string
	Brand           string
	GTIN            string
	MPN             string
	ProductType     string
	ProductCategory string
}

// NewItem derives the feed entry for p. storeURL is the channel link.
func NewItem(p *domain.Product, storeURL string, d Defaults) Item {
	availability := AvailabilityOut
	if p.InStock() {
		availability = AvailabilityIn
	}

	return Item{
		ID:              p.ID,
		Title:           p.Name,
		Description:     domain.FirstNonEmpty(domain.Text(p.WebsiteDescription), domain.Text(p.Description), p.Name),
		Link:            storeURL + productPathPrefix + p.ID,
		ImageLink:       domain.FirstNonEmpty(domain.Text(p.ImageURL), storeURL+placeholderImage),
		Availability:    availability,
		Price:           fmt.Sprintf("%s %s", p.Price.String(), d.Currency),
		Brand:           domain.FirstNonEmpty(domain.Text(p.Brand), d.Brand),
		GTIN:            domain.Text(p.Barcode),
		MPN:             domain.Text(p.SKU),
		ProductType:     domain.Text(p.Category),
		ProductCategory: d.ProductCategory,
	}
}

// Render writes the whole document. Every text node is escaped; gtin and
// product_type are omitted when empty.
func Render(ch Channel, products []domain.Product, d Defaults) []byte {
	var b bytes.Buffer

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">` + "\n")
	b.WriteString("  <channel>\n")
	writeElement(&b, "    ", "title", ch.Title)
	writeElement(&b, "    ", "link", ch.Link)
	writeElement(&b, "    ", "description", ch.Description)

	for i := range products {
		writeItem(&b, NewItem(&products[i], ch.Link, d))
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")

	return b.Bytes()
}

func writeItem(b *bytes.Buffer, it Item) {
	const indent = "      "

	b.WriteString("    <item>\n")
	writeElement(b, indent, "g:id", it.ID)
	writeElement(b, indent, "g:title", it.Title)
	writeElement(b, indent, "g:description", it.Description)
	writeElement(b, indent, "g:link", it.Link)
	writeElement(b, indent, "g:image_link", it.ImageLink)
	writeElement(b, indent, "g:condition", ConditionNew)
	writeElement(b, indent, "g:availability", it.Availability)
	writeElement(b, indent, "g:price", it.Price)
	writeElement(b, indent, "g:brand", it.Brand)
	if it.GTIN != "" {
		writeElement(b, indent, "g:gtin", it.GTIN)
	}
	writeElement(b, indent, "g:mpn", it.MPN)
	if it.ProductType != "" {
		writeElement(b, indent, "g:product_type", it.ProductType)
	}
	writeElement(b, indent, "g:google_product_category", it.ProductCategory)
	b.WriteString("    </item>\n")
}

func writeElement(b *bytes.Buffer, indent, name, text string) {
	b.WriteString(indent)
	b.WriteString("<" + name + ">")
	b.WriteString(Escape(text))
	b.WriteString("</" + name + ">\n")
}
