package repository_test

import (
	"github.com/shopspring/decimal"
)

func (s *RepositorySuite) TestListListed_FiltersAndOrders() {
	s.seedProduct("Zeta Bike", "250000.00", 3, true)
	s.seedProduct("Alpha Helmet", "19990.50", 1, true)
	s.seedProduct("Hidden Pump", "9990", 5, false)
	s.seedProduct("Sold Out Light", "4990", 0, true)

	products, err := s.Products.ListListed(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 2)

	s.Equal("Alpha Helmet", products[0].Name)
	s.Equal("Zeta Bike", products[1].Name)

	s.True(decimal.RequireFromString("19990.5").Equal(products[0].Price))
	s.Equal("250000", products[1].Price.String())
	s.Nil(products[0].Description)
	s.Require().NotNil(products[0].SKU)
	s.Equal("SKU-Alpha Helmet", *products[0].SKU)

	for _, p := range products {
		s.True(p.ShowOnWebsite)
		s.Positive(p.StockQuantity)
	}
}

func (s *RepositorySuite) TestListListed_Empty() {
	products, err := s.Products.ListListed(s.Ctx)
	s.Require().NoError(err)
	s.Empty(products)
}
