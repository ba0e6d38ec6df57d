package fakers

import (
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/shopspring/decimal"
)

type partSpec struct {
	name, partNumber, category string
	price, mrp                 int64
	stock                      int
}

var demoParts = []partSpec{
	{"Hydraulic Filter Element", "ACE-HF-1021", "filters", 1450, 1699, 40},
	{"Engine Oil Filter", "ACE-OF-2210", "filters", 420, 499, 120},
	{"Air Filter Primary", "ACE-AF-3302", "filters", 1890, 2199, 35},
	{"Fuel Water Separator", "ACE-FS-4410", "filters", 980, 1150, 50},
	{"Boom Cylinder Seal Kit", "ACE-SK-5120", "hydraulics", 3250, 3799, 18},
	{"Hydraulic Pump Assembly", "ACE-HP-6001", "hydraulics", 48500, 54999, 4},
	{"Brake Pad Set", "ACE-BP-7105", "brakes", 2650, 2999, 26},
	{"Fan Belt", "ACE-FB-8012", "engine", 760, 899, 60},
	{"Radiator Hose Upper", "ACE-RH-8120", "engine", 1120, 1299, 22},
	{"Alternator 24V", "ACE-AL-9020", "electrical", 12800, 14500, 7},
	{"Starter Motor 24V", "ACE-SM-9031", "electrical", 15400, 17250, 5},
	{"Bucket Tooth Point", "ACE-BT-1180", "undercarriage", 640, 749, 200},
}

// CatalogProducts returns the fixed demo catalog of genuine parts.
func CatalogProducts() []models.Product {
	products := make([]models.Product, 0, len(demoParts))
	for _, p := range demoParts {
		products = append(products, models.Product{
			Name:          p.name,
			PartNumber:    p.partNumber,
			Description:   p.name + " for ACE cranes and construction equipment.",
			Category:      p.category,
			Brand:         "ACE",
			Price:         decimal.NewFromInt(p.price),
			MRP:           decimal.NewFromInt(p.mrp),
			StockQuantity: p.stock,
			Rating:        decimal.NewFromFloat(4.5),
			IsActive:      true,
		})
	}
	return products
}
