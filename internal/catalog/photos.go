package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/pkg/enums"
)

// Photo is a single print offered in the gallery. Prices hold the unframed
// print price for each available size.
type Photo struct {
	ID          int
	Title       string
	Category    string
	Description string
	Image       string
	Featured    bool
	Prices      map[enums.PrintSize]decimal.Decimal
}

// PriceFor returns the unframed print price for the given size.
func (p Photo) PriceFor(size enums.PrintSize) (decimal.Decimal, bool) {
	price, ok := p.Prices[size]
	return price, ok
}

// StartingPrice returns the lowest listed price, used for "From $X" labels.
func (p Photo) StartingPrice() decimal.Decimal {
	lowest := decimal.Zero
	first := true
	for _, price := range p.Prices {
		if first || price.LessThan(lowest) {
			lowest = price
			first = false
		}
	}
	return lowest
}

func prices(small, medium, large, extraLarge string) map[enums.PrintSize]decimal.Decimal {
	return map[enums.PrintSize]decimal.Decimal{
		enums.PrintSizeSmall:      decimal.RequireFromString(small),
		enums.PrintSizeMedium:     decimal.RequireFromString(medium),
		enums.PrintSizeLarge:      decimal.RequireFromString(large),
		enums.PrintSizeExtraLarge: decimal.RequireFromString(extraLarge),
	}
}

const (
	categoryLandscape = "Landscape"
	categoryWildlife  = "Wildlife"
	categoryPrairie   = "Prairie"
	categoryNightSky  = "Night Sky"
)

// photos is the gallery. The storefront is a small curated collection, so the
// catalog ships compiled in rather than living in the database.
var photos = []Photo{
	{
		ID:          1,
		Title:       "Morning Mist at Eagle Lake",
		Category:    categoryLandscape,
		Description: "Dawn fog lifting off the water east of Strathmore.",
		Image:       "https://images.lisatphotography.com/morning-mist-eagle-lake.jpg",
		Featured:    true,
		Prices:      prices("15.00", "25.00", "45.00", "65.00"),
	},
	{
		ID:          2,
		Title:       "Harvest Gold",
		Category:    categoryPrairie,
		Description: "Canola fields in full bloom under a July sky.",
		Image:       "https://images.lisatphotography.com/harvest-gold.jpg",
		Featured:    true,
		Prices:      prices("15.00", "25.00", "45.00", "65.00"),
	},
	{
		ID:          3,
		Title:       "Rocky Mountain Alpenglow",
		Category:    categoryLandscape,
		Description: "Last light on the peaks above Kananaskis Country.",
		Image:       "https://images.lisatphotography.com/rocky-mountain-alpenglow.jpg",
		Featured:    true,
		Prices:      prices("18.00", "30.00", "50.00", "75.00"),
	},
	{
		ID:          4,
		Title:       "Great Horned Owl",
		Category:    categoryWildlife,
		Description: "Alberta's provincial bird at dusk, photographed near Wyndham-Carseland.",
		Image:       "https://images.lisatphotography.com/great-horned-owl.jpg",
		Featured:    false,
		Prices:      prices("18.00", "30.00", "50.00", "75.00"),
	},
	{
		ID:          5,
		Title:       "Prairie Thunderhead",
		Category:    categoryPrairie,
		Description: "A supercell building over open grassland.",
		Image:       "https://images.lisatphotography.com/prairie-thunderhead.jpg",
		Featured:    true,
		Prices:      prices("15.00", "25.00", "45.00", "65.00"),
	},
	{
		ID:          6,
		Title:       "Aurora Over the Bow",
		Category:    categoryNightSky,
		Description: "Northern lights reflected in the Bow River.",
		Image:       "https://images.lisatphotography.com/aurora-over-the-bow.jpg",
		Featured:    false,
		Prices:      prices("20.00", "35.00", "55.00", "80.00"),
	},
	{
		ID:          7,
		Title:       "Winter Fox",
		Category:    categoryWildlife,
		Description: "A red fox hunting through fresh snow.",
		Image:       "https://images.lisatphotography.com/winter-fox.jpg",
		Featured:    false,
		Prices:      prices("18.00", "30.00", "50.00", "75.00"),
	},
	{
		ID:          8,
		Title:       "Grain Elevator at Dusk",
		Category:    categoryPrairie,
		Description: "One of the last wooden elevators still standing on the line.",
		Image:       "https://images.lisatphotography.com/grain-elevator-at-dusk.jpg",
		Featured:    false,
		Prices:      prices("15.00", "25.00", "45.00", "65.00"),
	},
	{
		ID:          9,
		Title:       "Milky Way Rising",
		Category:    categoryNightSky,
		Description: "The galactic core over badlands hoodoos.",
		Image:       "https://images.lisatphotography.com/milky-way-rising.jpg",
		Featured:    false,
		Prices:      prices("20.00", "35.00", "55.00", "80.00"),
	},
	{
		ID:          10,
		Title:       "Chinook Arch",
		Category:    categoryLandscape,
		Description: "The warm wind's signature cloud band over the foothills.",
		Image:       "https://images.lisatphotography.com/chinook-arch.jpg",
		Featured:    false,
		Prices:      prices("15.00", "25.00", "45.00", "65.00"),
	},
}
