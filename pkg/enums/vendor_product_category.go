package enums

import "fmt"

// VendorProductCategory is the canonical product category of a vendor.
type VendorProductCategory string

const (
	VendorProductCategoryVegetableFruit   VendorProductCategory = "vegetable-fruit"
	VendorProductCategoryMeat             VendorProductCategory = "meat"
	VendorProductCategoryProcessedProduct VendorProductCategory = "processed-product"
	VendorProductCategoryMapleHoney       VendorProductCategory = "maple-honey"
	VendorProductCategoryBread            VendorProductCategory = "bread"
	VendorProductCategoryDairy            VendorProductCategory = "dairy"
	VendorProductCategoryWildProduct      VendorProductCategory = "wild-product"
	VendorProductCategorySeafood          VendorProductCategory = "seafood"
	VendorProductCategoryOilsAndVinegars  VendorProductCategory = "oils-and-vinegars"
	VendorProductCategoryDrink            VendorProductCategory = "drink"
)

// VendorProductCategories lists the canonical categories in display order.
var VendorProductCategories = []VendorProductCategory{
	VendorProductCategoryVegetableFruit,
	VendorProductCategoryMeat,
	VendorProductCategoryProcessedProduct,
	VendorProductCategoryMapleHoney,
	VendorProductCategoryBread,
	VendorProductCategoryDairy,
	VendorProductCategoryWildProduct,
	VendorProductCategorySeafood,
	VendorProductCategoryOilsAndVinegars,
	VendorProductCategoryDrink,
}

// RawVendorProductCategories lists the raw CSV column names scanned on each
// vendor row. Note non_food_products is recognized as a column but excluded
// from canonical emission (the dataset has a single order under it).
var RawVendorProductCategories = []string{
	"vegetable_fruit",
	"meat",
	"processed_product",
	"maple_honey",
	"bread",
	"dairy",
	"wild_product",
	"seafood",
	"oils_and_vinegars",
	"alcohol_free_drink",
	"alcohol_below_18_drink",
	"alcohol_above_18_drink",
	"non_food_products",
}

// String implements fmt.Stringer.
func (c VendorProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is one of the canonical values.
func (c VendorProductCategory) IsValid() bool {
	for _, candidate := range VendorProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseRawVendorProductCategory maps a raw CSV column name to its canonical
// category. The three alcohol variants collapse into drink because each is
// too small to chart on its own. non_food_products maps to the empty
// category with ok=false to signal exclusion without invalidating the row.
func ParseRawVendorProductCategory(raw string) (VendorProductCategory, bool, error) {
	switch raw {
	case "vegetable_fruit":
		return VendorProductCategoryVegetableFruit, true, nil
	case "meat":
		return VendorProductCategoryMeat, true, nil
	case "processed_product":
		return VendorProductCategoryProcessedProduct, true, nil
	case "maple_honey":
		return VendorProductCategoryMapleHoney, true, nil
	case "bread":
		return VendorProductCategoryBread, true, nil
	case "dairy":
		return VendorProductCategoryDairy, true, nil
	case "wild_product":
		return VendorProductCategoryWildProduct, true, nil
	case "seafood":
		return VendorProductCategorySeafood, true, nil
	case "oils_and_vinegars":
		return VendorProductCategoryOilsAndVinegars, true, nil
	case "alcohol_free_drink", "alcohol_below_18_drink", "alcohol_above_18_drink":
		return VendorProductCategoryDrink, true, nil
	case "non_food_products":
		return "", false, nil
	default:
		return "", false, fmt.Errorf("invalid raw product category %q", raw)
	}
}

// TranslateVendorProductCategory returns the French display label the
// rendering layer shows.
func TranslateVendorProductCategory(c VendorProductCategory) string {
	switch c {
	case VendorProductCategoryVegetableFruit:
		return "Fruits et légumes"
	case VendorProductCategoryMeat:
		return "Viandes"
	case VendorProductCategoryProcessedProduct:
		return "Produits transformés"
	case VendorProductCategoryMapleHoney:
		return "Sirop d’érable et miel"
	case VendorProductCategoryBread:
		return "Pains et pâtisseries"
	case VendorProductCategoryDairy:
		return "Produits laitiers"
	case VendorProductCategoryWildProduct:
		return "Produits sauvages"
	case VendorProductCategorySeafood:
		return "Produits de la mer"
	case VendorProductCategoryOilsAndVinegars:
		return "Huiles et vinaigres"
	case VendorProductCategoryDrink:
		return "Boissons"
	default:
		return string(c)
	}
}
