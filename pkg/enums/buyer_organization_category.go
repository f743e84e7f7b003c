package enums

import "fmt"

// BuyerOrganizationCategory is the canonical category of a buyer.
type BuyerOrganizationCategory string

const (
	BuyerCategorySpecializedGroceryStore BuyerOrganizationCategory = "specialized-grocery-store"
	BuyerCategoryRestaurant              BuyerOrganizationCategory = "restaurant"
	BuyerCategoryGroceryStore            BuyerOrganizationCategory = "grocery-store"
	BuyerCategoryArtisan                 BuyerOrganizationCategory = "artisan"
	BuyerCategoryInstitution             BuyerOrganizationCategory = "institution"
	BuyerCategoryCommunityOrganization   BuyerOrganizationCategory = "community-organization"
	BuyerCategoryDistributor             BuyerOrganizationCategory = "distributor"
	BuyerCategoryProducer                BuyerOrganizationCategory = "producer"
	BuyerCategoryEventFest               BuyerOrganizationCategory = "event-fest"
	BuyerCategoryPurchasingGroup         BuyerOrganizationCategory = "purchasing-group"
	BuyerCategoryConsumer                BuyerOrganizationCategory = "consumer"
)

// BuyerOrganizationCategories lists the canonical categories in display order.
var BuyerOrganizationCategories = []BuyerOrganizationCategory{
	BuyerCategorySpecializedGroceryStore,
	BuyerCategoryRestaurant,
	BuyerCategoryGroceryStore,
	BuyerCategoryArtisan,
	BuyerCategoryInstitution,
	BuyerCategoryCommunityOrganization,
	BuyerCategoryDistributor,
	BuyerCategoryProducer,
	BuyerCategoryEventFest,
	BuyerCategoryPurchasingGroup,
	BuyerCategoryConsumer,
}

// String implements fmt.Stringer.
func (c BuyerOrganizationCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is one of the canonical values.
func (c BuyerOrganizationCategory) IsValid() bool {
	for _, candidate := range BuyerOrganizationCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseRawBuyerOrganizationCategory maps the raw org_cat column value to its
// canonical category.
func ParseRawBuyerOrganizationCategory(raw string) (BuyerOrganizationCategory, error) {
	switch raw {
	case "specialized_grocery_store":
		return BuyerCategorySpecializedGroceryStore, nil
	case "restaurant":
		return BuyerCategoryRestaurant, nil
	case "grocery_store":
		return BuyerCategoryGroceryStore, nil
	case "artisan":
		return BuyerCategoryArtisan, nil
	case "institution":
		return BuyerCategoryInstitution, nil
	case "community_organization":
		return BuyerCategoryCommunityOrganization, nil
	case "distributor":
		return BuyerCategoryDistributor, nil
	case "producer":
		return BuyerCategoryProducer, nil
	case "event_fest":
		return BuyerCategoryEventFest, nil
	case "purchasing_group":
		return BuyerCategoryPurchasingGroup, nil
	case "consumer":
		return BuyerCategoryConsumer, nil
	default:
		return "", fmt.Errorf("invalid raw buyer organization category %q", raw)
	}
}

// TranslateBuyerOrganizationCategory returns the French display label.
func TranslateBuyerOrganizationCategory(c BuyerOrganizationCategory) string {
	switch c {
	case BuyerCategorySpecializedGroceryStore:
		return "Épicerie spécialisée"
	case BuyerCategoryRestaurant:
		return "Restaurant"
	case BuyerCategoryGroceryStore:
		return "Épicerie"
	case BuyerCategoryArtisan:
		return "Artisan"
	case BuyerCategoryInstitution:
		return "Institution"
	case BuyerCategoryCommunityOrganization:
		return "Organisme communautaire"
	case BuyerCategoryDistributor:
		return "Distributeur"
	case BuyerCategoryProducer:
		return "Agriculteur"
	case BuyerCategoryEventFest:
		return "Événement/festival"
	case BuyerCategoryPurchasingGroup:
		return "Groupe d'achat citoyen"
	case BuyerCategoryConsumer:
		return "Particulier"
	default:
		return string(c)
	}
}
