package enums

import "testing"

func TestParseRawVendorProductCategoryCoversRawList(t *testing.T) {
	for _, raw := range RawVendorProductCategories {
		canonical, ok, err := ParseRawVendorProductCategory(raw)
		if err != nil {
			t.Fatalf("raw category %q should map, got error %v", raw, err)
		}
		if raw == "non_food_products" {
			if ok {
				t.Fatalf("non_food_products must be excluded from canonical emission")
			}
			continue
		}
		if !ok || !canonical.IsValid() {
			t.Fatalf("raw category %q mapped to invalid canonical %q", raw, canonical)
		}
	}
}

func TestAlcoholVariantsCollapseToDrink(t *testing.T) {
	for _, raw := range []string{"alcohol_free_drink", "alcohol_below_18_drink", "alcohol_above_18_drink"} {
		canonical, ok, err := ParseRawVendorProductCategory(raw)
		if err != nil || !ok {
			t.Fatalf("%q should map: ok=%v err=%v", raw, ok, err)
		}
		if canonical != VendorProductCategoryDrink {
			t.Fatalf("%q should map to drink, got %q", raw, canonical)
		}
	}
}

func TestParseRawVendorProductCategoryRejectsUnknown(t *testing.T) {
	if _, _, err := ParseRawVendorProductCategory("software"); err == nil {
		t.Fatalf("expected error for unknown raw category")
	}
}

func TestParseRawBuyerOrganizationCategory(t *testing.T) {
	got, err := ParseRawBuyerOrganizationCategory("purchasing_group")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != BuyerCategoryPurchasingGroup {
		t.Fatalf("unexpected category: %q", got)
	}
	if _, err := ParseRawBuyerOrganizationCategory("alien"); err == nil {
		t.Fatalf("expected error for unknown buyer category")
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		parsed, err := ParseOrderStatus(string(status))
		if err != nil || parsed != status {
			t.Fatalf("status %q should round-trip, got %q err=%v", status, parsed, err)
		}
	}
	if _, err := ParseOrderStatus("teleported"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestParseDistributionMode(t *testing.T) {
	if _, err := ParseDistributionMode("teleport"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	mode, err := ParseDistributionMode("pickup")
	if err != nil || mode != DistributionModePickup {
		t.Fatalf("pickup should parse, got %q err=%v", mode, err)
	}
}

func TestParseLanguage(t *testing.T) {
	if _, err := ParseLanguage("de"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
	lang, err := ParseLanguage("fr")
	if err != nil || lang != LanguageFrench {
		t.Fatalf("fr should parse, got %q err=%v", lang, err)
	}
}
