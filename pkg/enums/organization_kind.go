package enums

// OrganizationKind discriminates the organization variants.
type OrganizationKind string

const (
	OrganizationKindVendor OrganizationKind = "vendor"
	OrganizationKindBuyer  OrganizationKind = "buyer"
)

// String implements fmt.Stringer.
func (k OrganizationKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is recognized.
func (k OrganizationKind) IsValid() bool {
	return k == OrganizationKindVendor || k == OrganizationKindBuyer
}
