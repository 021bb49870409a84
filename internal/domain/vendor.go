package domain

// ResolutionMethod records how the provider account for a payment was chosen.
type ResolutionMethod string

const (
	ResolutionChannelDefault ResolutionMethod = "channel-default"
	ResolutionVendorSpecific ResolutionMethod = "vendor-specific"
)

// VendorResolution is returned when a marketplace vendor with its own provider
// account handles the payment. Absence of a resolution (a nil pointer) means
// the channel's default account applies; it is never modeled as an empty
// account id.
type VendorResolution struct {
	VendorID          string
	ProviderAccountID string
	Method            ResolutionMethod
}
