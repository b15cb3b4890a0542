package quotes

// ServiceOther is the catalog entry that requires a free-text
// description on submission.
const ServiceOther = "Other"

// ServiceCatalog is the fixed list of offerings shown on the public
// quote form. Submissions are stored as-is; membership is not
// enforced server-side.
var ServiceCatalog = []string{
	"Junk Removal",
	"Furniture Removal",
	"Appliance Removal",
	"Yard Waste Removal",
	"Construction Debris Removal",
	"Estate Cleanout",
	"Garage Cleanout",
	"Hoarding Cleanup",
	"E-Waste Disposal",
	"Donation Pickup",
	ServiceOther,
}

func containsService(services []string, name string) bool {
	for _, s := range services {
		if s == name {
			return true
		}
	}
	return false
}
