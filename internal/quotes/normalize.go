package quotes

import "strings"

// AddressParts is the structured decomposition stored on the customer
// record.
type AddressParts struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// SplitFullName splits a free-text name on the first whitespace run:
// the first token becomes the first name, the remainder the last name.
// A single-token name is stored as both first and last name.
func SplitFullName(fullName string) (firstName, lastName string) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "", ""
	}
	firstName = fields[0]
	lastName = strings.Join(fields[1:], " ")
	if lastName == "" {
		lastName = firstName
	}
	return firstName, lastName
}

// DecomposeAddress maps the free-text service address to storable
// parts. No structural parsing happens here: the street field carries
// the raw string and city/state/zip stay as placeholders until an
// address-parsing integration exists.
// TODO: replace placeholders once a geocoding provider is wired in.
func DecomposeAddress(serviceAddress string) AddressParts {
	return AddressParts{
		Street:  serviceAddress,
		City:    "Unknown",
		State:   "Unknown",
		Zip:     "Unknown",
		Country: "USA",
	}
}
