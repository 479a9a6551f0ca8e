package registry

// SearchResponse is the registry's company search envelope, consumed as-is
// from the open-data API.
type SearchResponse struct {
	TotalResults int       `json:"totalResults"`
	Companies    []Company `json:"companies"`
}

// Company is one registration record in a search response.
type Company struct {
	BusinessID string    `json:"businessId"`
	Names      []Name    `json:"names"`
	Addresses  []Address `json:"addresses"`
}

// NameOfficial tags the current official name in a company's name history.
const NameOfficial = 1

// Name is one entry in a company's name history. A nil EndDate marks the
// entry as currently active.
type Name struct {
	Type    int     `json:"type"`
	Name    string  `json:"name"`
	EndDate *string `json:"endDate"`
}

// Address types used by the registry.
const (
	AddressVisiting = 1
	AddressPostal   = 2
)

// LanguageFinnish selects Finnish-language post office (city) entries.
const LanguageFinnish = 1

// Address is a visiting or postal address entry on a company record.
type Address struct {
	Type            int          `json:"type"`
	Street          string       `json:"street"`
	BuildingNumber  string       `json:"buildingNumber"`
	Entrance        string       `json:"entrance"`
	ApartmentNumber string       `json:"apartmentNumber"`
	PostCode        string       `json:"postCode"`
	CareOf          string       `json:"co"`
	PostOfficeBox   string       `json:"postOfficeBox"`
	PostOffices     []PostOffice `json:"postOffices"`
}

// PostOffice is a localized city name tied to a postal code.
type PostOffice struct {
	LanguageCode int    `json:"languageCode"`
	City         string `json:"city"`
}
