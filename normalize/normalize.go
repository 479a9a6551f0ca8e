// Package normalize flattens heterogeneous registry company records into
// fixed-shape output rows.
package normalize

import (
	"strings"

	"github.com/norppasoft/ytjbatch/registry"
)

// Record is one flattened company row. Optional fields are nil pointers
// when the registry record has no matching entry, never empty strings.
type Record struct {
	BusinessID       string
	Name             *string
	VisitingCareOf   *string
	VisitingStreet   *string
	VisitingPostCode *string
	VisitingCity     *string
	PostalCareOf     *string
	PostalPostbox    *string
	PostalStreet     *string
	PostalPostCode   *string
	PostalCity       *string
}

// Normalize flattens a company record. It is pure and total: a missing name
// or address degrades to nil fields, never an error. The caller has already
// established that the record exists.
func Normalize(company *registry.Company) Record {
	rec := Record{
		BusinessID: company.BusinessID,
		Name:       currentName(company.Names),
	}

	if addr := findAddress(company.Addresses, registry.AddressVisiting); addr != nil {
		rec.VisitingCareOf = optional(addr.CareOf)
		rec.VisitingStreet = ptr(streetLine(addr))
		rec.VisitingPostCode = optional(addr.PostCode)
		rec.VisitingCity = finnishCity(addr.PostOffices)
	}

	if addr := findAddress(company.Addresses, registry.AddressPostal); addr != nil {
		rec.PostalCareOf = optional(addr.CareOf)
		if addr.PostOfficeBox != "" {
			rec.PostalPostbox = ptr("PL " + addr.PostOfficeBox)
		}
		rec.PostalStreet = ptr(streetLine(addr))
		rec.PostalPostCode = optional(addr.PostCode)
		rec.PostalCity = finnishCity(addr.PostOffices)
	}

	return rec
}

// currentName selects the active official name: type 1 with no end date.
// Companies in edge data may carry only expired names; that yields nil.
func currentName(names []registry.Name) *string {
	for _, n := range names {
		if n.Type == registry.NameOfficial && n.EndDate == nil {
			return ptr(n.Name)
		}
	}
	return nil
}

// findAddress returns the first address of the given type, or nil.
func findAddress(addrs []registry.Address, addrType int) *registry.Address {
	for i := range addrs {
		if addrs[i].Type == addrType {
			return &addrs[i]
		}
	}
	return nil
}

// streetLine joins the street segments with single spaces. Empty segments
// stay in place, so the line can contain doubled or trailing spaces.
// Downstream CSV consumers depend on the exact spacing; do not collapse it.
func streetLine(addr *registry.Address) string {
	return strings.Join([]string{
		addr.Street,
		addr.BuildingNumber,
		addr.Entrance,
		addr.ApartmentNumber,
	}, " ")
}

// finnishCity selects the Finnish-language post office entry, or nil.
func finnishCity(offices []registry.PostOffice) *string {
	for _, po := range offices {
		if po.LanguageCode == registry.LanguageFinnish {
			return ptr(po.City)
		}
	}
	return nil
}

func ptr(s string) *string {
	return &s
}

// optional maps the registry's absent-field convention (empty string after
// decoding) to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
