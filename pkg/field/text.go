package field

// City returns the city field. City names are not validated.
func City() *Field {
	return MustNew(Definition{
		Name:      "city",
		ErrorText: "Not a valid city name",
		Role:      RoleCity,
	})
}

// ZipCode returns the draft schema's zipcode field. Postal codes are not
// validated.
func ZipCode() *Field {
	return MustNew(Definition{
		Name:      "zipcode",
		ErrorText: "Not a valid zip code",
		Role:      RolePostal,
	})
}

// PostalCode returns the final schema's postal_code field, which is
// deprecated and warns whenever it is set.
func PostalCode() *Field {
	return MustNew(Definition{
		Name:        "postal_code",
		ErrorText:   "Not a valid postal code",
		WarningText: "This field is deprecated and should no longer be used",
		Role:        RolePostal,
		Warnings:    Deprecated,
	})
}
