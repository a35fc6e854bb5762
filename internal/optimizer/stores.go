package optimizer

// StoreCatalog maps store names to their static descriptions. The catalog
// is deliberately small and hand-curated: the assignment heuristic only
// needs store type, address, and an average visit time, which change
// rarely enough that a lookup table beats a live dependency.
type StoreCatalog map[string]StoreInfo

// DefaultStoreCatalog returns the built-in Milwaukee store set.
func DefaultStoreCatalog() StoreCatalog {
	return StoreCatalog{
		"Pick 'n Save": {
			Name:            "Pick 'n Save",
			Type:            StoreMainstream,
			Address:         "3801 W Wisconsin Ave, Milwaukee, WI 53208",
			ShoppingMinutes: 25,
			Specialties:     []string{"general", "pantry", "fresh", "dairy"},
		},
		"Metro Market": {
			Name:            "Metro Market",
			Type:            StoreMainstream,
			Address:         "1123 N Van Buren St, Milwaukee, WI 53202",
			ShoppingMinutes: 20,
			Specialties:     []string{"premium", "organic", "fresh", "prepared"},
		},
		"Asian International Market": {
			Name:            "Asian International Market",
			Type:            StoreEthnic,
			Address:         "3401 W National Ave, Milwaukee, WI 53215",
			ShoppingMinutes: 15,
			Specialties:     []string{"asian", "dashi", "miso", "specialty-sauces", "noodles"},
		},
		"Aldi": {
			Name:            "Aldi",
			Type:            StoreMainstream,
			Address:         "2100 N Dr Martin Luther King Jr Dr, Milwaukee, WI 53212",
			ShoppingMinutes: 18,
			Specialties:     []string{"budget", "pantry", "basic"},
		},
		"Walmart": {
			Name:            "Walmart",
			Type:            StoreMainstream,
			Address:         "3929 S 27th St, Milwaukee, WI 53221",
			ShoppingMinutes: 35,
			Specialties:     []string{"bulk", "pantry", "general", "budget"},
		},
		"Woodman's Market": {
			Name:            "Woodman's Market",
			Type:            StoreMainstream,
			Address:         "W124N8145 WI-145, Menomonee Falls, WI 53051",
			ShoppingMinutes: 30,
			Specialties:     []string{"bulk", "variety", "pantry", "organic"},
		},
	}
}

// Names returns the catalog's store names in no particular order.
func (c StoreCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

// Lookup returns the store info and whether the store is known.
func (c StoreCatalog) Lookup(name string) (StoreInfo, bool) {
	s, ok := c[name]
	return s, ok
}
