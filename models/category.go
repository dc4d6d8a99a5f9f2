package models

const (
	CategoryFood       = "Alimentação"
	CategoryHealth     = "Saúde"
	CategoryBeauty     = "Beleza"
	CategoryServices   = "Serviços"
	CategoryRetail     = "Comércio"
	CategoryAutomotive = "Automotivo"
	CategoryEducation  = "Educação"
	CategoryPets       = "Pets"
	CategoryHome       = "Casa e Construção"
	CategoryLeisure    = "Lazer"
)

// Sentinel filter values. They select on IsOfficial / IsSponsor and are never stored.
const (
	CategoryOfficial = "Oficiais"
	CategorySponsor  = "Patrocinadores"
)

// Categories is the fixed set a business may be classified under, in display order.
var Categories = []string{
	CategoryFood,
	CategoryHealth,
	CategoryBeauty,
	CategoryServices,
	CategoryRetail,
	CategoryAutomotive,
	CategoryEducation,
	CategoryPets,
	CategoryHome,
	CategoryLeisure,
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
