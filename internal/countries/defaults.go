package countries

import (
	"fmt"

	"github.com/jonathan/visa-scraper/internal/types"
)

// DefaultProfiles returns the built-in list of countries with digital nomad visa programs.
func DefaultProfiles() []types.CountryProfile {
	return []types.CountryProfile{
		{
			Key:         "spain",
			DisplayName: "Spain",
			SourceURLs: []string{
				"https://www.exteriores.gob.es/Consulados/londres/en/ServiciosConsulares/Paginas/Consular/Digital-Nomad-Visa.aspx",
				"https://prie.comercio.gob.es/en-us/paginas/teletrabajadores-caracter-internacional.aspx",
			},
			Coordinates: types.Coordinates{Latitude: 40.4168, Longitude: -3.7038},
		},
		{
			Key:         "portugal",
			DisplayName: "Portugal",
			SourceURLs: []string{
				"https://vistos.mne.gov.pt/en/national-visas/general-information/type-of-visa",
				"https://www2.gov.pt/en/migrantes-viver-e-trabalhar-em-portugal/migrantes-vistos-e-autorizacoes-para-entrar-e-viver-em-portugal",
			},
			Coordinates: types.Coordinates{Latitude: 38.7223, Longitude: -9.1393},
		},
		{
			Key:         "mexico",
			DisplayName: "Mexico",
			SourceURLs: []string{
				"https://consulmex.sre.gob.mx/leamington/index.php/non-mexicans/visas/115-temporary-resident-visa",
				"https://www.inm.gob.mx/sae/publico/en/solicitud.html",
			},
			Coordinates: types.Coordinates{Latitude: 23.6345, Longitude: -102.5528},
		},
		{
			Key:         "croatia",
			DisplayName: "Croatia",
			SourceURLs: []string{
				"https://mup.gov.hr/aliens-281621/temporary-stay-of-digital-nomads-286853/286853",
				"https://digitalnomadscroatia.mup.hr/",
			},
			Coordinates: types.Coordinates{Latitude: 45.1000, Longitude: 15.2000},
		},
		{
			Key:         "italy",
			DisplayName: "Italy",
			SourceURLs: []string{
				"https://consnewyork.esteri.it/en/servizi-consolari-e-visti/servizi-per-il-cittadino-straniero/visti/visas-to-enter-italy/digital-nomad-remote-worker-visa/",
			},
			Coordinates: types.Coordinates{Latitude: 41.8719, Longitude: 12.5674},
		},
	}
}

// Default returns a registry of the built-in countries.
func Default() *Registry {
	r, err := New(DefaultProfiles()...)
	if err != nil {
		panic(fmt.Sprintf("built-in country registry is invalid: %v", err))
	}
	return r
}
