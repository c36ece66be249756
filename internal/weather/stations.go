// =============================================================================
// H2K to HPXML Translator - Weather Station Table
// =============================================================================
//
// Maps the (region, city) pair carried in a source document to the CWEC
// weather-station name the simulation engine expects. Lookups normalize
// case and surrounding whitespace; region and city names arrive from H2K
// files in inconsistent capitalization.
//
// =============================================================================

package weather

import "strings"

// stations maps upper-cased region to upper-cased city to station name.
var stations = map[string]map[string]string{
	"ALBERTA": {
		"CALGARY":  "CAN_AB_Calgary.Intl.AP.718770_CWEC2020",
		"EDMONTON": "CAN_AB_Edmonton.Intl.AP.711230_CWEC2020",
	},
	"BRITISH COLUMBIA": {
		"VANCOUVER": "CAN_BC_Vancouver.Intl.AP.718920_CWEC2020",
		"VICTORIA":  "CAN_BC_Victoria.Intl.AP.717990_CWEC2020",
	},
	"MANITOBA": {
		"WINNIPEG": "CAN_MB_Winnipeg-Richardson.Intl.AP.718520_CWEC2020",
	},
	"NEW BRUNSWICK": {
		"FREDERICTON": "CAN_NB_Fredericton.Intl.AP.717000_CWEC2020",
		"MONCTON":     "CAN_NB_Greater.Moncton.Intl.AP.717050_CWEC2020",
	},
	"NEWFOUNDLAND AND LABRADOR": {
		"ST. JOHN'S": "CAN_NL_St.Johns.Intl.AP.718010_CWEC2020",
	},
	"NORTHWEST TERRITORIES": {
		"YELLOWKNIFE": "CAN_NT_Yellowknife.AP.719360_CWEC2020",
	},
	"NOVA SCOTIA": {
		"HALIFAX": "CAN_NS_Halifax-Stanfield.Intl.AP.713950_CWEC2020",
	},
	"NUNAVUT": {
		"IQALUIT": "CAN_NU_Iqaluit.AP.719090_CWEC2020",
	},
	"ONTARIO": {
		"LONDON":  "CAN_ON_London.Intl.AP.716230_CWEC2020",
		"OTTAWA":  "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020",
		"SUDBURY": "CAN_ON_Sudbury.AP.717300_CWEC2020",
		"TORONTO": "CAN_ON_Toronto.Pearson.Intl.AP.716240_CWEC2020",
		"WINDSOR": "CAN_ON_Windsor.AP.715380_CWEC2020",
	},
	"PRINCE EDWARD ISLAND": {
		"CHARLOTTETOWN": "CAN_PE_Charlottetown.AP.717060_CWEC2020",
	},
	"QUEBEC": {
		"MONTREAL": "CAN_QC_Montreal-Trudeau.Intl.AP.716270_CWEC2020",
		"QUEBEC":   "CAN_QC_Quebec-Lesage.Intl.AP.717140_CWEC2020",
	},
	"SASKATCHEWAN": {
		"REGINA":    "CAN_SK_Regina.Intl.AP.718630_CWEC2020",
		"SASKATOON": "CAN_SK_Saskatoon.Intl.AP.718660_CWEC2020",
	},
	"YUKON": {
		"WHITEHORSE": "CAN_YT_Whitehorse.Intl.AP.719640_CWEC2020",
	},
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Station returns the CWEC station name for a region and city.
func Station(region, city string) (string, bool) {
	cities, ok := stations[normalize(region)]
	if !ok {
		return "", false
	}
	station, ok := cities[normalize(city)]
	return station, ok
}
