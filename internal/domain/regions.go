package domain

// ufToIBGECode maps Brazilian state abbreviations to IBGE territory codes
// (level N3). SIDRA locality filters use the numeric code.
var ufToIBGECode = map[string]string{
	"RO": "11", "AC": "12", "AM": "13", "RR": "14", "PA": "15", "AP": "16", "TO": "17",
	"MA": "21", "PI": "22", "CE": "23", "RN": "24", "PB": "25", "PE": "26", "AL": "27",
	"SE": "28", "BA": "29", "MG": "31", "ES": "32", "RJ": "33", "SP": "35", "PR": "41",
	"SC": "42", "RS": "43", "MS": "50", "MT": "51", "GO": "52", "DF": "53",
}

// stateToFIPS maps US Corn Belt state abbreviations to 2-digit state FIPS
// codes, used to build full 5-digit county FIPS.
var stateToFIPS = map[string]string{
	"IA": "19", "IL": "17", "IN": "18", "OH": "39", "NE": "31", "MN": "27",
	"WI": "55", "MO": "29", "KS": "20", "SD": "46", "ND": "38", "MI": "26",
}

// IBGECodeForUF returns the IBGE territory code for a Brazilian state
// abbreviation, or false if the abbreviation is unknown.
func IBGECodeForUF(uf string) (string, bool) {
	code, ok := ufToIBGECode[uf]
	return code, ok
}

// FIPSForState returns the 2-digit state FIPS code for a US state
// abbreviation, or false if the state is not covered.
func FIPSForState(state string) (string, bool) {
	code, ok := stateToFIPS[state]
	return code, ok
}
