// Package domain models crop production statistics and futures positioning
// data as typed records, plus the reshaping math the extraction jobs share.
//
// # Data Sources
//
// IBGE SIDRA (https://servicodados.ibge.gov.br/api/v3/agregados) serves
// Brazilian municipal crop statistics. Temporary crops (soja, milho, ...)
// live in aggregate table 1612 under classification 81; permanent crops
// (cafe, laranja, ...) in table 1613 under classification 82. The three
// variables extracted are:
//
//	production   214   Quantidade produzida (toneladas)
//	yield        112   Rendimento médio (kg/hectare)
//	area_planted 109   Área plantada (hectares); permanent crops use 2313
//
// SIDRA marks unavailable series points with "...", "-", "X" or "..";
// those parse to zero.
//
// USDA NASS QuickStats (https://quickstats.nass.usda.gov/api) serves US
// county statistics. Counties are identified by 5-digit FIPS codes built
// from the 2-digit state FIPS plus the 3-digit county ANSI code; records
// without a 3-digit county ANSI are aggregates ("OTHER (COMBINED)
// COUNTIES") and are skipped. Withheld or negligible values arrive as
// "(D)", "(Z)", "(NA)", "(S)", "(H)" or "(L)" and parse to zero; regular
// values carry thousands separators ("1,234").
//
// CFTC Disaggregated COT reports (https://www.cftc.gov/files/dea/history)
// carry weekly futures positions per market. Hedge-fund exposure is the
// Money Manager category:
//
//	net position = M_Money_Positions_Long_All - M_Money_Positions_Short_All
//
// Markets map to sectors (Grains, Oilseeds, Meats, Softs) by substring of
// Market_and_Exchange_Names; the longest matching key wins so "SOYBEAN
// OIL" lands in Oilseeds rather than Grains via "SOYBEANS".
//
// # Units
//
// Brazilian datasets report yield in kg/ha, production in thousand tonnes
// and planted area in thousand hectares. US datasets keep imperial units:
// bushels/acre, thousand bushels and thousand acres; county land area is
// acres (Gazetteer square miles × 640). Flow figures are thousand
// contracts per week.
package domain
