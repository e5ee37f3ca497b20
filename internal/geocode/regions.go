package geocode

import (
	"strings"
	"unicode"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

// postcodeRegions maps UK postcode area prefixes to regions.
var postcodeRegions = map[string]developments.Region{
	// London
	"E": developments.RegionLondon, "EC": developments.RegionLondon,
	"N": developments.RegionLondon, "NW": developments.RegionLondon,
	"SE": developments.RegionLondon, "SW": developments.RegionLondon,
	"W": developments.RegionLondon, "WC": developments.RegionLondon,
	// South East
	"BN": developments.RegionSouthEast, "CT": developments.RegionSouthEast,
	"GU": developments.RegionSouthEast, "HP": developments.RegionSouthEast,
	"ME": developments.RegionSouthEast, "MK": developments.RegionSouthEast,
	"OX": developments.RegionSouthEast, "PO": developments.RegionSouthEast,
	"RG": developments.RegionSouthEast, "RH": developments.RegionSouthEast,
	"SL": developments.RegionSouthEast, "SO": developments.RegionSouthEast,
	"TN": developments.RegionSouthEast, "KT": developments.RegionSouthEast,
	"SM": developments.RegionSouthEast, "CR": developments.RegionSouthEast,
	"BR": developments.RegionSouthEast, "DA": developments.RegionSouthEast,
	"EN": developments.RegionSouthEast, "HA": developments.RegionSouthEast,
	"IG": developments.RegionSouthEast, "RM": developments.RegionSouthEast,
	"TW": developments.RegionSouthEast, "UB": developments.RegionSouthEast,
	"WD": developments.RegionSouthEast,
	// South West
	"BA": developments.RegionSouthWest, "BH": developments.RegionSouthWest,
	"BS": developments.RegionSouthWest, "DT": developments.RegionSouthWest,
	"EX": developments.RegionSouthWest, "GL": developments.RegionSouthWest,
	"PL": developments.RegionSouthWest, "SN": developments.RegionSouthWest,
	"SP": developments.RegionSouthWest, "TA": developments.RegionSouthWest,
	"TQ": developments.RegionSouthWest, "TR": developments.RegionSouthWest,
	// East of England
	"AL": developments.RegionEastOfEngland, "CB": developments.RegionEastOfEngland,
	"CM": developments.RegionEastOfEngland, "CO": developments.RegionEastOfEngland,
	"IP": developments.RegionEastOfEngland, "LU": developments.RegionEastOfEngland,
	"NR": developments.RegionEastOfEngland, "PE": developments.RegionEastOfEngland,
	"SG": developments.RegionEastOfEngland, "SS": developments.RegionEastOfEngland,
	// East Midlands
	"DE": developments.RegionEastMidlands, "LE": developments.RegionEastMidlands,
	"LN": developments.RegionEastMidlands, "NG": developments.RegionEastMidlands,
	"NN": developments.RegionEastMidlands,
	// West Midlands
	"B": developments.RegionWestMidlands, "CV": developments.RegionWestMidlands,
	"DY": developments.RegionWestMidlands, "HR": developments.RegionWestMidlands,
	"ST": developments.RegionWestMidlands, "TF": developments.RegionWestMidlands,
	"WR": developments.RegionWestMidlands, "WS": developments.RegionWestMidlands,
	"WV": developments.RegionWestMidlands,
	// North West
	"BB": developments.RegionNorthWest, "BL": developments.RegionNorthWest,
	"CA": developments.RegionNorthWest, "CH": developments.RegionNorthWest,
	"CW": developments.RegionNorthWest, "FY": developments.RegionNorthWest,
	"L": developments.RegionNorthWest, "LA": developments.RegionNorthWest,
	"M": developments.RegionNorthWest, "OL": developments.RegionNorthWest,
	"PR": developments.RegionNorthWest, "SK": developments.RegionNorthWest,
	"WA": developments.RegionNorthWest, "WN": developments.RegionNorthWest,
	// North East
	"DH": developments.RegionNorthEast, "DL": developments.RegionNorthEast,
	"NE": developments.RegionNorthEast, "SR": developments.RegionNorthEast,
	"TS": developments.RegionNorthEast,
	// Yorkshire and The Humber
	"BD": developments.RegionYorkshire, "DN": developments.RegionYorkshire,
	"HD": developments.RegionYorkshire, "HG": developments.RegionYorkshire,
	"HU": developments.RegionYorkshire, "HX": developments.RegionYorkshire,
	"LS": developments.RegionYorkshire, "S": developments.RegionYorkshire,
	"WF": developments.RegionYorkshire, "YO": developments.RegionYorkshire,
	// Scotland
	"AB": developments.RegionScotland, "DD": developments.RegionScotland,
	"EH": developments.RegionScotland, "FK": developments.RegionScotland,
	"G": developments.RegionScotland, "IV": developments.RegionScotland,
	"KA": developments.RegionScotland, "KW": developments.RegionScotland,
	"KY": developments.RegionScotland, "ML": developments.RegionScotland,
	"PA": developments.RegionScotland, "PH": developments.RegionScotland,
	"TD": developments.RegionScotland, "ZE": developments.RegionScotland,
	// Wales
	"CF": developments.RegionWales, "LD": developments.RegionWales,
	"LL": developments.RegionWales, "NP": developments.RegionWales,
	"SA": developments.RegionWales, "SY": developments.RegionWales,
	// Northern Ireland
	"BT": developments.RegionNorthernIreland,
}

// cityRegions maps city and town names to regions, used as a fallback
// when no postcode is available.
var cityRegions = map[string]developments.Region{
	"london":         developments.RegionLondon,
	"manchester":     developments.RegionNorthWest,
	"liverpool":      developments.RegionNorthWest,
	"chester":        developments.RegionNorthWest,
	"preston":        developments.RegionNorthWest,
	"bolton":         developments.RegionNorthWest,
	"wigan":          developments.RegionNorthWest,
	"salford":        developments.RegionNorthWest,
	"stockport":      developments.RegionNorthWest,
	"warrington":     developments.RegionNorthWest,
	"blackpool":      developments.RegionNorthWest,
	"burnley":        developments.RegionNorthWest,
	"oldham":         developments.RegionNorthWest,
	"rochdale":       developments.RegionNorthWest,
	"lancaster":      developments.RegionNorthWest,
	"birmingham":     developments.RegionWestMidlands,
	"coventry":       developments.RegionWestMidlands,
	"wolverhampton":  developments.RegionWestMidlands,
	"dudley":         developments.RegionWestMidlands,
	"walsall":        developments.RegionWestMidlands,
	"stoke-on-trent": developments.RegionWestMidlands,
	"leeds":          developments.RegionYorkshire,
	"sheffield":      developments.RegionYorkshire,
	"bradford":       developments.RegionYorkshire,
	"hull":           developments.RegionYorkshire,
	"york":           developments.RegionYorkshire,
	"huddersfield":   developments.RegionYorkshire,
	"doncaster":      developments.RegionYorkshire,
	"wakefield":      developments.RegionYorkshire,
	"barnsley":       developments.RegionYorkshire,
	"rotherham":      developments.RegionYorkshire,
	"halifax":        developments.RegionYorkshire,
	"newcastle":      developments.RegionNorthEast,
	"sunderland":     developments.RegionNorthEast,
	"durham":         developments.RegionNorthEast,
	"middlesbrough":  developments.RegionNorthEast,
	"darlington":     developments.RegionNorthEast,
	"gateshead":      developments.RegionNorthEast,
	"hartlepool":     developments.RegionNorthEast,
	"bristol":        developments.RegionSouthWest,
	"exeter":         developments.RegionSouthWest,
	"plymouth":       developments.RegionSouthWest,
	"bath":           developments.RegionSouthWest,
	"gloucester":     developments.RegionSouthWest,
	"cheltenham":     developments.RegionSouthWest,
	"swindon":        developments.RegionSouthWest,
	"bournemouth":    developments.RegionSouthWest,
	"poole":          developments.RegionSouthWest,
	"taunton":        developments.RegionSouthWest,
	"brighton":       developments.RegionSouthEast,
	"oxford":         developments.RegionSouthEast,
	"reading":        developments.RegionSouthEast,
	"southampton":    developments.RegionSouthEast,
	"portsmouth":     developments.RegionSouthEast,
	"canterbury":     developments.RegionSouthEast,
	"guildford":      developments.RegionSouthEast,
	"milton keynes":  developments.RegionSouthEast,
	"slough":         developments.RegionSouthEast,
	"crawley":        developments.RegionSouthEast,
	"maidstone":      developments.RegionSouthEast,
	"woking":         developments.RegionSouthEast,
	"basingstoke":    developments.RegionSouthEast,
	"aylesbury":      developments.RegionSouthEast,
	"norwich":        developments.RegionEastOfEngland,
	"cambridge":      developments.RegionEastOfEngland,
	"ipswich":        developments.RegionEastOfEngland,
	"colchester":     developments.RegionEastOfEngland,
	"chelmsford":     developments.RegionEastOfEngland,
	"peterborough":   developments.RegionEastOfEngland,
	"luton":          developments.RegionEastOfEngland,
	"southend":       developments.RegionEastOfEngland,
	"st albans":      developments.RegionEastOfEngland,
	"watford":        developments.RegionEastOfEngland,
	"nottingham":     developments.RegionEastMidlands,
	"leicester":      developments.RegionEastMidlands,
	"derby":          developments.RegionEastMidlands,
	"lincoln":        developments.RegionEastMidlands,
	"northampton":    developments.RegionEastMidlands,
	"edinburgh":      developments.RegionScotland,
	"glasgow":        developments.RegionScotland,
	"aberdeen":       developments.RegionScotland,
	"dundee":         developments.RegionScotland,
	"inverness":      developments.RegionScotland,
	"stirling":       developments.RegionScotland,
	"perth":          developments.RegionScotland,
	"cardiff":        developments.RegionWales,
	"swansea":        developments.RegionWales,
	"newport":        developments.RegionWales,
	"wrexham":        developments.RegionWales,
	"bangor":         developments.RegionWales,
	"belfast":        developments.RegionNorthernIreland,
	"derry":          developments.RegionNorthernIreland,
	"lisburn":        developments.RegionNorthernIreland,
	"newry":          developments.RegionNorthernIreland,
}

// onsRegions maps ONS region names returned by postcodes.io to the
// directory's region vocabulary. The ONS spells it "Yorkshire and the
// Humber" with a lowercase "the".
var onsRegions = map[string]developments.Region{
	"London":                   developments.RegionLondon,
	"South East":               developments.RegionSouthEast,
	"South West":               developments.RegionSouthWest,
	"East of England":          developments.RegionEastOfEngland,
	"East Midlands":            developments.RegionEastMidlands,
	"West Midlands":            developments.RegionWestMidlands,
	"North West":               developments.RegionNorthWest,
	"North East":               developments.RegionNorthEast,
	"Yorkshire and the Humber": developments.RegionYorkshire,
	"Yorkshire and The Humber": developments.RegionYorkshire,
	"Scotland":                 developments.RegionScotland,
	"Wales":                    developments.RegionWales,
	"Northern Ireland":         developments.RegionNorthernIreland,
}

// PostcodeRegion maps a UK postcode to a region via its area prefix.
// The two-letter prefix is tried before the one-letter prefix, so "SE1"
// resolves to London rather than the single-letter "S" entry.
func PostcodeRegion(postcode string) (developments.Region, bool) {
	cleaned := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	prefix := letterPrefix(cleaned)
	if len(prefix) >= 2 {
		if region, ok := postcodeRegions[prefix[:2]]; ok {
			return region, true
		}
	}
	if len(prefix) >= 1 {
		if region, ok := postcodeRegions[prefix[:1]]; ok {
			return region, true
		}
	}
	return "", false
}

// CityRegion maps a city or town name to a region.
func CityRegion(city string) (developments.Region, bool) {
	region, ok := cityRegions[strings.ToLower(strings.TrimSpace(city))]
	return region, ok
}

// onsToRegion translates an ONS region name, falling back to the
// country for Scotland, Wales, and Northern Ireland where postcodes.io
// leaves the region field empty.
func onsToRegion(onsRegion, country string) (developments.Region, bool) {
	if region, ok := onsRegions[onsRegion]; ok {
		return region, true
	}
	switch country {
	case "Scotland":
		return developments.RegionScotland, true
	case "Wales":
		return developments.RegionWales, true
	case "Northern Ireland":
		return developments.RegionNorthernIreland, true
	}
	return "", false
}

func letterPrefix(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			return s[:i]
		}
	}
	return s
}
