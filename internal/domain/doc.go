// Package domain models PHIVOLCS earthquake catalogue data and the
// aggregations the monthly report is built from.
//
// # Data Source
//
// Rows come from the PHIVOLCS earthquake information bulletins, republished
// as a single CSV ("phivolcs_earthquake_data.csv"). Only three columns are
// used: Date_Time_PH, Magnitude and General_Location.
//
// # PHIVOLCS Data Conventions
//
// Time format:
//
//	Philippine Standard Time wall clock, e.g. "2022-07-27 08:43:00".
//	Older bulletins use "27 July 2022 - 08:43 AM". No zone conversion is
//	applied: year, month and hour are read straight off the wall clock.
//	Rows whose timestamp cannot be parsed are dropped and counted.
//
// Magnitude:
//
//	Local or moment magnitude as a decimal, e.g. "4.7". Empty or malformed
//	values are kept as "absent": the row still counts toward raw totals and
//	the day/night split, but not toward magnitude-based views.
//
// Location format:
//
//	"<distance> km <bearing> of <place> (<province>)", e.g.
//	"023 km N 45° W of Pagudpud (Ilocos Norte)". Treated as free text; the
//	report only substring-matches it and echoes it back.
//
// # Classification
//
// Magnitude categories:
//
//	Minor:       m < 4.0
//	Moderate:    4.0 ≤ m < 6.0
//	Significant: m ≥ 6.0
//
// Day is the local hour range 06:00–17:59, night is everything else. Events
// at or above [FeltThreshold] are treated as felt. Both are analytic choices,
// not physical constants.
//
// # Tie-break
//
// Wherever several events compete to represent a group, the larger magnitude
// wins and, among equal magnitudes, the earlier timestamp wins. Exact ties
// fall back to location order.
package domain
