// Package domain models the normalized aeronautical reference data produced by
// the builders: airports with their runways and alias identifiers, Victor
// airways assembled from CIFP records, and named VFR fixes from NASR.
//
// # Data Sources
//
// Airports and runways come from the OurAirports comma-delimited extracts
// (airports.csv, runways.csv) at https://ourairports.com/data/. Fields are
// double-quoted; a quoted field never contains an escaped quote.
//
// Airways and enroute waypoints come from the FAA Coded Instrument Flight
// Procedures (CIFP) file FAACIFP18, published every 28 days in the ARINC 424
// fixed-column format. Each line is a 132-column record.
//
// Named VFR fixes come from a NASR comma-delimited extract whose header names
// drift between cycles (FIX_ID vs IDENT, LAT_DECIMAL vs LATITUDE, ...).
//
// # Coordinate Conventions
//
// ARINC 424 latitude and longitude:
//
//	N38443200   hemisphere, DD, MM, SS, hundredths of seconds
//	W077261900  hemisphere, DDD, MM, SS, hundredths of seconds
//	value = DD + MM/60 + (SS + hh/100)/3600, negated for S and W
//
// NASR coordinates appear either as decimal degrees ("40.189849") or as
// dash-separated DMS with a trailing hemisphere ("40-11-23.4560N").
//
// All stored coordinates are WGS-84 decimal degrees.
//
// # Identifiers
//
// An airport is keyed by its OurAirports ident (e.g. "KSFO", "0CA4"). Its
// ICAO, IATA, GPS and local codes are alternate identifiers; an [AliasMap]
// points each alternate identifier back to exactly one primary. The first
// registration of an alias wins and later collisions are recorded as
// [Conflict] values rather than overwriting.
package domain
