// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

/*
Package models defines the data structures shared by the store, the HTTP layer
and the CLI.

Model Categories:

 1. API envelope: APIResponse, Metadata, APIError
 2. Statistics: LocationStatsResult (grouped rows or a GeoJSON FeatureCollection),
    ChemistryStat, ProductStatsResult (per company or per product type)
 3. Catalog: LookupFamily, LookupEntry, MissingGeoCompany

LocationStatsResult and ProductStatsResult are tagged unions. They marshal to
the bare list or FeatureCollection selected by their Kind, so clients never see
the wrapper.
*/
package models
