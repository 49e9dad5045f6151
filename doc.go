// Package geofeed validates self-published IP geolocation feeds.
//
// A geofeed is a CSV text where every line maps an IP network to a location:
// country, subdivision, city and postal code. Three dialects are built in
// and selected by name:
//
//   - draft02: the original draft format
//   - draft02-allocationsize: draft02 with a default allocation size column
//   - final: RFC 8805, the default
//
// # Quick Start
//
//	v, err := geofeed.New(geofeed.FromString(feed))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := v.Validate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range res.Records() {
//	    for _, fr := range rec.Fields() {
//	        for _, msg := range fr.Errors {
//	            fmt.Printf("line %d: %s: %s\n", rec.No(), fr.Name, msg)
//	        }
//	    }
//	}
//
// # Functional Options
//
//	v, err := geofeed.New(geofeed.FromReader(f),
//	    geofeed.WithSchema(geofeed.ByName("draft02")),
//	    geofeed.WithRawRecords(true),
//	    geofeed.WithLogger(log),
//	)
//
// # Diagnostics
//
// Malformed feed content never fails validation. Every problem becomes an
// error or warning attached to the field of the record it was found in:
//
//   - Field checks: network syntax, special-purpose ranges, ISO 3166 codes
//   - Duplicates: two records with the same network both get an error
//   - Geo hierarchy: subdivision, city and postal code need a valid country
//   - Allocation size: only for draft02-allocationsize
//
// Errors are returned only for unusable input: an unknown schema, a missing
// feed, or a reader that fails.
//
// # Architecture
//
//   - pkg/field: field definitions composed from small check primitives
//   - pkg/codes: ISO 3166 lookups with an LRU cache
//   - pkg/result: result builders and the immutable result model
//   - pkg/validator: the record reader and the common cross-record rules
//   - pkg/schema: the built-in dialects, registered in pkg/registry
//   - pkg/report: JSON, YAML and text reports
package geofeed
