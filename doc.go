// Package jtcsv converts delimited tabular text (CSV/TSV-like) to
// structured records and back, with defensive handling of malformed input.
//
// The engine auto-detects the field delimiter, classifies the input's
// structure to pick one of three specialized parsing strategies, normalizes
// field values, neutralizes spreadsheet formula injection, and heuristically
// repairs rows that were mis-split across line boundaries. Both directions
// work on whole buffers or as streams with bounded memory.
//
// # Parsing
//
// Parse handles one in-memory buffer:
//
//	result, err := jtcsv.Parse(data, nil)
//	if err != nil {
//	    // handle error
//	}
//	for _, rec := range result.Records {
//	    fmt.Println(rec["name"])
//	}
//
// For large inputs, the pull-based Decoder emits rows as chunks arrive and
// never splits a field value across a chunk boundary:
//
//	dec, err := jtcsv.NewDecoder(file, nil)
//	for dec.Next() {
//	    process(dec.Record())
//	}
//	if err := dec.Err(); err != nil {
//	    // handle error
//	}
//
// # Serializing
//
// Marshal produces RFC-4180-style output with injection neutralization:
//
//	out, err := jtcsv.Marshal(records, nil)
//
// Convert wires both directions together, streaming delimited input to a
// JSON array with bounded buffering:
//
//	err := jtcsv.Convert(ctx, in, out, nil)
//
// # Caches and isolation
//
// Delimiter detection and compiled parsers are memoized in bounded LRU
// caches owned by an Engine. The package-level functions share one default
// Engine; callers that need isolation (tests, multi-tenant servers) create
// their own:
//
//	engine := jtcsv.New(jtcsv.WithDetectorCacheSize(64))
//	result, err := engine.Parse(data, opts)
//
// # Known limitations
//
// Row-shift repair is a best-effort heuristic: it can leave a genuinely
// split record unmerged, and adversarial data can trick it into joining two
// unrelated rows. Disable it with Options.RepairRowShifts when exact
// pass-through of malformed rows matters.
package jtcsv
