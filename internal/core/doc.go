// Package core provides the price-list normalization and aggregation pipeline.
//
// The package holds all domain logic independent of any console, HTTP or
// report layer, so it can be driven by the interactive console, the HTTP
// surface or tests without modification.
//
// # Pipeline
//
//  1. [ScanDirectory] lists candidate files: names containing "price"
//     (case-insensitive) with the ".csv" extension, directly in one directory.
//  2. [Ingestor.IngestFile] reads one file, resolves its header row with
//     [ResolveHeaders] and converts data rows into [ProductRecord] values.
//  3. [Service.Load] appends every successfully ingested file to the [Catalog]
//     in discovery order. A failing file is reported in its [FileResult] and
//     skipped; it never aborts the run.
//  4. [Catalog.Search] serves case-insensitive substring queries ranked by
//     unit price, and [Catalog.ExportAll] hands the full catalog to a report
//     [Exporter].
//
// # Header Vocabulary
//
// Column headers are trimmed, lowercased and stripped of "#" and ",," before
// being compared with a fixed synonym set per canonical field:
//
//	name:   название, продукт, товар, наименование
//	price:  цена, розница
//	weight: фасовка, масса, вес
//
// The first header in file order that matches wins. The vocabulary is a
// compatibility contract with existing price lists and is not configurable.
//
// # Error Handling
//
// Errors are typed so callers can report precisely:
//
//   - [DiscoveryError]: directory unreadable; fatal to the load.
//   - [FileError]: one file skipped (unreadable, malformed, missing column).
//   - [RowError]: one row rejected; skipped or escalated per [RowPolicy].
//   - [ExportError]: report destination unwritable.
//
// [MapError] turns any of them into a coded, user-facing [UserMessage].
package core
