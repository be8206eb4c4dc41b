// Package library manages the shared document library: the canonical
// folder structure, uploads, removal, browsing and text extraction for
// plan generation context.
//
// Two backends implement Storage. Local keeps documents under
// <data_dir>/biblioteca. GCS keeps them in a Cloud Storage bucket where
// folders are represented by ".keep" placeholder objects.
package library
