// Package partscout identifies electronic-component part numbers in noisy
// text (typed lists, BOM exports, OCR transcripts of photos) and looks them
// up on a distributor search site to build structured component records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, tesseract/).
package partscout
