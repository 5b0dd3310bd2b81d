package ingest

import "fmt"

// MissingCaptureGroupError means a configured regular expression lacks a
// required named capture group. This is a configuration error surfaced
// before any file is read.
type MissingCaptureGroupError struct {
	Group   string
	Pattern string
}

func (e *MissingCaptureGroupError) Error() string {
	return fmt.Sprintf("capture group %q missing in %q", e.Group, e.Pattern)
}

// SpeciesNotFoundError means the species pattern matched nothing in a
// genome file's base name.
type SpeciesNotFoundError struct {
	File string
}

func (e *SpeciesNotFoundError) Error() string {
	return fmt.Sprintf("the species pattern did not match any species name in %q", e.File)
}

// IDNotFoundError means the id pattern matched nothing in a record's raw id.
type IDNotFoundError struct {
	RawID string
}

func (e *IDNotFoundError) Error() string {
	return fmt.Sprintf("the id pattern did not match any id in %q", e.RawID)
}

// NoIDError means a record subject to id extraction carried no id at all.
type NoIDError struct {
	Record string
}

func (e *NoIDError) Error() string {
	return fmt.Sprintf("record %s has no id", e.Record)
}
