// Package seed loads initial phonebook entries from YAML and writes them through the service.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"phonebook/internal/model"
)

//go:embed default.yaml
var defaultSeed []byte

// File is the on-disk layout of a seed file.
type File struct {
	Contacts []Entry `yaml:"contacts"`
}

// Entry is one seeded contact.
type Entry struct {
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
}

// Upserter is the part of the contact service a seed needs.
type Upserter interface {
	UpsertByName(ctx context.Context, name, number string) (*model.Contact, bool, error)
}

// Result counts what Apply did.
type Result struct {
	Created int
	Updated int
}

// Load decodes a seed file. Unknown keys are rejected and an empty document yields no entries.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

// Default returns the built-in seed.
func Default() *File {
	f, err := Load(bytes.NewReader(defaultSeed))
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return f
}

// Apply upserts every entry by name, so running it twice leaves the phonebook unchanged.
// It stops at the first failing entry.
func Apply(ctx context.Context, svc Upserter, f *File) (Result, error) {
	var res Result
	for _, e := range f.Contacts {
		_, created, err := svc.UpsertByName(ctx, e.Name, e.Number)
		if err != nil {
			return res, fmt.Errorf("seed %q: %w", e.Name, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}
