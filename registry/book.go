package registry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

// Book implements interfaces.AddressBook for a single environment.
// A Book is never modified after NewBook returns.
type Book struct {
	env         interfaces.Environment
	records     []interfaces.Record
	index       map[interfaces.Name]int
	fingerprint interfaces.Fingerprint
}

// NewBook validates the records and builds an address book for env.
// The records are copied, so later changes to the slice do not affect the book.
func NewBook(env interfaces.Environment, records []interfaces.Record) (*Book, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	book := &Book{
		env:     env,
		records: make([]interfaces.Record, 0, len(records)),
		index:   make(map[interfaces.Name]int, len(records)),
	}

	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", env, err)
		}
		if _, exists := book.index[record.Name]; exists {
			return nil, fmt.Errorf("%s: %w: %s", env, interfaces.ErrDuplicateName, record.Name)
		}
		book.index[record.Name] = len(book.records)
		book.records = append(book.records, record)
	}

	book.fingerprint = interfaces.Fingerprint(crypto.Keccak256Hash(manifest.Encode(env, book.records)))

	return book, nil
}

// Environment returns the environment the book belongs to.
func (b *Book) Environment() interfaces.Environment {
	return b.env
}

// Lookup returns the record for name or interfaces.ErrUnknownName.
func (b *Book) Lookup(name interfaces.Name) (interfaces.Record, error) {
	i, ok := b.index[name]
	if !ok {
		return interfaces.Record{}, fmt.Errorf("%w: %s in %s", interfaces.ErrUnknownName, name, b.env)
	}
	return b.records[i], nil
}

// Get returns the address for name.
func (b *Book) Get(name interfaces.Name) (interfaces.Address, error) {
	record, err := b.Lookup(name)
	if err != nil {
		return "", err
	}
	return record.Address, nil
}

// Records returns a copy of all records in deployment order.
func (b *Book) Records() []interfaces.Record {
	out := make([]interfaces.Record, len(b.records))
	copy(out, b.records)
	return out
}

// Names returns the defined names in deployment order.
func (b *Book) Names() []interfaces.Name {
	names := make([]interfaces.Name, len(b.records))
	for i, record := range b.records {
		names[i] = record.Name
	}
	return names
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.records)
}

// Fingerprint returns the Keccak-256 digest of the book's canonical manifest.
func (b *Book) Fingerprint() interfaces.Fingerprint {
	return b.fingerprint
}
