package api

import (
	"github.com/groundfi/address-registry/interfaces"
)

// AddressResponse is the JSON form of a single record.
type AddressResponse struct {
	Environment interfaces.Environment `json:"environment"`
	Name        interfaces.Name        `json:"name"`
	Address     interfaces.Address     `json:"address"`
	Category    interfaces.Category    `json:"category"`
	Note        string                 `json:"note,omitempty"`
}

// NewAddressResponse renders a record of env.
func NewAddressResponse(env interfaces.Environment, record interfaces.Record) AddressResponse {
	return AddressResponse{
		Environment: env,
		Name:        record.Name,
		Address:     record.Address,
		Category:    record.Category(),
		Note:        record.Note,
	}
}

// Record converts the response back into a record.
func (r AddressResponse) Record() interfaces.Record {
	return interfaces.Record{
		Name:    r.Name,
		Address: r.Address,
		Note:    r.Note,
	}
}

// BookResponse contains every record of one environment together with
// the fingerprint of its canonical manifest.
type BookResponse struct {
	Environment interfaces.Environment `json:"environment"`
	Fingerprint string                 `json:"fingerprint"`
	Records     []AddressResponse      `json:"records"`
}

// NewBookResponse renders a whole address book.
func NewBookResponse(book interfaces.AddressBook) BookResponse {
	records := book.Records()
	resp := BookResponse{
		Environment: book.Environment(),
		Fingerprint: book.Fingerprint().String(),
		Records:     make([]AddressResponse, 0, len(records)),
	}
	for _, record := range records {
		resp.Records = append(resp.Records, NewAddressResponse(book.Environment(), record))
	}
	return resp
}

// EnvironmentSummary describes one served environment.
type EnvironmentSummary struct {
	Environment interfaces.Environment `json:"environment"`
	Fingerprint string                 `json:"fingerprint"`
	Records     int                    `json:"records"`
}

// EnvironmentsResponse lists the environments a server knows.
type EnvironmentsResponse struct {
	Environments []EnvironmentSummary `json:"environments"`
}
