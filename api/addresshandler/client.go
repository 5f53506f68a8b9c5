package addresshandler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groundfi/address-registry/api"
	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/registry"
)

// Lookup resolves name in env against a remote address registry.
// A missing name fails with interfaces.ErrUnknownName and a missing
// environment with interfaces.ErrUnknownEnvironment, as they do locally.
func Lookup(baseURL string, env interfaces.Environment, name interfaces.Name) (*api.AddressResponse, error) {
	var resp api.AddressResponse
	path := fmt.Sprintf("/api/v1/addresses/%s/%s", url.PathEscape(env.String()), url.PathEscape(string(name)))
	if err := get(baseURL+path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Book fetches every record of env from a remote address registry.
func Book(baseURL string, env interfaces.Environment) (*api.BookResponse, error) {
	var resp api.BookResponse
	if err := get(fmt.Sprintf("%s/api/v1/addresses/%s", baseURL, url.PathEscape(env.String())), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Environments lists the environments served by a remote address registry.
func Environments(baseURL string) (*api.EnvironmentsResponse, error) {
	var resp api.EnvironmentsResponse
	if err := get(baseURL+"/api/v1/environments", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func get(reqURL string, out any) error {
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("could not initialize request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not request addresses: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		msg := strings.TrimSpace(string(body))
		if strings.HasPrefix(msg, interfaces.ErrUnknownName.Error()) {
			return fmt.Errorf("%w%s", interfaces.ErrUnknownName, strings.TrimPrefix(msg, interfaces.ErrUnknownName.Error()))
		}
		if strings.HasPrefix(msg, interfaces.ErrUnknownEnvironment.Error()) {
			return fmt.Errorf("%w%s", interfaces.ErrUnknownEnvironment, strings.TrimPrefix(msg, interfaces.ErrUnknownEnvironment.Error()))
		}
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not parse response: %w", err)
	}
	return nil
}

// Registry rebuilds a remote registry locally. Each book's fingerprint is
// recomputed and must match the one the server reports.
func Registry(baseURL string) (*registry.Registry, error) {
	envs, err := Environments(baseURL)
	if err != nil {
		return nil, err
	}

	books := make([]*registry.Book, 0, len(envs.Environments))
	for _, summary := range envs.Environments {
		resp, err := Book(baseURL, summary.Environment)
		if err != nil {
			return nil, err
		}

		records := make([]interfaces.Record, 0, len(resp.Records))
		for _, rec := range resp.Records {
			records = append(records, rec.Record())
		}

		book, err := registry.NewBook(resp.Environment, records)
		if err != nil {
			return nil, fmt.Errorf("invalid book for %s: %w", resp.Environment, err)
		}
		if book.Fingerprint().String() != resp.Fingerprint {
			return nil, fmt.Errorf("%w: %s has %s, server reported %s", interfaces.ErrFingerprintMismatch, resp.Environment, book.Fingerprint(), resp.Fingerprint)
		}
		books = append(books, book)
	}

	return registry.NewRegistry(books...)
}
