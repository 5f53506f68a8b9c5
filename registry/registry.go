package registry

import (
	"fmt"

	"github.com/groundfi/address-registry/interfaces"
)

// Registry implements interfaces.AddressDirectory over a fixed set of books.
// It is safe for concurrent use since nothing mutates it after construction.
type Registry struct {
	books map[interfaces.Environment]*Book
	order []interfaces.Environment
}

// NewRegistry builds a registry from books. Each environment may appear once.
func NewRegistry(books ...*Book) (*Registry, error) {
	r := &Registry{
		books: make(map[interfaces.Environment]*Book, len(books)),
	}
	for _, book := range books {
		if book == nil {
			return nil, fmt.Errorf("nil address book")
		}
		if _, exists := r.books[book.Environment()]; exists {
			return nil, fmt.Errorf("environment %s defined twice", book.Environment())
		}
		r.books[book.Environment()] = book
		r.order = append(r.order, book.Environment())
	}
	return r, nil
}

// Get returns the address for name in env.
func (r *Registry) Get(env interfaces.Environment, name interfaces.Name) (interfaces.Address, error) {
	book, err := r.book(env)
	if err != nil {
		return "", err
	}
	return book.Get(name)
}

// Lookup returns the full record for name in env.
func (r *Registry) Lookup(env interfaces.Environment, name interfaces.Name) (interfaces.Record, error) {
	book, err := r.book(env)
	if err != nil {
		return interfaces.Record{}, err
	}
	return book.Lookup(name)
}

// Book returns the address book of env.
func (r *Registry) Book(env interfaces.Environment) (interfaces.AddressBook, error) {
	book, err := r.book(env)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// AddressBook returns the concrete book of env.
func (r *Registry) AddressBook(env interfaces.Environment) (*Book, error) {
	return r.book(env)
}

// Environments returns the environments in the order the books were given.
func (r *Registry) Environments() []interfaces.Environment {
	out := make([]interfaces.Environment, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) book(env interfaces.Environment) (*Book, error) {
	book, ok := r.books[env]
	if !ok {
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnknownEnvironment, string(env))
	}
	return book, nil
}
