package interfaces

// AddressBook is the read-only set of records of one environment.
type AddressBook interface {
	// Environment returns the environment the book belongs to.
	Environment() Environment

	// Lookup returns the record for a name or ErrUnknownName.
	Lookup(name Name) (Record, error)

	// Records returns all records in deployment order.
	Records() []Record

	// Fingerprint returns the digest of the book's canonical manifest.
	Fingerprint() Fingerprint
}

// AddressDirectory resolves addresses across environments.
type AddressDirectory interface {
	// Get returns the address for a name in an environment.
	// Fails with ErrUnknownEnvironment or ErrUnknownName.
	Get(env Environment, name Name) (Address, error)

	// Book returns the address book of an environment.
	Book(env Environment) (AddressBook, error)

	// Environments returns the environments served by the directory.
	Environments() []Environment
}
