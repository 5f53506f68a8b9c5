package registry

import (
	"fmt"

	"github.com/groundfi/address-registry/interfaces"
)

// Deployment runbook notes carried with the built-in records.
const (
	notePublished   = "After publish the package"
	noteInitialized = "The Output Component Address"
	noteInfo        = "Have the name on the INFO"
	noteLending     = "The 2nd new component"
)

// defaultRecords holds the addresses of the current deployments, by environment.
// Update them by hand after redeploying: publish the package, set the package
// address in the transaction manifest and instantiate the test component, then
// run its init method to obtain the lending component and account resource.
var defaultRecords = map[interfaces.Environment][]interfaces.Record{
	interfaces.GroundWeb: {
		{Name: interfaces.TestPackage, Address: "01918b6b7afae8655e4c2c8e26793427bd5afcee4f2c6619e8fc3b", Note: notePublished},
		{Name: interfaces.TestComponent, Address: "02bcc5050688e37cfe734ef637bd4fa535f37c6d14d58710a285ff", Note: noteInitialized},
		{Name: interfaces.GroundIDComponent, Address: "02e10cac6034ebd29877199efe6199142950cf1abc04a7604851f5", Note: noteInfo},
		{Name: interfaces.GroundCreditComponent, Address: "0237693643fba3280cc40993fc0f654146e0ebf7dd382b79955c4f", Note: noteInfo},
		{Name: interfaces.StableCoin, Address: "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401", Note: "The 3rd new resource"},
		{Name: interfaces.IDSBT, Address: "0380d31bd28faa5f3f2c1765267cf9186e2e95d30bbe271efdf036", Note: "The 11th new resource"},
		{Name: interfaces.CreditSBT, Address: "034d549389b0011db498911f9ca6e80d325d5a22a11256b91f8107", Note: "The 15th new resource"},
		{Name: interfaces.InstallmentCreditRequestBadge, Address: "03707c38d216f72e95a0640fd0f2721bc1133c5c90b2b0b2e6de45", Note: "The 16th new resource"},
		{Name: interfaces.InstallmentCreditBadge, Address: "03d3c288e3e7af61dfc07717e870b0172b4b316d4a3e3d7a21fcce", Note: "The 17th new resource"},
		{Name: interfaces.GroundLendingComponent, Address: "02f29231ee99bec1965e9aa17714ea4ae50b851a7618b953faef0e", Note: noteLending},
		{Name: interfaces.LendingAccount, Address: "03705dc51f21be2bc057864d2f3e8df85e605484cfa487f0853847", Note: "The 3rd new resource"},
	},
	interfaces.GroundTest: {
		{Name: interfaces.TestPackage, Address: "0168f70d558f8ee3c7e818f6c4bcbf2e5f2c4a8f7b7998548e2e38", Note: notePublished},
		{Name: interfaces.TestComponent, Address: "02a0219f4ac42ac66f894d66667bc6cc6bafb9ffebc7a40e387456", Note: noteInitialized},
		{Name: interfaces.GroundIDComponent, Address: "0297189ee97598107050a5616e54fe8896680d125d1fe6632847a1", Note: noteInfo},
		{Name: interfaces.GroundCreditComponent, Address: "02487876defd139b5c6cad455c40a11eced787f61f993b2d1806b4", Note: noteInfo},
		{Name: interfaces.StableCoin, Address: "0339a65a19c6c35d1fafc0a40eb14a4c533f36322bb7bdc716b535", Note: "The 3rd new resource"},
		{Name: interfaces.IDSBT, Address: "039bba79a9dc060adefbc1fad57023951a3a5b14656af41320799d", Note: "The 11th new resource"},
		{Name: interfaces.CreditSBT, Address: "03948df254ea0881dbee3fd483988bc932605b708b7b429ab6e400", Note: "The 15th new resource"},
		{Name: interfaces.InstallmentCreditRequestBadge, Address: "0344aff62d50909462e064688f75243b318d9eba9defae8a8ba169", Note: "The 16th new resource"},
		{Name: interfaces.InstallmentCreditBadge, Address: "03deb83fabef6c2a487e87b795bb4b37c316fae71c5e9d2ca71f90", Note: "The 17th new resource"},
		{Name: interfaces.GroundLendingComponent, Address: "02bb53885bc2ecb1995f379585d0bfb52745d16a1e0bfe88f9f5f7", Note: noteLending},
		{Name: interfaces.LendingAccount, Address: "03692887aaa48383cef01bc32461eff6a9e18efa5058e95bd72059", Note: "The 3rd new resource"},
	},
}

// DefaultBook builds the built-in address book of env.
func DefaultBook(env interfaces.Environment) (*Book, error) {
	records, ok := defaultRecords[env]
	if !ok {
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnknownEnvironment, string(env))
	}
	return NewBook(env, records)
}

// DefaultRegistry builds a registry holding the built-in books of every environment.
func DefaultRegistry() (*Registry, error) {
	books := make([]*Book, 0, len(interfaces.Environments))
	for _, env := range interfaces.Environments {
		book, err := DefaultBook(env)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return NewRegistry(books...)
}
