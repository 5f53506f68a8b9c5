package common

var (
	PackageName = "github.com/groundfi/address-registry"
	Version     = "dev"
)
