package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/groundfi/address-registry/api"
	"github.com/groundfi/address-registry/api/addresshandler"
	"github.com/groundfi/address-registry/cmd/flags"
	"github.com/groundfi/address-registry/common"
	"github.com/groundfi/address-registry/dnsserver"
	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
	"github.com/groundfi/address-registry/registry"
)

var flagServerAddr = &cli.StringFlag{
	Name:    "server-addr",
	Usage:   "query a running addressd (e.g. http://127.0.0.1:8080) instead of loading addresses locally",
	EnvVars: []string{"ADDRESSCTL_SERVER_ADDR"},
}

var flagDNSServer = &cli.StringFlag{
	Name:  "dns-server",
	Usage: "resolve through an addressd TXT responder at host:port",
}

var errUsage = errors.New("wrong number of arguments")

func main() {
	app := &cli.App{
		Name:    "addressctl",
		Usage:   "Look up and manage Ground deployment addresses",
		Version: common.Version,
		Flags: append([]cli.Flag{
			flagServerAddr,
			flags.ManifestURIFlag,
			flags.PinFlag,
		}, flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print the address of a name",
				ArgsUsage: "<environment> <name>",
				Flags:     []cli.Flag{flagDNSServer, flags.DNSZoneFlag},
				Action:    cmdGet,
			},
			{
				Name:      "list",
				Usage:     "list every record of an environment",
				ArgsUsage: "<environment>",
				Action:    cmdList,
			},
			{
				Name:      "export",
				Usage:     "write environments as an HCL manifest",
				ArgsUsage: "[environment...]",
				Action:    cmdExport,
			},
			{
				Name:      "fingerprint",
				Usage:     "print book fingerprints, for use with --pin",
				ArgsUsage: "[environment...]",
				Action:    cmdFingerprint,
			},
			{
				Name:      "validate",
				Usage:     "check manifest files and print their fingerprints",
				ArgsUsage: "<file...>",
				Action:    cmdValidate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// directory returns the remote registry when --server-addr is set and the
// locally loaded one otherwise.
func directory(cCtx *cli.Context) (*registry.Registry, error) {
	if serverAddr := cCtx.String(flagServerAddr.Name); serverAddr != "" {
		return addresshandler.Registry(serverAddr)
	}
	return flags.LoadRegistry(cCtx, flags.SetupLogger(cCtx), nil)
}

func environments(cCtx *cli.Context, reg *registry.Registry) ([]interfaces.Environment, error) {
	if cCtx.NArg() == 0 {
		return reg.Environments(), nil
	}

	envs := make([]interfaces.Environment, 0, cCtx.NArg())
	for _, arg := range cCtx.Args().Slice() {
		env, err := interfaces.NewEnvironment(arg)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func cmdGet(cCtx *cli.Context) error {
	if cCtx.NArg() != 2 {
		return errUsage
	}
	env, err := interfaces.NewEnvironment(cCtx.Args().Get(0))
	if err != nil {
		return err
	}
	name := interfaces.Name(cCtx.Args().Get(1))

	var addr interfaces.Address
	switch {
	case cCtx.String(flagDNSServer.Name) != "":
		addr, err = dnsserver.Resolve(cCtx.String(flagDNSServer.Name), cCtx.String(flags.DNSZoneFlag.Name), env, name)
	case cCtx.String(flagServerAddr.Name) != "":
		var resp *api.AddressResponse
		resp, err = addresshandler.Lookup(cCtx.String(flagServerAddr.Name), env, name)
		if err == nil {
			addr = resp.Address
		}
	default:
		var reg *registry.Registry
		reg, err = directory(cCtx)
		if err == nil {
			addr, err = reg.Get(env, name)
		}
	}
	if err != nil {
		return err
	}

	fmt.Println(addr)
	return nil
}

func cmdList(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return errUsage
	}
	env, err := interfaces.NewEnvironment(cCtx.Args().Get(0))
	if err != nil {
		return err
	}

	reg, err := directory(cCtx)
	if err != nil {
		return err
	}
	book, err := reg.AddressBook(env)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tADDRESS")
	for _, rec := range book.Records() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Name, rec.Category(), rec.Address)
	}
	return w.Flush()
}

func cmdExport(cCtx *cli.Context) error {
	reg, err := directory(cCtx)
	if err != nil {
		return err
	}
	envs, err := environments(cCtx, reg)
	if err != nil {
		return err
	}

	sections := make([]manifest.Section, 0, len(envs))
	for _, env := range envs {
		book, err := reg.AddressBook(env)
		if err != nil {
			return err
		}
		sections = append(sections, manifest.Section{Environment: env, Records: book.Records()})
	}

	_, err = os.Stdout.Write(manifest.EncodeAll(sections...))
	return err
}

func cmdFingerprint(cCtx *cli.Context) error {
	reg, err := directory(cCtx)
	if err != nil {
		return err
	}
	envs, err := environments(cCtx, reg)
	if err != nil {
		return err
	}

	for _, env := range envs {
		book, err := reg.AddressBook(env)
		if err != nil {
			return err
		}
		fmt.Printf("%s=%s\n", env, book.Fingerprint())
	}
	return nil
}

func cmdValidate(cCtx *cli.Context) error {
	if cCtx.NArg() == 0 {
		return errUsage
	}

	for _, filename := range cCtx.Args().Slice() {
		books, err := validateFile(filename)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		for _, book := range books {
			fmt.Printf("%s: %s records=%d %s=%s\n", filename, book.Environment(), book.Len(), book.Environment(), book.Fingerprint())
		}
	}
	return nil
}

func validateFile(filename string) ([]*registry.Book, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	decoded, err := manifest.Decode(filename, data)
	if err != nil {
		return nil, err
	}

	books := make([]*registry.Book, 0, len(decoded))
	for _, env := range interfaces.Environments {
		records, ok := decoded[env]
		if !ok {
			continue
		}
		book, err := registry.NewBook(env, records)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
