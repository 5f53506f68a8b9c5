// Package manifest reads and writes the HCL address manifests operators edit
// after a redeployment.
//
// A manifest holds one block per environment with one block per address:
//
//	environment "GroundWeb" {
//	  address "StableCoin" {
//	    value = "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"
//	    note  = "The 3rd new resource"
//	  }
//	}
//
// Decoding does not validate address formats; registry.NewBook does.
package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/groundfi/address-registry/interfaces"
)

// FileExtension is the extension of manifest files.
const FileExtension = ".hcl"

// FileName returns the conventional manifest file name of env, e.g. "GroundWeb.hcl".
func FileName(env interfaces.Environment) string {
	return env.String() + FileExtension
}

type fileRoot struct {
	Environments []*environmentBlock `hcl:"environment,block"`
}

type environmentBlock struct {
	Name      string          `hcl:"name,label"`
	Addresses []*addressBlock `hcl:"address,block"`
}

type addressBlock struct {
	Name  string  `hcl:"name,label"`
	Value string  `hcl:"value"`
	Note  *string `hcl:"note,optional"`
}

// Decode parses manifest data and returns the records of every environment
// it defines, in file order. filename is only used in diagnostics.
func Decode(filename string, data []byte) (map[interfaces.Environment][]interfaces.Record, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	out := make(map[interfaces.Environment][]interfaces.Record, len(root.Environments))
	for _, block := range root.Environments {
		env, err := interfaces.NewEnvironment(block.Name)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", filename, err)
		}
		if _, exists := out[env]; exists {
			return nil, fmt.Errorf("manifest %s: environment %s defined twice", filename, env)
		}

		records := make([]interfaces.Record, 0, len(block.Addresses))
		for _, addr := range block.Addresses {
			record := interfaces.Record{
				Name:    interfaces.Name(addr.Name),
				Address: interfaces.Address(addr.Value),
			}
			if addr.Note != nil {
				record.Note = *addr.Note
			}
			records = append(records, record)
		}
		out[env] = records
	}

	return out, nil
}

// DecodeEnvironment parses manifest data and returns the records of env only.
// Returns interfaces.ErrManifestNotFound if the manifest has no block for env.
func DecodeEnvironment(filename string, data []byte, env interfaces.Environment) ([]interfaces.Record, error) {
	all, err := Decode(filename, data)
	if err != nil {
		return nil, err
	}
	records, ok := all[env]
	if !ok {
		return nil, fmt.Errorf("%w: no %s block in %s", interfaces.ErrManifestNotFound, env, filename)
	}
	return records, nil
}

// Encode renders the records of env as a canonical manifest.
// The output is deterministic for a given input order.
func Encode(env interfaces.Environment, records []interfaces.Record) []byte {
	file := hclwrite.NewEmptyFile()
	appendEnvironment(file.Body(), env, records)
	return file.Bytes()
}

// Section is one environment of a multi-environment manifest.
type Section struct {
	Environment interfaces.Environment
	Records     []interfaces.Record
}

// EncodeAll renders several environments into one manifest.
func EncodeAll(sections ...Section) []byte {
	file := hclwrite.NewEmptyFile()
	for i, section := range sections {
		if i > 0 {
			file.Body().AppendNewline()
		}
		appendEnvironment(file.Body(), section.Environment, section.Records)
	}
	return file.Bytes()
}

func appendEnvironment(body *hclwrite.Body, env interfaces.Environment, records []interfaces.Record) {
	envBody := body.AppendNewBlock("environment", []string{env.String()}).Body()
	for i, record := range records {
		if i > 0 {
			envBody.AppendNewline()
		}
		addrBody := envBody.AppendNewBlock("address", []string{record.Name.String()}).Body()
		addrBody.SetAttributeValue("value", cty.StringVal(record.Address.String()))
		if record.Note != "" {
			addrBody.SetAttributeValue("note", cty.StringVal(record.Note))
		}
	}
}
