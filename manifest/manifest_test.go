package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundfi/address-registry/interfaces"
)

const testManifest = `
environment "GroundWeb" {
  address "StableCoin" {
    value = "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"
    note  = "The 3rd new resource"
  }

  address "TestPackage" {
    value = "01918b6b7afae8655e4c2c8e26793427bd5afcee4f2c6619e8fc3b"
  }
}

environment "ground-test" {
  address "GroundLendingComponent" {
    value = "02bb53885bc2ecb1995f379585d0bfb52745d16a1e0bfe88f9f5f7"
  }
}
`

func TestDecode(t *testing.T) {
	envs, err := Decode("test.hcl", []byte(testManifest))
	require.NoError(t, err)
	require.Len(t, envs, 2)

	web := envs[interfaces.GroundWeb]
	require.Len(t, web, 2)
	assert.Equal(t, interfaces.StableCoin, web[0].Name)
	assert.Equal(t, interfaces.Address("03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"), web[0].Address)
	assert.Equal(t, "The 3rd new resource", web[0].Note)
	assert.Equal(t, interfaces.TestPackage, web[1].Name)
	assert.Empty(t, web[1].Note)

	test := envs[interfaces.GroundTest]
	require.Len(t, test, 1)
	assert.Equal(t, interfaces.GroundLendingComponent, test[0].Name)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "syntax error",
			data: `environment "GroundWeb" {`,
		},
		{
			name: "unknown environment",
			data: `environment "Mainnet" {}`,
		},
		{
			name: "duplicate environment",
			data: "environment \"GroundWeb\" {}\nenvironment \"groundweb\" {}\n",
		},
		{
			name: "missing value",
			data: "environment \"GroundWeb\" {\n  address \"StableCoin\" {}\n}\n",
		},
		{
			name: "misspelled environment block",
			data: "environment \"GroundWeb\" {}\nenviroment \"Ground_Test\" {}\n",
		},
		{
			name: "stray attribute",
			data: "environment \"GroundWeb\" {}\nstray = 1\n",
		},
		{
			name: "unknown address attribute",
			data: "environment \"GroundWeb\" {\n  address \"StableCoin\" {\n    value = \"03b3\"\n    nots = \"x\"\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bad.hcl", []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeEnvironment_Missing(t *testing.T) {
	_, err := DecodeEnvironment("test.hcl", []byte(`environment "GroundWeb" {}`), interfaces.GroundTest)
	assert.True(t, errors.Is(err, interfaces.ErrManifestNotFound))
}

func TestEncode_RoundTrip(t *testing.T) {
	records := []interfaces.Record{
		{Name: interfaces.StableCoin, Address: "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401", Note: "The 3rd new resource"},
		{Name: interfaces.TestPackage, Address: "01918b6b7afae8655e4c2c8e26793427bd5afcee4f2c6619e8fc3b"},
	}

	encoded := Encode(interfaces.GroundWeb, records)
	assert.Contains(t, string(encoded), `environment "GroundWeb"`)
	assert.Equal(t, encoded, Encode(interfaces.GroundWeb, records), "encoding must be deterministic")

	decoded, err := DecodeEnvironment(FileName(interfaces.GroundWeb), encoded, interfaces.GroundWeb)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestEncodeAll(t *testing.T) {
	encoded := EncodeAll(
		Section{Environment: interfaces.GroundWeb, Records: []interfaces.Record{{Name: "A", Address: "0300"}}},
		Section{Environment: interfaces.GroundTest, Records: []interfaces.Record{{Name: "B", Address: "0301"}}},
	)

	envs, err := Decode("all.hcl", encoded)
	require.NoError(t, err)
	assert.Len(t, envs, 2)
	assert.Equal(t, interfaces.Name("B"), envs[interfaces.GroundTest][0].Name)
}
