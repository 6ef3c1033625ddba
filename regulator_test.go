package regulator

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegulatorDiscover(t *testing.T) {
	opts := &Options{
		Target: "example.com",
		Hosts:  []string{"dev1.example.com", "dev2.example.com", "dev3.example.com"},
	}
	r, err := New(opts)
	require.Nil(t, err)

	patterns, err := r.Discover(context.Background())
	require.Nil(t, err)
	require.Equal(t, []string{"(dev)([1-3]).example.com"}, patterns)
	require.Equal(t, patterns, r.Rules())
	require.EqualValues(t, 3, r.EstimateCount())
}

func TestRegulatorExecuteWithWriter(t *testing.T) {
	opts := &Options{
		Target: "example.com",
		Hosts:  []string{"dev1.example.com", "dev2.example.com", "dev3.example.com"},
	}
	r, err := New(opts)
	require.Nil(t, err)
	_, err = r.Discover(context.Background())
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, r.ExecuteWithWriter(context.Background(), &buf))

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"dev1.example.com",
		"dev2.example.com",
		"dev3.example.com",
	}, got)
}

func TestRegulatorExecuteLimit(t *testing.T) {
	opts := &Options{
		Target: "example.com",
		Hosts:  []string{"dev1.example.com", "dev2.example.com", "dev3.example.com"},
		Limit:  2,
	}
	r, err := New(opts)
	require.Nil(t, err)
	_, err = r.Discover(context.Background())
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, r.ExecuteWithWriter(context.Background(), &buf))
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, got, 2)
}

func TestRegulatorWriteRules(t *testing.T) {
	opts := &Options{
		Target: "example.com",
		Hosts:  []string{"dev1.example.com", "dev2.example.com", "dev3.example.com"},
	}
	r, err := New(opts)
	require.Nil(t, err)
	_, err = r.Discover(context.Background())
	require.Nil(t, err)

	var rules bytes.Buffer
	require.Nil(t, r.WriteRules(&rules))
	require.Equal(t, "(dev)([1-3]).example.com\n", rules.String())

	var meta bytes.Buffer
	require.Nil(t, r.WriteMetadata(&meta))
	require.Contains(t, meta.String(), "(dev)([1-3]).example.com")
	require.Contains(t, meta.String(), "pass:")
	require.Contains(t, meta.String(), "cardinality: 3")
}

func TestRegulatorRejectsBadInput(t *testing.T) {
	_, err := New(&Options{Target: "example.com", Hosts: []string{"localhost", "example.com"}})
	require.NotNil(t, err, "corpus with no usable hosts must fail")

	_, err = New(&Options{Hosts: []string{"dev1.example.com"}})
	require.NotNil(t, err, "missing target must fail")
}

func TestRegulatorExecuteBeforeDiscover(t *testing.T) {
	r, err := New(&Options{Target: "example.com", Hosts: []string{"dev1.example.com"}})
	require.Nil(t, err)
	var buf bytes.Buffer
	require.NotNil(t, r.ExecuteWithWriter(context.Background(), &buf))
}
