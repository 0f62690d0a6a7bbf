package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinit-dev/tsinit/internal/execx"
)

func npmStub(line string, resp execx.StubResponse) *execx.StubRunner {
	return &execx.StubRunner{
		Responses: map[string]execx.StubResponse{line: resp},
		Fallback:  execx.StubResponse{Err: errors.New("unexpected command")},
	}
}

func TestNPMResolverLatest(t *testing.T) {
	stub := npmStub("npm view typescript version --json",
		execx.StubResponse{Result: execx.Result{Stdout: "\"5.4.5\"\n"}})

	r := &NPMResolver{Runner: stub}
	v, err := r.Latest(context.Background(), "typescript")
	require.NoError(t, err)
	assert.Equal(t, "5.4.5", v)
	require.Len(t, stub.Calls, 1)
	assert.Equal(t, "npm", stub.Calls[0].Name)
}

func TestNPMResolverCustomBinaryAndRegistry(t *testing.T) {
	stub := npmStub("/opt/node/bin/npm view @types/node version --json --registry https://npm.example.com",
		execx.StubResponse{Result: execx.Result{Stdout: `"20.12.7"`}})

	r := &NPMResolver{Runner: stub, Bin: "/opt/node/bin/npm", RegistryURL: "https://npm.example.com"}
	v, err := r.Latest(context.Background(), "@types/node")
	require.NoError(t, err)
	assert.Equal(t, "20.12.7", v)
}

func TestNPMResolverRegistryError(t *testing.T) {
	stub := npmStub("npm view no-such-pkg-xyz version --json", execx.StubResponse{Result: execx.Result{
		ExitCode: 1,
		Stdout:   `{"error":{"code":"E404","summary":"Not Found - GET https://registry.npmjs.org/no-such-pkg-xyz\nmore"}}`,
	}})

	_, err := (&NPMResolver{Runner: stub}).Latest(context.Background(), "no-such-pkg-xyz")
	require.Error(t, err)

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "no-such-pkg-xyz", lookupErr.Package)
	assert.Contains(t, err.Error(), "E404")
	assert.NotContains(t, err.Error(), "more")
}

func TestNPMResolverNonZeroExitWithoutEnvelope(t *testing.T) {
	stub := npmStub("npm view typescript version --json", execx.StubResponse{Result: execx.Result{
		ExitCode: 1,
		Stderr:   "npm ERR! network request failed\nnpm ERR! details",
	}})

	_, err := (&NPMResolver{Runner: stub}).Latest(context.Background(), "typescript")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network request failed")
	assert.Contains(t, err.Error(), "typescript")
}

func TestNPMResolverMalformedOutput(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
	}{
		{"not json", "5.4.5"},
		{"array", `["5.4.4","5.4.5"]`},
		{"empty string", `""`},
		{"not semver", `"latest"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := npmStub("npm view typescript version --json",
				execx.StubResponse{Result: execx.Result{Stdout: tt.stdout}})

			_, err := (&NPMResolver{Runner: stub}).Latest(context.Background(), "typescript")
			var lookupErr *LookupError
			require.ErrorAs(t, err, &lookupErr)
			assert.Equal(t, "typescript", lookupErr.Package)
		})
	}
}

func TestNPMResolverExecutionFailure(t *testing.T) {
	notFound := errors.New("npm not found")
	stub := &execx.StubRunner{Fallback: execx.StubResponse{Err: notFound}}

	_, err := (&NPMResolver{Runner: stub}).Latest(context.Background(), "typescript")
	require.ErrorIs(t, err, notFound)
}
