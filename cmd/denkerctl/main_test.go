package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateDefaultCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidate(&out, "", ""))
	assert.Contains(t, out.String(), "sentence=THINK")
	assert.Contains(t, out.String(), "sentence=ZMLASTV")
	assert.Contains(t, out.String(), "2 puzzle(s) OK")
}

func TestValidateSinglePuzzle(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidate(&out, "", "think"))
	assert.Contains(t, out.String(), "sentence=THINK")
	assert.NotContains(t, out.String(), "ZMLASTV")
	assert.Contains(t, out.String(), "1 puzzle(s) OK")

	assert.Error(t, runValidate(&out, "", "nope"))
}

func TestValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
puzzles:
  - id: broken
    words:
      - {id: a, word_index: 0, letter_count: 3, highlighted_letter_index: 5, answer: ART}
`), 0o600))

	var out bytes.Buffer
	assert.Error(t, runValidate(&out, path, ""))
	assert.Empty(t, out.String())
}

func TestHashSecret(t *testing.T) {
	cmd := newHashSecretCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--cost", "4", "something"})
	require.NoError(t, cmd.Execute())

	hash := bytes.TrimSpace(out.Bytes())
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("something")))
}

type fakeStacks struct {
	out *cloudformation.DescribeStacksOutput
	err error
}

func (f fakeStacks) DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	return f.out, f.err
}

func TestStackOutput(t *testing.T) {
	c := fakeStacks{out: &cloudformation.DescribeStacksOutput{
		Stacks: []cftypes.Stack{{
			Outputs: []cftypes.Output{
				{OutputKey: aws.String("Other"), OutputValue: aws.String("nope")},
				{OutputKey: aws.String(defaultOutputKey), OutputValue: aws.String("https://api.example.com")},
			},
		}},
	}}

	v, err := stackOutput(context.Background(), c, "denker", defaultOutputKey)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", v)

	_, err = stackOutput(context.Background(), c, "denker", "Missing")
	assert.ErrorContains(t, err, "Missing not found")

	_, err = stackOutput(context.Background(), fakeStacks{err: errors.New("boom")}, "denker", defaultOutputKey)
	assert.ErrorContains(t, err, "boom")
}

func TestPing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/stats" || r.Header.Get("x-amz-secret") != "something" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"sessions":3,"puzzles":2}` + "\n"))
	}))
	defer ts.Close()

	body, err := ping(context.Background(), ts.Client(), ts.URL+"/", "x-amz-secret", "something")
	require.NoError(t, err)
	assert.Equal(t, `{"sessions":3,"puzzles":2}`, body)

	_, err = ping(context.Background(), ts.Client(), ts.URL, "x-amz-secret", "wrong")
	assert.ErrorContains(t, err, "401")
}
