package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/eft_batch_service/internal/cli"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFile = "0;October;MWK;350.50;0002\n" +
	"1;0001;MWK;100;ZN1;100.00;Payee;SCH;;;;SWIFT;ACC;;;;narr\n" +
	"1;0002;MWK;100;ZN1;250.50;Payee;SCH;;;;SWIFT;ACC;;;;narr\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(args ...string) (string, error) {
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_ReportsSummary(t *testing.T) {
	path := writeFile(t, "ok.txt", validFile)

	out, err := run("validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: October, 2 records, 350.50 MWK")
}

func TestValidate_ChecksEveryFile(t *testing.T) {
	good := writeFile(t, "ok.txt", validFile)
	bad := writeFile(t, "bad.txt", "0;October;MWK;350.50;0003\n1;0001;MWK\n")

	out, err := run("validate", bad, good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, bad+": INVALID")
	assert.Contains(t, out, good+": OK")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run("validate", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestValidate_RequiresArgument(t *testing.T) {
	_, err := run("validate")
	assert.Error(t, err)
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	_, err := run("migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestVersion(t *testing.T) {
	out, err := run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
}

func TestToken_IsAcceptedByAuthMiddlewareClaims(t *testing.T) {
	out, err := run("token", "--secret", "s3cret", "--issuer", "eft-test", "--subject", "alice", "--roles", "accounts_personnel,authorizer")
	require.NoError(t, err)

	claims := &middleware.Claims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithIssuer("eft-test"))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, []string{"ACCOUNTS_PERSONNEL", "AUTHORIZER"}, claims.Roles)
}

func TestToken_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := run("token", "--subject", "alice")
	assert.Error(t, err)
}
