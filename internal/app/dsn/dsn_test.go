package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "fleet")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "registry")
	t.Setenv("DB_SSLMODE", "")

	assert.Equal(t, "host=db.internal port=6543 user=fleet password=secret dbname=registry sslmode=disable", FromEnv())
}
