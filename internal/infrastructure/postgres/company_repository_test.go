package postgres

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-api/internal/domain/entity"
)

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// placeholderSet devuelve los índices $N presentes en la sentencia.
func placeholderSet(t *testing.T, query string) map[int]bool {
	t.Helper()
	set := make(map[int]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(query, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		set[n] = true
	}
	return set
}

// assertPlaceholdersMatchArgs verifica que la sentencia referencia exactamente
// $1..$len(args), sin huecos ni sobrantes: un desfase produce 42P18 en el
// Parse de Postgres.
func assertPlaceholdersMatchArgs(t *testing.T, query string, args []any) {
	t.Helper()
	set := placeholderSet(t, query)
	assert.Len(t, set, len(args))
	for i := 1; i <= len(args); i++ {
		assert.True(t, set[i], "la sentencia no referencia $%d", i)
	}
}

// ╔══════════════════════════════════════════════════════════════╗
// ║ Alineación de placeholders con listas de argumentos          ║
// ╚══════════════════════════════════════════════════════════════╝

func TestCompanyInsertQueryAlineadaConArgs(t *testing.T) {
	assertPlaceholdersMatchArgs(t, companyInsertQuery, companyArgs(&entity.Company{}))
}

func TestCompanyUpdateQueryAlineadaConArgs(t *testing.T) {
	assertPlaceholdersMatchArgs(t, companyUpdateQuery, companyUpdateArgs(&entity.Company{}))
}

func TestCompanyUpdateNoTocaCreatedAt(t *testing.T) {
	assert.NotContains(t, companyUpdateQuery, "created_at")
	// Un argumento menos que el insert: created_at no viaja en el update.
	assert.Len(t, companyUpdateArgs(&entity.Company{}), len(companyArgs(&entity.Company{}))-1)
}
