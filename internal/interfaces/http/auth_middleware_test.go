package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/cuentas-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeResolver resuelve tokens predefinidos a principals o errores.
type fakeResolver struct {
	principals map[string]*entity.Principal
	errs       map[string]error
}

func (f *fakeResolver) Resolve(token string) (*entity.Principal, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if p, ok := f.principals[token]; ok {
		return p, nil
	}
	return nil, domain.ErrInvalidToken
}

// buildTestApp monta una ruta protegida que refleja el principal resuelto.
func buildTestApp(resolver *fakeResolver) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(resolver), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{
			"email":        p.User.Email,
			"company_id":   p.CompanyID,
			"company_name": p.CompanyName,
			"role":         p.Role,
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildTestApp(&fakeResolver{})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_HeaderMalformadoRetorna401(t *testing.T) {
	app := buildTestApp(&fakeResolver{})
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoYUsuarioDesconocidoSonIndistinguibles(t *testing.T) {
	app := buildTestApp(&fakeResolver{errs: map[string]error{
		"tok-invalido":    domain.ErrInvalidToken,
		"tok-sin-usuario": domain.ErrUnknownUser,
	}})

	respInvalido := doRequest(t, app, "Bearer tok-invalido")
	defer respInvalido.Body.Close()
	respSinUsuario := doRequest(t, app, "Bearer tok-sin-usuario")
	defer respSinUsuario.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, respInvalido.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respSinUsuario.StatusCode)

	bodyInvalido, _ := io.ReadAll(respInvalido.Body)
	bodySinUsuario, _ := io.ReadAll(respSinUsuario.Body)
	assert.Equal(t, string(bodyInvalido), string(bodySinUsuario),
		"ambos fallos deben producir exactamente la misma respuesta")
}

func TestAuthMiddleware_CuentaDesactivadaRetorna403(t *testing.T) {
	app := buildTestApp(&fakeResolver{errs: map[string]error{
		"tok-inactivo": domain.ErrInactiveAccount,
	}})
	resp := doRequest(t, app, "Bearer tok-inactivo")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INACTIVE_ACCOUNT")
}

func TestAuthMiddleware_TokenValidoCargaElPrincipal(t *testing.T) {
	app := buildTestApp(&fakeResolver{principals: map[string]*entity.Principal{
		"tok-ok": {
			User:        entity.User{ID: "u1", Email: "ana@example.com", IsActive: true},
			CompanyID:   "c1",
			CompanyName: "Acme",
			Role:        entity.RoleAdmin,
		},
	}})
	resp := doRequest(t, app, "Bearer tok-ok")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, "c1", body["company_id"])
	assert.Equal(t, "Acme", body["company_name"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestAuthMiddleware_PrincipalSinEmpresaTambienPasa(t *testing.T) {
	app := buildTestApp(&fakeResolver{principals: map[string]*entity.Principal{
		"tok-sin-empresa": {User: entity.User{ID: "u1", Email: "ana@example.com", IsActive: true}},
	}})
	resp := doRequest(t, app, "Bearer tok-sin-empresa")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["company_id"], "sin membresías el principal no lleva contexto de empresa")
}
