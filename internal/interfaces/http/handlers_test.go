package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-api/internal/application/auth"
	"github.com/jhoicas/cuentas-api/internal/application/identity"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
	"github.com/jhoicas/cuentas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/cuentas-api/internal/interfaces/http"
	"github.com/jhoicas/cuentas-api/internal/testutil"
)

const apiSecret = "secret-solo-para-tests"

// newTestAPI monta la API completa sobre repos en memoria.
func newTestAPI(t *testing.T, loginLimiter *apphttp.LoginRateLimiter) *fiber.App {
	t.Helper()
	users := testutil.NewMemUserRepo()
	companies := testutil.NewMemCompanyRepo()
	members := testutil.NewMemMemberRepo(companies)
	invitations := testutil.NewMemInvitationRepo()
	tx := &testutil.MemTx{Users: users, Companies: companies, Members: members, Invitations: invitations}

	memberUC := usecase.NewMemberUseCase(members, users)
	companyUC := usecase.NewCompanyUseCase(companies, users, members, memberUC)
	invitationUC := usecase.NewInvitationUseCase(invitations, users, memberUC, tx)
	authUC := auth.NewAuthUseCase(users, tx, auth.JWTConfig{
		Secret:     apiSecret,
		ExpMinutes: 30,
		Issuer:     "cuentas-api-test",
	})
	resolver := identity.NewResolver(users, companies, memberUC, apiSecret)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		MemberUC:     memberUC,
		InvitationUC: invitationUC,
		Resolver:     resolver,
		ProfilePDF:   pdf.NewCompanyProfileGenerator(),
		LoginLimiter: loginLimiter,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON opcional y Bearer token opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerBody(email, companyName string) map[string]any {
	return map[string]any{
		"email":     email,
		"password":  "clave-muy-segura",
		"full_name": "Usuario " + email,
		"company": map[string]any{
			"display_name":                 companyName,
			"legal_name":                   companyName + " Sdn. Bhd.",
			"business_registration_number": "201901012345",
		},
	}
}

// register registra un usuario y devuelve su token de login.
func register(t *testing.T, app *fiber.App, email, companyName string) (token, companyID string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", registerBody(email, companyName))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	companyID, _ = created["default_company_id"].(string)
	require.NotEmpty(t, companyID)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": email, "password": "clave-muy-segura",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode(t, resp)
	token, _ = login["access_token"].(string)
	require.NotEmpty(t, token)
	return token, companyID
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroCompleto(t *testing.T) {
	app := newTestAPI(t, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", registerBody("ana@example.com", "Acme Corporation Sdn Bhd"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)

	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, "Acme Corporation Sdn Bhd", body["default_company_name"])
	assert.Equal(t, "admin", body["current_role"])
	assert.Nil(t, body["password"], "el password jamás aparece en la respuesta")
}

func TestAPI_RegistroEmailDuplicadoEs409(t *testing.T) {
	app := newTestAPI(t, nil)
	register(t, app, "ana@example.com", "Acme")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", registerBody("ana@example.com", "Otra"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_RegistroInvalidoEs400(t *testing.T) {
	app := newTestAPI(t, nil)

	body := registerBody("no-es-un-email", "Acme")
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode(t, resp)
	msg, _ := out["message"].(string)
	assert.NotContains(t, msg, "clave-muy-segura", "los valores de credenciales no se reflejan en errores")
}

func TestAPI_LoginCredencialesInvalidasEs401(t *testing.T) {
	app := newTestAPI(t, nil)
	register(t, app, "ana@example.com", "Acme")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "incorrecta",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginConRateLimit(t *testing.T) {
	limiter := apphttp.NewLoginRateLimiter(2)
	defer limiter.Stop()
	app := newTestAPI(t, limiter)
	register(t, app, "ana@example.com", "Acme")

	// register consumió un login; el burst de 2 permite uno más.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "clave-muy-segura",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "clave-muy-segura",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil y empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MeDevuelveContextoDeEmpresa(t *testing.T) {
	app := newTestAPI(t, nil)
	token, companyID := register(t, app, "ana@example.com", "Acme")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, companyID, body["current_company_id"])
	assert.Equal(t, "Acme", body["current_company_name"])
	assert.Equal(t, "admin", body["current_role"])
}

func TestAPI_MeSinTokenEs401(t *testing.T) {
	app := newTestAPI(t, nil)
	resp := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ActualizarEmpresaYRegenerarSlug(t *testing.T) {
	app := newTestAPI(t, nil)
	token, companyID := register(t, app, "ana@example.com", "Acme")

	resp := doJSON(t, app, http.MethodPut, "/api/v1/companies/"+companyID, token, map[string]any{
		"display_name": "Acme Holdings Bhd",
		"email":        "hola@acme.my",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "acme-holdings-bhd", body["slug"])
	assert.Equal(t, "hola@acme.my", body["email"])
}

func TestAPI_EmpresaAjenaEs403(t *testing.T) {
	app := newTestAPI(t, nil)
	_, companyID := register(t, app, "ana@example.com", "Acme")
	tokenBea, _ := register(t, app, "bea@example.com", "Beta")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/companies/"+companyID, tokenBea, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_PerfilPDF(t *testing.T) {
	app := newTestAPI(t, nil)
	token, companyID := register(t, app, "ana@example.com", "Acme")

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/profile.pdf", companyID), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitaciones de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDeInvitacionCompleto(t *testing.T) {
	app := newTestAPI(t, nil)
	tokenAna, companyID := register(t, app, "ana@example.com", "Acme")
	tokenBea, _ := register(t, app, "bea@example.com", "Beta")

	// Ana invita a Bea como accountant.
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/invitations", companyID), tokenAna, map[string]any{
		"email": "bea@example.com", "role": "accountant",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	invToken, _ := created["token"].(string)
	require.NotEmpty(t, invToken)

	// Bea acepta con su propio bearer.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/invitations/accept", tokenBea, map[string]any{
		"token": invToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	member := decode(t, resp)
	assert.Equal(t, "accountant", member["role"])

	// La empresa ahora lista dos miembros.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/members", companyID), tokenAna, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var members []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&members))
	assert.Len(t, members, 2)

	// El listado de invitaciones no expone el token.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/invitations", companyID), tokenAna, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var invitations []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&invitations))
	require.Len(t, invitations, 1)
	assert.Nil(t, invitations[0]["token"])
}

func TestAPI_AgregarMiembroDirecto(t *testing.T) {
	app := newTestAPI(t, nil)
	tokenAna, companyID := register(t, app, "ana@example.com", "Acme")
	register(t, app, "bea@example.com", "Beta")

	// Ana agrega a Bea directamente, sin pasar por una invitación.
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/members", companyID), tokenAna, map[string]any{
		"email": "bea@example.com", "role": "viewer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	member := decode(t, resp)
	assert.Equal(t, "viewer", member["role"])
	assert.Equal(t, "active", member["status"])
	assert.Equal(t, false, member["is_owner"])

	// Un email sin cuenta registrada es 404.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/members", companyID), tokenAna, map[string]any{
		"email": "nadie@example.com", "role": "viewer",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_AceptarInvitacionAjenaEs403(t *testing.T) {
	app := newTestAPI(t, nil)
	tokenAna, companyID := register(t, app, "ana@example.com", "Acme")
	register(t, app, "bea@example.com", "Beta")
	tokenCarla, _ := register(t, app, "carla@example.com", "Gamma")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/invitations", companyID), tokenAna, map[string]any{
		"email": "bea@example.com", "role": "viewer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	invToken, _ := created["token"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/invitations/accept", tokenCarla, map[string]any{
		"token": invToken,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de empresa activa
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SeleccionarEmpresaActiva(t *testing.T) {
	app := newTestAPI(t, nil)
	tokenAna, companyAcme := register(t, app, "ana@example.com", "Acme")
	tokenBea, companyBeta := register(t, app, "bea@example.com", "Beta")

	// Bea invita a Ana a Beta como viewer; Ana acepta.
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/invitations", companyBeta), tokenBea, map[string]any{
		"email": "ana@example.com", "role": "viewer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	invToken, _ := created["token"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/invitations/accept", tokenAna, map[string]any{"token": invToken})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Ana cambia su empresa activa a Beta.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/companies/select", tokenAna, map[string]any{
		"company_id": companyBeta,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, companyBeta, body["current_company_id"])
	assert.Equal(t, "viewer", body["current_role"])
	assert.Equal(t, companyAcme, body["default_company_id"], "la default no cambia al seleccionar otra activa")

	// El mismo bearer refleja el nuevo contexto sin reemitirse.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", tokenAna, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode(t, resp)
	assert.Equal(t, companyBeta, me["current_company_id"])
	assert.Equal(t, "viewer", me["current_role"])
}
