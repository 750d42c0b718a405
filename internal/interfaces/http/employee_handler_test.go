package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/Employee-api/internal/application/dto"
	"github.com/jhoicas/Employee-api/internal/application/usecase"
	"github.com/jhoicas/Employee-api/internal/domain/entity"
	"github.com/jhoicas/Employee-api/internal/domain/repository"
	"github.com/jhoicas/Employee-api/internal/infrastructure/memory"
	"github.com/jhoicas/Employee-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Employee-api/internal/interfaces/http"
	"github.com/jhoicas/Employee-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const johnDoe = `{"name":"John Doe","position":"Developer","department":"Engineering","salary":60000}`

// buildTestApp construye la app completa sobre el repositorio indicado.
func buildTestApp(repo repository.EmployeeRepository) *fiber.App {
	return apphttp.NewApp(apphttp.AppDeps{
		Name:        "employee-api-test",
		CORSOrigins: "*",
		EmployeeUC:  usecase.NewEmployeeUseCase(repo),
		Metrics:     metrics.New(prometheus.NewRegistry()),
		Logger:      logger.Nop(),
	})
}

func newApp() *fiber.App {
	return buildTestApp(memory.NewEmployeeRepository())
}

// doRequest lanza una petición contra la app y devuelve status y cuerpo.
func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func createEmployee(t *testing.T, app *fiber.App, body string) dto.EmployeeResponse {
	t.Helper()
	status, raw := doRequest(t, app, http.MethodPost, "/api/employees", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	var out dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.ID)
	return out
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_LuegoGetByID_DevuelveElMismoRegistro(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)

	status, raw := doRequest(t, app, http.MethodGet, "/api/employees/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)

	var got dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "Developer", got.Position)
	assert.Equal(t, "Engineering", got.Department)
	assert.Equal(t, "60000", got.Salary.String())

	// salary viaja como número, no como string
	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, float64(60000), generic["salary"])
}

func TestCreate_SinSalary_Retorna400YNoPersiste(t *testing.T) {
	app := newApp()
	status, raw := doRequest(t, app, http.MethodPost, "/api/employees",
		`{"name":"John Doe","position":"Developer","department":"Engineering"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "salary is required")

	status, raw = doRequest(t, app, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCreate_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"campo vacío", `{"name":"","position":"Developer","department":"Engineering","salary":1}`, "VALIDATION"},
		{"solo espacios", `{"name":"   ","position":"Developer","department":"Engineering","salary":1}`, "VALIDATION"},
		{"salario negativo", `{"name":"A","position":"B","department":"C","salary":-5}`, "VALIDATION"},
		{"campo desconocido", `{"name":"A","position":"B","department":"C","salary":1,"bonus":3}`, "INVALID_BODY"},
		{"id en el cuerpo", `{"id":"x","name":"A","position":"B","department":"C","salary":1}`, "INVALID_BODY"},
		{"tipo incorrecto", `{"name":42,"position":"B","department":"C","salary":1}`, "INVALID_BODY"},
		{"salario null", `{"name":"A","position":"B","department":"C","salary":null}`, "INVALID_BODY"},
		{"salario negativo subnormal", `{"name":"A","position":"B","department":"C","salary":-1e-400}`, "VALIDATION"},
		{"salario con exponente enorme", `{"name":"A","position":"B","department":"C","salary":1e7000}`, "VALIDATION"},
		{"salario con 35 dígitos", `{"name":"A","position":"B","department":"C","salary":1234567890123456789012345678901234.5}`, "VALIDATION"},
		{"salario como string", `{"name":"A","position":"B","department":"C","salary":"60000"}`, "INVALID_BODY"},
		{"salario booleano", `{"name":"A","position":"B","department":"C","salary":true}`, "INVALID_BODY"},
		{"no es objeto", `["A"]`, "INVALID_BODY"},
		{"json roto", `{"name":`, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp()
			status, raw := doRequest(t, app, http.MethodPost, "/api/employees", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, decodeError(t, raw).Code)
		})
	}
}

func TestCreate_CuerpoVacio_Retorna400(t *testing.T) {
	app := newApp()
	status, raw := doRequest(t, app, http.MethodPost, "/api/employees", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decodeError(t, raw).Code)
}

func TestList_DevuelveTodosLosRegistros(t *testing.T) {
	app := newApp()
	const n = 3
	ids := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		ids[createEmployee(t, app, johnDoe).ID] = true
	}

	status, raw := doRequest(t, app, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, status)

	var list []dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, n)
	for _, e := range list {
		assert.True(t, ids[e.ID], "id inesperado %s", e.ID)
	}
}

func TestGetByID_Inexistente_Retorna404(t *testing.T) {
	app := newApp()
	status, raw := doRequest(t, app, http.MethodGet, "/api/employees/"+primitive.NewObjectID().Hex(), "")

	assert.Equal(t, http.StatusNotFound, status)
	e := decodeError(t, raw)
	assert.Equal(t, "NOT_FOUND", e.Code)
	assert.Equal(t, "Employee not found", e.Message)
}

func TestIDMalformado_Retorna400(t *testing.T) {
	app := newApp()
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			body := ""
			if method == http.MethodPut {
				body = `{"department":"Sales"}`
			}
			status, raw := doRequest(t, app, method, "/api/employees/no-es-un-id", body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "INVALID_ID", decodeError(t, raw).Code)
		})
	}
}

func TestUpdate_SoloCambiaElCampoEnviado(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)

	status, raw := doRequest(t, app, http.MethodPut, "/api/employees/"+created.ID, `{"department":"Research"}`)
	require.Equal(t, http.StatusOK, status, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/api/employees/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	var got dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "Research", got.Department)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Position, got.Position)
	assert.True(t, created.Salary.Equal(got.Salary))
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestUpdate_InvalidoNoSeAplica(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)

	status, raw := doRequest(t, app, http.MethodPut, "/api/employees/"+created.ID,
		`{"department":"Research","name":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, raw).Code)

	status, raw = doRequest(t, app, http.MethodPut, "/api/employees/"+created.ID,
		`{"department":"Research","salary":null}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decodeError(t, raw).Code)

	_, raw = doRequest(t, app, http.MethodGet, "/api/employees/"+created.ID, "")
	var got dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Engineering", got.Department, "una actualización inválida no debe aplicarse parcialmente")
}

func TestUpdate_SalarioInvalidoNoSeAplica(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)

	cases := []struct{ body, code, msg string }{
		{`{"salary":"75000"}`, "INVALID_BODY", "salary must be a number"},
		{`{"salary":true}`, "INVALID_BODY", "salary must be a number"},
		{`{"salary":-1e-400}`, "VALIDATION", "salary must be greater than or equal to 0"},
		{`{"salary":1e20000000}`, "VALIDATION", "salary is out of range"},
	}
	for _, tc := range cases {
		status, raw := doRequest(t, app, http.MethodPut, "/api/employees/"+created.ID, tc.body)
		assert.Equal(t, http.StatusBadRequest, status, tc.body)
		e := decodeError(t, raw)
		assert.Equal(t, tc.code, e.Code, tc.body)
		assert.Contains(t, e.Message, tc.msg, tc.body)
	}

	_, raw := doRequest(t, app, http.MethodGet, "/api/employees/"+created.ID, "")
	var got dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "60000", got.Salary.String())
}

func TestCreate_SalarioEnLimiteDeDecimal128(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app,
		`{"name":"A","position":"B","department":"C","salary":1234567890123456789012345678901234}`)
	assert.Equal(t, "1234567890123456789012345678901234", created.Salary.String())
}

func TestUpdate_Inexistente_Retorna404(t *testing.T) {
	app := newApp()
	status, raw := doRequest(t, app, http.MethodPut, "/api/employees/"+primitive.NewObjectID().Hex(), `{"salary":70000}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}

func TestUpdate_CuerpoVacioDevuelveRegistroActual(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)

	status, raw := doRequest(t, app, http.MethodPut, "/api/employees/"+created.ID, `{}`)
	require.Equal(t, http.StatusOK, status)
	var got dto.EmployeeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Department, got.Department)
}

func TestDelete_LuegoGet_Retorna404(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)

	status, raw := doRequest(t, app, http.MethodDelete, "/api/employees/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Employee deleted"}`, string(raw))

	status, _ = doRequest(t, app, http.MethodGet, "/api/employees/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDelete_Repetido_Retorna404AmbasVeces(t *testing.T) {
	app := newApp()
	created := createEmployee(t, app, johnDoe)
	status, _ := doRequest(t, app, http.MethodDelete, "/api/employees/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)

	for i := 0; i < 2; i++ {
		status, raw := doRequest(t, app, http.MethodDelete, "/api/employees/"+created.ID, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Employee not found", decodeError(t, raw).Message)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del almacén
// ──────────────────────────────────────────────────────────────────────────────

// brokenRepo simula un almacén caído: toda operación falla.
type brokenRepo struct{ err error }

func (r brokenRepo) Create(context.Context, *entity.Employee) error { return r.err }
func (r brokenRepo) GetByID(context.Context, string) (*entity.Employee, error) {
	return nil, r.err
}
func (r brokenRepo) Update(context.Context, string, entity.EmployeePatch) (*entity.Employee, error) {
	return nil, r.err
}
func (r brokenRepo) List(context.Context) ([]*entity.Employee, error) { return nil, r.err }
func (r brokenRepo) Delete(context.Context, string) error             { return r.err }
func (r brokenRepo) Ping(context.Context) error                       { return r.err }

func TestFalloDelAlmacen_Retorna500ConElMensaje(t *testing.T) {
	app := buildTestApp(brokenRepo{err: errors.New("server selection timeout")})
	id := primitive.NewObjectID().Hex()

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/api/employees", ""},
		{http.MethodGet, "/api/employees/" + id, ""},
		{http.MethodPost, "/api/employees", johnDoe},
		{http.MethodPut, "/api/employees/" + id, `{"salary":1}`},
		{http.MethodDelete, "/api/employees/" + id, ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, raw := doRequest(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusInternalServerError, status)
			e := decodeError(t, raw)
			assert.Equal(t, "INTERNAL", e.Code)
			assert.Equal(t, "server selection timeout", e.Message)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas fijas
// ──────────────────────────────────────────────────────────────────────────────

func TestRaiz_RespondeAPIIsRunning(t *testing.T) {
	status, raw := doRequest(t, newApp(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "API is running", string(raw))
}

func TestHealth(t *testing.T) {
	status, raw := doRequest(t, newApp(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"employee-api-test","database":"ok"}`, string(raw))

	status, raw = doRequest(t, buildTestApp(brokenRepo{err: errors.New("down")}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(raw), `"database":"unavailable"`)
}

func TestDocs_SirveSwagger(t *testing.T) {
	app := newApp()

	status, raw := doRequest(t, app, http.MethodGet, "/api-docs/swagger.json", "")
	require.Equal(t, http.StatusOK, status)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc["paths"], "/api/employees/{id}")

	status, raw = doRequest(t, app, http.MethodGet, "/api-docs", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "swagger-ui")
}

func TestMetrics_ExponePeticiones(t *testing.T) {
	app := newApp()
	doRequest(t, app, http.MethodGet, "/api/employees", "")

	status, raw := doRequest(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "employee_api_http_requests_total")
}

func TestRutaInexistente_Retorna404JSON(t *testing.T) {
	status, raw := doRequest(t, newApp(), http.MethodGet, "/api/departments", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}

func TestRequestID_SeReutilizaOSeGenera(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36)
}
